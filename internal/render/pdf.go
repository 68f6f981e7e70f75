package render

import (
	"bufio"
	"io"
	"strings"

	"pagebrief/internal/core"

	"github.com/jung-kurt/gofpdf"
)

// WritePDF renders summary to a PDF file at path.
func WritePDF(summary *core.Summary, path string) error {
	return buildPDF(summary).OutputFileAndClose(path)
}

// RenderPDF writes the PDF bytes of summary to w.
func RenderPDF(w io.Writer, summary *core.Summary) error {
	return buildPDF(summary).Output(w)
}

// buildPDF lays out the summary line by line. Markdown headings become bold
// lines; everything else is wrapped with MultiCell.
func buildPDF(summary *core.Summary) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; translate so accented characters survive
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(tr(summary.DisplayTitle()), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 8, tr(summary.DisplayTitle()), "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(100, 100, 100)
	if summary.URL != "" {
		pdf.WriteLinkString(5, summary.URL, summary.URL)
		pdf.Ln(5)
	}
	pdf.CellFormat(0, 5, tr("Style: "+summary.Style+"   Generated: "+summary.DateGenerated.Format("2006-01-02")), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	scanner := bufio.NewScanner(strings.NewReader(summary.SummaryText))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		s := strings.TrimSpace(scanner.Text())
		if s == "" {
			pdf.Ln(3)
			continue
		}
		if strings.HasPrefix(s, "#") {
			text := strings.TrimSpace(strings.TrimLeft(s, "#"))
			if text == "" {
				continue
			}
			pdf.SetFont("Helvetica", "B", 13)
			pdf.MultiCell(0, 7, tr(text), "", "L", false)
			pdf.SetFont("Helvetica", "", 11)
			continue
		}
		pdf.MultiCell(0, 5.5, tr(stripEmphasis(s)), "", "L", false)
	}

	return pdf
}

// stripEmphasis removes markdown bold/italic markers the PDF cannot render.
func stripEmphasis(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	return s
}
