package fetch

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// isPDF reports whether a response is a PDF document, by content type or magic bytes.
func isPDF(contentType string, body []byte) bool {
	if strings.Contains(strings.ToLower(contentType), "application/pdf") {
		return true
	}
	return bytes.HasPrefix(body, []byte("%PDF-"))
}

// ExtractPDFText returns a best-effort title and the whitespace-normalized
// text of every page. Pages that fail to decode are skipped.
func ExtractPDFText(data []byte) (string, string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse PDF: %w", err)
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		pages = append(pages, text)
	}

	raw := strings.Join(pages, "\n")
	return pdfTitle(raw), NormalizeWhitespace(raw), nil
}

// pdfTitle picks the first line that reads like a heading.
func pdfTitle(raw string) string {
	for _, line := range strings.Split(raw, "\n") {
		line = NormalizeWhitespace(line)
		if len(line) > 10 && len(line) < 200 && !strings.Contains(line, "http") {
			return line
		}
	}
	return ""
}
