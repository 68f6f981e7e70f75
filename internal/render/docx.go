package render

import (
	"fmt"
	"strings"

	"pagebrief/internal/core"

	"github.com/gomutex/godocx"
)

// WriteDOCX renders summary to a Word document at path.
func WriteDOCX(summary *core.Summary, path string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	if _, err := doc.AddHeading(summary.DisplayTitle(), 0); err != nil {
		return fmt.Errorf("failed to add title: %w", err)
	}

	meta := doc.AddParagraph("")
	meta.AddText("Source: ").Bold(true)
	meta.AddText(summary.URL)
	meta = doc.AddParagraph("")
	meta.AddText("Style: ").Bold(true)
	meta.AddText(summary.Style)
	meta.AddText("   Generated: ").Bold(true)
	meta.AddText(summary.DateGenerated.Format("2006-01-02"))

	// One paragraph per block of consecutive non-empty lines
	for _, block := range paragraphs(summary.SummaryText) {
		if strings.HasPrefix(block, "#") {
			level := uint(len(block) - len(strings.TrimLeft(block, "#")))
			if level > 3 {
				level = 3
			}
			if _, err := doc.AddHeading(strings.TrimSpace(strings.TrimLeft(block, "#")), level); err != nil {
				return fmt.Errorf("failed to add heading: %w", err)
			}
			continue
		}
		doc.AddParagraph(stripEmphasis(block))
	}

	if err := doc.SaveTo(path); err != nil {
		return fmt.Errorf("failed to save document %s: %w", path, err)
	}
	return nil
}

// paragraphs splits text into lines, treating headings and list items as
// their own paragraphs and dropping blank lines.
func paragraphs(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
