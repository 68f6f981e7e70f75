package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pagebrief/internal/core"
)

// Format is a document export format.
type Format string

const (
	FormatPDF      Format = "pdf"
	FormatDOCX     Format = "docx"
	FormatMarkdown Format = "md"
	FormatJSON     Format = "json"
)

// ParseFormat maps user input to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "pdf":
		return FormatPDF, nil
	case "docx", "word", "doc":
		return FormatDOCX, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported export format %q (supported: pdf, docx, md, json)", s)
	}
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case FormatJSON:
		return "application/json"
	default:
		return "text/markdown; charset=utf-8"
	}
}

// DefaultFilename derives summary_<style>_<date>.<ext> for a summary.
func DefaultFilename(summary *core.Summary, format Format) string {
	style := summary.Style
	if style == "" {
		style = "general"
	}
	date := summary.DateGenerated.Format("2006-01-02")
	return fmt.Sprintf("summary_%s_%s.%s", style, date, format)
}

// Export writes summary to path in the given format. An empty format is
// inferred from the path's extension. It returns the written path.
func Export(summary *core.Summary, path string, format Format) (string, error) {
	if summary == nil {
		return "", fmt.Errorf("nothing to export: summary is nil")
	}
	if path == "" {
		return "", fmt.Errorf("export path is required")
	}

	if format == "" {
		f, err := ParseFormat(filepath.Ext(path))
		if err != nil {
			return "", err
		}
		format = f
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}

	var err error
	switch format {
	case FormatPDF:
		err = WritePDF(summary, path)
	case FormatDOCX:
		err = WriteDOCX(summary, path)
	case FormatMarkdown:
		err = os.WriteFile(path, []byte(Markdown(summary)), 0644)
	case FormatJSON:
		var data []byte
		if data, err = JSON(summary); err == nil {
			err = os.WriteFile(path, data, 0644)
		}
	default:
		err = fmt.Errorf("unsupported export format %q", format)
	}
	if err != nil {
		return "", fmt.Errorf("failed to export %s: %w", format, err)
	}

	return path, nil
}
