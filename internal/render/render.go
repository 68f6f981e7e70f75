package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"pagebrief/internal/core"
)

// Markdown renders a summary as a standalone markdown document.
func Markdown(summary *core.Summary) string {
	var content strings.Builder

	content.WriteString(fmt.Sprintf("# %s\n\n", summary.DisplayTitle()))
	content.WriteString(fmt.Sprintf("**Source:** [%s](%s)\n", summary.URL, summary.URL))
	content.WriteString(fmt.Sprintf("**Style:** %s\n", summary.Style))
	content.WriteString(fmt.Sprintf("**Generated:** %s\n\n", summary.DateGenerated.Format("2006-01-02 15:04:05 UTC")))
	content.WriteString("## Summary\n\n")
	content.WriteString(strings.TrimSpace(summary.SummaryText))
	content.WriteString("\n")

	return content.String()
}

// JSON renders a summary as indented JSON.
func JSON(summary *core.Summary) ([]byte, error) {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return data, nil
}

// Terminal writes the human-readable summary block printed by the CLI.
func Terminal(w io.Writer, summary *core.Summary) {
	rule := strings.Repeat("=", 50)
	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintf(w, "SUMMARY: %s\n", summary.DisplayTitle())
	fmt.Fprintf(w, "%s\n", summary.URL)
	if summary.Truncated {
		fmt.Fprintln(w, "(page text was truncated before summarizing)")
	}
	fmt.Fprintf(w, "%s\n", rule)
	fmt.Fprintln(w, strings.TrimSpace(summary.SummaryText))
	fmt.Fprintf(w, "\n%s\n", rule)
}

// WriteToFile writes content to filename inside outputDir, creating the directory.
func WriteToFile(content []byte, outputDir, filename string) (string, error) {
	if outputDir == "" {
		outputDir = "."
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	filePath := filepath.Join(outputDir, filename)
	if err := os.WriteFile(filePath, content, 0644); err != nil {
		return "", fmt.Errorf("failed to write file %s: %w", filePath, err)
	}

	return filePath, nil
}
