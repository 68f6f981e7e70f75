package handlers

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"pagebrief/internal/config"
	"pagebrief/internal/core"
	"pagebrief/internal/logger"
	"pagebrief/internal/render"
	"pagebrief/internal/summarize"

	"github.com/spf13/cobra"
)

// NewSummarizeCmd creates the one-shot summarize command
func NewSummarizeCmd() *cobra.Command {
	summarizeCmd := &cobra.Command{
		Use:   "summarize [URL]",
		Short: "Summarize a single web page",
		Long: `Fetch a web page, extract its readable text and generate a summary.

A URL without http:// or https:// is fetched over https.

Examples:
  # General overview printed to the terminal
  pagebrief summarize example.com/article

  # Numbered key points, by name or by menu number
  pagebrief summarize https://example.com/article --style bullets
  pagebrief summarize https://example.com/article --style 4

  # JSON for scripting, or markdown saved to a file
  pagebrief summarize https://example.com/article --format json
  pagebrief summarize https://example.com/article --format markdown --output summary.md

  # Also save a PDF or Word document
  pagebrief summarize https://example.com/article --export pdf
  pagebrief summarize https://example.com/article --export-path reports/cv.docx`,
		Args: cobra.ExactArgs(1),
		RunE: summarizeRunFunc,
	}

	summarizeCmd.Flags().StringP("style", "s", "", "Summary style: general, article, project, bullets, research, resume (or 1-6)")
	summarizeCmd.Flags().StringP("format", "f", "", "Output format: terminal, json, markdown (default from config: terminal)")
	summarizeCmd.Flags().StringP("output", "o", "", "Output file path (for json/markdown formats)")
	summarizeCmd.Flags().StringP("export", "e", "", "Also save the summary as: pdf, docx")
	summarizeCmd.Flags().String("export-path", "", "Path for the exported document (format inferred from extension)")

	return summarizeCmd
}

func summarizeRunFunc(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	styleFlag, _ := cmd.Flags().GetString("style")
	format, _ := cmd.Flags().GetString("format")
	outputFile, _ := cmd.Flags().GetString("output")
	exportFlag, _ := cmd.Flags().GetString("export")
	exportPath, _ := cmd.Flags().GetString("export-path")

	if styleFlag == "" {
		styleFlag = cfg.Summarize.DefaultStyle
	}
	style := summarize.ParseStyle(styleFlag)

	if format == "" {
		format = cfg.Output.DefaultFormat
	}
	format = strings.ToLower(format)
	switch format {
	case "", "terminal", "json", "markdown":
	default:
		return fmt.Errorf("invalid format '%s'. Valid formats: terminal, json, markdown", format)
	}

	var exportFormat render.Format
	if exportFlag != "" {
		f, err := render.ParseFormat(exportFlag)
		if err != nil {
			return err
		}
		exportFormat = f
	}

	p, err := newRunner(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize summarizer: %w", err)
	}
	defer p.Close()

	logger.Info("Starting page summarization", "url", args[0], "style", style.String())

	result, err := p.Run(cmd.Context(), args[0], style)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		err = outputJSON(out, result.Summary, outputFile)
	case "markdown":
		err = outputMarkdown(out, result.Summary, outputFile)
	default:
		render.Terminal(out, result.Summary)
	}
	if err != nil {
		return err
	}

	if exportFormat != "" || exportPath != "" {
		if exportPath == "" {
			exportPath = filepath.Join(cfg.Output.Directory, render.DefaultFilename(result.Summary, exportFormat))
		}
		written, err := render.Export(result.Summary, exportPath, exportFormat)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved to: %s\n", written)
	}

	return nil
}

func outputJSON(w io.Writer, summary *core.Summary, outputFile string) error {
	jsonData, err := render.JSON(summary)
	if err != nil {
		return err
	}

	if outputFile != "" {
		written, err := render.WriteToFile(jsonData, filepath.Dir(outputFile), filepath.Base(outputFile))
		if err != nil {
			return fmt.Errorf("failed to write JSON file: %w", err)
		}
		fmt.Fprintf(w, "JSON output saved to: %s\n", written)
		return nil
	}

	fmt.Fprintf(w, "%s\n", jsonData)
	return nil
}

func outputMarkdown(w io.Writer, summary *core.Summary, outputFile string) error {
	markdownContent := render.Markdown(summary)

	if outputFile != "" {
		written, err := render.WriteToFile([]byte(markdownContent), filepath.Dir(outputFile), filepath.Base(outputFile))
		if err != nil {
			return fmt.Errorf("failed to write markdown file: %w", err)
		}
		fmt.Fprintf(w, "Markdown output saved to: %s\n", written)
		return nil
	}

	fmt.Fprint(w, markdownContent)
	return nil
}
