package handlers

import (
	"fmt"

	"pagebrief/internal/config"
	"pagebrief/internal/tui"

	"github.com/spf13/cobra"
)

// NewInteractiveCmd creates the interactive prompt command
func NewInteractiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"tui", "i"},
		Short:   "Prompt for a URL and style, then offer PDF or Word export",
		Long: `Launch the interactive prompt: enter a URL, pick one of the six styles and
read the summary. From the summary view press 'p' to save a PDF or 'd' to
save a Word document into the configured output directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd)
		},
	}
}

func runInteractive(cmd *cobra.Command) error {
	cfg := config.Get()

	// A missing API key is reported before the prompt opens
	p, err := newRunner(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize summarizer: %w", err)
	}
	defer p.Close()

	return tui.Run(cmd.Context(), p, tui.Options{OutputDir: cfg.Output.Directory})
}
