package handlers

import (
	"fmt"

	"pagebrief/internal/summarize"

	"github.com/spf13/cobra"
)

// NewStylesCmd lists the available summary styles
func NewStylesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "List the available summary styles",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Choose summary style:")
			for i, style := range summarize.Styles {
				fmt.Fprintf(out, "  %d. %-18s (--style %s)\n", i+1, style.Label(), style)
			}
		},
	}
}
