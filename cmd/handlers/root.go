/*
Copyright © 2025 Your Name

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package handlers

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"pagebrief/internal/config"
	"pagebrief/internal/logger"
	"pagebrief/internal/pipeline"

	"github.com/spf13/cobra"
)

var cfgFile string

// runner is a pipeline the commands own and must close
type runner interface {
	pipeline.Runner
	Close()
}

// newRunner builds the pipeline from configuration; tests replace it.
var newRunner = func(cfg *config.Config) (runner, error) {
	p, err := pipeline.NewFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pagebrief",
		Short: "pagebrief summarizes a web page with an LLM in one of six styles.",
		Long: `pagebrief fetches a web page, strips it down to its readable text and asks
a language model for a summary in the style you choose:

  1. General overview      4. Key points
  2. Article               5. Research abstract
  3. Project report        6. Resume profile

Run without arguments to start the interactive prompt, or use 'summarize'
for one-shot use and 'serve' for the web form.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd)
		},
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.pagebrief.yaml)")

	rootCmd.AddCommand(NewSummarizeCmd())
	rootCmd.AddCommand(NewInteractiveCmd())
	rootCmd.AddCommand(NewServeCmd())
	rootCmd.AddCommand(NewStylesCmd())

	return rootCmd
}

// Execute runs the root command, cancelling in-flight work on interrupt
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Configure(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	if cfg.App.ConfigFile != "" {
		logger.Debug("Using config file", "path", cfg.App.ConfigFile)
	}
}
