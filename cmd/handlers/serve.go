package handlers

import (
	"context"
	"fmt"
	"time"

	"pagebrief/internal/config"
	"pagebrief/internal/logger"
	"pagebrief/internal/server"

	"github.com/spf13/cobra"
)

// NewServeCmd creates the serve command for starting the web form
func NewServeCmd() *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web form",
		Long: `Start the pagebrief web server.

The server provides:
  • A form to summarize a URL in any of the six styles
  • PDF and Word downloads of the result
  • POST /summarize?format=json for programmatic access
  • A /health endpoint

Examples:
  # Start server on the configured address (default 127.0.0.1:8080)
  pagebrief serve

  # Start on a custom port
  pagebrief serve --port 3000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), port, host)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "HTTP server port (default from config: 8080)")
	cmd.Flags().StringVar(&host, "host", "", "HTTP server host (default from config: 127.0.0.1)")

	return cmd
}

func runServe(ctx context.Context, port int, host string) error {
	cfg := config.Get()

	serverCfg := cfg.Server
	if port != 0 {
		serverCfg.Port = port
	}
	if host != "" {
		serverCfg.Host = host
	}

	p, err := newRunner(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize summarizer: %w", err)
	}
	defer p.Close()

	srv, err := server.New(p, serverCfg)
	if err != nil {
		return err
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Server listening", "addr", "http://"+srv.Addr())
		logger.Info("Press Ctrl+C to stop")
		serverErrors <- srv.Start()
	}()

	// Block until the server fails or the command context is cancelled
	select {
	case err := <-serverErrors:
		if err != nil {
			logger.Error("Server failed", err)
		}
		return err
	case <-ctx.Done():
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Graceful shutdown failed", err)
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}
