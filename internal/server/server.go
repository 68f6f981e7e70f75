package server

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"pagebrief/internal/config"
	"pagebrief/internal/logger"
	"pagebrief/internal/pipeline"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Server represents the HTTP server for the summarize form
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	runner     pipeline.Runner
	config     config.Server
	log        *zerolog.Logger
	templates  *template.Template
}

// New creates a new HTTP server instance
func New(runner pipeline.Runner, cfg config.Server) (*Server, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	s := &Server{
		router:    chi.NewRouter(),
		runner:    runner,
		config:    cfg,
		log:       logger.Get(),
		templates: templates,
	}

	s.setupMiddleware()
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return s, nil
}

// setupMiddleware configures middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.log))
	s.router.Use(middleware.Recoverer)

	// Generation can take up to a minute; leave room for fetch and export
	timeout := s.config.WriteTimeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	s.router.Use(middleware.Timeout(timeout))
	s.router.Use(securityHeaders)
}

// setupRoutes configures routes for the server
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)
	s.router.Get("/api/styles", s.handleStyles)

	s.router.Get("/", s.handleIndex)
	s.router.With(noCache).Post("/summarize", s.handleSummarize)
	s.router.Post("/export", s.handleExport)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().
		Str("addr", s.httpServer.Addr).
		Dur("read_timeout", s.config.ReadTimeout).
		Dur("write_timeout", s.config.WriteTimeout).
		Msg("Starting HTTP server")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed to start: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server gracefully...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.log.Info().Msg("HTTP server stopped")
	return nil
}

// Addr returns the configured listen address
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Router returns the chi router instance (useful for testing)
func (s *Server) Router() *chi.Mux {
	return s.router
}
