package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pagebrief/internal/core"
	"pagebrief/internal/fetch"
	"pagebrief/internal/render"
	"pagebrief/internal/summarize"

	"github.com/go-chi/chi/v5/middleware"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// ErrorResponse is the JSON body of a failed request
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// StyleResponse describes one available summary style
type StyleResponse struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
	Label  string `json:"label"`
}

// handleHealth returns server health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// handleStyles lists the summary styles in menu order
func (s *Server) handleStyles(w http.ResponseWriter, r *http.Request) {
	styles := make([]StyleResponse, 0, len(summarize.Styles))
	for i, style := range summarize.Styles {
		styles = append(styles, StyleResponse{Number: i + 1, Name: style.String(), Label: style.Label()})
	}
	s.respondJSON(w, http.StatusOK, styles)
}

// handleIndex renders the summarize form
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := newPageData("", summarize.StyleGeneral)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.render(w, "index", data); err != nil {
		s.log.Error().Err(err).Msg("Failed to render index")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

// handleSummarize runs the pipeline for the submitted URL and style. HTMX
// requests get the result partial; JSON clients get the summary object.
func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.respondError(w, r, http.StatusBadRequest, "invalid form submission", "")
		return
	}

	rawURL := strings.TrimSpace(r.FormValue("url"))
	style := summarize.ParseStyle(r.FormValue("style"))
	if rawURL == "" {
		s.respondError(w, r, http.StatusBadRequest, "Please enter a URL", rawURL)
		return
	}

	result, err := s.runner.Run(r.Context(), rawURL, style)
	if err != nil {
		s.log.Warn().
			Err(err).
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("url", rawURL).
			Msg("Summarize request failed")
		s.respondError(w, r, statusForError(err), err.Error(), rawURL)
		return
	}

	if wantsJSON(r) {
		s.respondJSON(w, http.StatusOK, result.Summary)
		return
	}

	data := newPageData(rawURL, style)
	data.Summary = result.Summary

	name := "index"
	if isHTMXRequest(r) {
		name = "result"
	}
	s.renderHTML(w, http.StatusOK, name, data)
}

// handleExport rebuilds a summary from the posted result form and returns it
// as a PDF or Word download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	format, err := render.ParseFormat(r.FormValue("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	summary := summaryFromForm(r)
	if strings.TrimSpace(summary.SummaryText) == "" {
		http.Error(w, "nothing to export: summary text is empty", http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	switch format {
	case render.FormatPDF:
		err = render.RenderPDF(&buf, summary)
	case render.FormatMarkdown:
		buf.WriteString(render.Markdown(summary))
	case render.FormatJSON:
		var data []byte
		if data, err = render.JSON(summary); err == nil {
			buf.Write(data)
		}
	default:
		err = s.exportViaFile(&buf, summary, format)
	}
	if err != nil {
		s.log.Error().Err(err).Str("format", string(format)).Msg("Export failed")
		http.Error(w, "Failed to export summary", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+render.DefaultFilename(summary, format)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// exportViaFile renders formats that can only be saved to disk
func (s *Server) exportViaFile(buf *bytes.Buffer, summary *core.Summary, format render.Format) error {
	dir, err := os.MkdirTemp("", "pagebrief-export-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	path, err := render.Export(summary, filepath.Join(dir, render.DefaultFilename(summary, format)), format)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}

func summaryFromForm(r *http.Request) *core.Summary {
	generated, err := time.Parse(time.RFC3339, r.FormValue("date"))
	if err != nil {
		generated = time.Now().UTC()
	}
	return &core.Summary{
		URL:           r.FormValue("url"),
		Title:         r.FormValue("title"),
		Style:         summarize.ParseStyle(r.FormValue("style")).String(),
		SummaryText:   r.FormValue("summary_text"),
		ModelUsed:     r.FormValue("model"),
		DateGenerated: generated,
	}
}

// statusForError maps pipeline failures onto HTTP status codes
func statusForError(err error) int {
	var fetchErr *fetch.FetchError
	var tooShort *fetch.TooShortError
	var timeout *summarize.TimeoutError
	var genErr *summarize.GenerationError

	switch {
	case errors.As(err, &tooShort):
		return http.StatusUnprocessableEntity
	case errors.As(err, &timeout):
		return http.StatusGatewayTimeout
	case errors.As(err, &fetchErr), errors.As(err, &genErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError reports a failure in the shape the client asked for. HTMX
// swaps ignore non-2xx responses, so the error partial is sent with 200.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, status int, message, rawURL string) {
	if wantsJSON(r) {
		s.respondJSON(w, status, ErrorResponse{
			Error:     message,
			RequestID: middleware.GetReqID(r.Context()),
		})
		return
	}

	data := newPageData(rawURL, summarize.ParseStyle(r.FormValue("style")))
	data.Error = message

	if isHTMXRequest(r) {
		setHTMXRetarget(w, "#result")
		s.renderHTML(w, http.StatusOK, "error", data)
		return
	}
	s.renderHTML(w, status, "index", data)
}

// renderHTML buffers a template so a render failure can still become a 500
func (s *Server) renderHTML(w http.ResponseWriter, status int, name string, data PageData) {
	var buf bytes.Buffer
	if err := s.render(&buf, name, data); err != nil {
		s.log.Error().Err(err).Str("template", name).Msg("Failed to render template")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// respondJSON writes a JSON response
func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
