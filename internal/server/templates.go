package server

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"pagebrief/internal/core"
	"pagebrief/internal/summarize"
)

//go:embed templates/*.html
var templateFS embed.FS

// styleOption is one entry of the style select box
type styleOption struct {
	Number   int
	Name     string
	Label    string
	Selected bool
}

// PageData is the data passed to the index, result and error templates
type PageData struct {
	URL     string
	Styles  []styleOption
	Summary *core.Summary
	Error   string
}

func newPageData(url string, selected summarize.Style) PageData {
	options := make([]styleOption, 0, len(summarize.Styles))
	for i, style := range summarize.Styles {
		options = append(options, styleOption{
			Number:   i + 1,
			Name:     style.String(),
			Label:    style.Label(),
			Selected: style == selected,
		})
	}
	return PageData{URL: url, Styles: options}
}

func parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"markdown":   renderMarkdown,
		"formatDate": formatDate,
		"rfc3339":    func(t time.Time) string { return t.Format(time.RFC3339) },
	}

	tmpl, err := template.New("pagebrief").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}

// render executes a named template
func (s *Server) render(w io.Writer, name string, data PageData) error {
	return s.templates.ExecuteTemplate(w, name, data)
}

// formatDate formats a time as "Jan 2, 2006"
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}
