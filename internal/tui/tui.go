package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"pagebrief/internal/core"
	"pagebrief/internal/pipeline"
	"pagebrief/internal/render"
	"pagebrief/internal/summarize"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type state int

const (
	stateURL state = iota
	stateStyle
	stateRunning
	stateResult
	stateError
)

// ExportFunc writes a summary to disk and returns the written path.
type ExportFunc func(summary *core.Summary, path string, format render.Format) (string, error)

// Options configures the interactive session.
type Options struct {
	OutputDir string     // Directory for saved PDF/DOCX files
	Export    ExportFunc // Defaults to render.Export
}

type resultMsg struct {
	result *pipeline.Result
	err    error
}

type savedMsg struct {
	path string
	err  error
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
)

// model is the state of the interactive summarizer.
type model struct {
	ctx    context.Context
	runner pipeline.Runner
	opts   Options

	state    state
	input    string
	url      string
	cursor   int
	style    summarize.Style
	result   *pipeline.Result
	err      error
	status   string
	width    int
	quitting bool
}

// NewModel returns the initial model, waiting for a URL.
func NewModel(ctx context.Context, runner pipeline.Runner, opts Options) model {
	if opts.Export == nil {
		opts.Export = render.Export
	}
	return model{
		ctx:    ctx,
		runner: runner,
		opts:   opts,
		state:  stateURL,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model accordingly.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case resultMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateError
			return m, nil
		}
		m.result = msg.result
		m.state = stateResult
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.status = errorStyle.Render("Save failed: " + msg.err.Error())
		} else {
			m.status = statusStyle.Render("Saved to " + msg.path)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case stateURL:
		switch msg.Type {
		case tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			url := strings.TrimSpace(m.input)
			if url == "" {
				m.status = errorStyle.Render("Please enter a URL")
				return m, nil
			}
			m.url = url
			m.status = ""
			m.state = stateStyle
		case tea.KeyBackspace:
			if r := []rune(m.input); len(r) > 0 {
				m.input = string(r[:len(r)-1])
			}
		case tea.KeyRunes, tea.KeySpace:
			m.input += string(msg.Runes)
		}

	case stateStyle:
		switch key := msg.String(); key {
		case "esc":
			m.state = stateURL
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(summarize.Styles)-1 {
				m.cursor++
			}
		case "enter":
			return m.start(summarize.Styles[m.cursor])
		case "1", "2", "3", "4", "5", "6":
			return m.start(summarize.ParseStyle(key))
		case "q":
			m.quitting = true
			return m, tea.Quit
		}

	case stateResult:
		switch msg.String() {
		case "p":
			return m, m.save(render.FormatPDF)
		case "d":
			return m, m.save(render.FormatDOCX)
		case "n":
			return m.reset(), nil
		case "q", "esc":
			m.quitting = true
			return m, tea.Quit
		}

	case stateError:
		switch msg.String() {
		case "n", "enter":
			return m.reset(), nil
		case "q", "esc":
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m model) start(style summarize.Style) (tea.Model, tea.Cmd) {
	m.style = style
	m.state = stateRunning
	m.status = ""
	runner, ctx, url := m.runner, m.ctx, m.url
	return m, func() tea.Msg {
		result, err := runner.Run(ctx, url, style)
		return resultMsg{result: result, err: err}
	}
}

func (m model) save(format render.Format) tea.Cmd {
	summary := m.result.Summary
	path := filepath.Join(m.opts.OutputDir, render.DefaultFilename(summary, format))
	export := m.opts.Export
	return func() tea.Msg {
		written, err := export(summary, path, format)
		return savedMsg{path: written, err: err}
	}
}

func (m model) reset() model {
	m.state = stateURL
	m.input = ""
	m.url = ""
	m.cursor = 0
	m.result = nil
	m.err = nil
	m.status = ""
	return m
}

// View renders the TUI.
func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("pagebrief") + "\n\n")

	switch m.state {
	case stateURL:
		b.WriteString(promptStyle.Render("Enter the website URL: ") + m.input + cursorStyle.Render("█") + "\n")
		b.WriteString(helpStyle.Render("\n[enter] continue | [esc] quit"))

	case stateStyle:
		b.WriteString(fmt.Sprintf("URL: %s\n\nChoose summary style:\n", m.url))
		for i, style := range summarize.Styles {
			cursor := " "
			line := fmt.Sprintf("%d. %s", i+1, style.Label())
			if i == m.cursor {
				cursor = cursorStyle.Render(">")
				line = cursorStyle.Render(line)
			}
			b.WriteString(fmt.Sprintf("%s %s\n", cursor, line))
		}
		b.WriteString(helpStyle.Render("\n[1-6] choose | [↑/↓] move | [enter] select | [esc] back"))

	case stateRunning:
		b.WriteString(fmt.Sprintf("Getting website content and creating %s summary...\n", m.style))
		b.WriteString(helpStyle.Render("\n[ctrl+c] quit"))

	case stateResult:
		summary := m.result.Summary
		header := fmt.Sprintf("SUMMARY: %s\n%s", summary.DisplayTitle(), summary.URL)
		if summary.Truncated {
			header += "\n(page text was truncated before summarizing)"
		}
		box := boxStyle
		if m.width > 8 {
			box = box.Width(m.width - 4)
		}
		b.WriteString(box.Render(header + "\n\n" + strings.TrimSpace(summary.SummaryText)))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("[p] save as PDF | [d] save as Word | [n] new URL | [q] quit"))

	case stateError:
		b.WriteString(errorStyle.Render(m.err.Error()) + "\n")
		b.WriteString(helpStyle.Render("\n[n] try another URL | [q] quit"))
	}

	if m.status != "" {
		b.WriteString("\n" + m.status)
	}

	return lipgloss.NewStyle().Margin(1, 2).Render(b.String())
}

// Run starts the interactive session and blocks until the user quits.
func Run(ctx context.Context, runner pipeline.Runner, opts Options) error {
	p := tea.NewProgram(NewModel(ctx, runner, opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
