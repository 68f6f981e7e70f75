package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pagebrief/internal/config"
	"pagebrief/internal/core"
	"pagebrief/internal/fetch"
	"pagebrief/internal/logger"
	"pagebrief/internal/pipeline"
	"pagebrief/internal/summarize"
)

type fakeRunner struct {
	err      error
	gotURL   string
	gotStyle summarize.Style
	closed   bool
}

func (f *fakeRunner) Run(ctx context.Context, rawURL string, style summarize.Style) (*pipeline.Result, error) {
	f.gotURL = rawURL
	f.gotStyle = style
	if f.err != nil {
		return nil, f.err
	}
	return &pipeline.Result{Summary: &core.Summary{
		URL:           "https://" + rawURL,
		Title:         "Example",
		Style:         style.String(),
		SummaryText:   "1. First\n2. Second",
		DateGenerated: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}}, nil
}

func (f *fakeRunner) Close() { f.closed = true }

func setup(t *testing.T, r runner) {
	t.Helper()
	config.Reset()
	t.Cleanup(config.Reset)
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY", "GOOGLE_AI_API_KEY", "OPENAI_API_KEY", "PAGEBRIEF_PROVIDER"} {
		t.Setenv(key, "")
	}
	cfgFile = ""

	if r != nil {
		orig := newRunner
		newRunner = func(*config.Config) (runner, error) { return r, nil }
		t.Cleanup(func() { newRunner = orig })
	}
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestSummarizeCmd_Terminal(t *testing.T) {
	fake := &fakeRunner{}
	setup(t, fake)

	out, _, err := execute(t, "summarize", "example.com", "--style", "4")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if fake.gotURL != "example.com" || fake.gotStyle != summarize.StyleBullets {
		t.Errorf("Runner got %q/%s", fake.gotURL, fake.gotStyle)
	}
	if !fake.closed {
		t.Error("Runner should be closed")
	}
	if !strings.Contains(out, "SUMMARY: Example") || !strings.Contains(out, "2. Second") {
		t.Errorf("Unexpected output:\n%s", out)
	}
}

func TestSummarizeCmd_DefaultStyleIsGeneral(t *testing.T) {
	fake := &fakeRunner{}
	setup(t, fake)

	if _, _, err := execute(t, "summarize", "example.com"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if fake.gotStyle != summarize.StyleGeneral {
		t.Errorf("Expected general, got %s", fake.gotStyle)
	}
}

func TestSummarizeCmd_JSON(t *testing.T) {
	setup(t, &fakeRunner{})

	out, _, err := execute(t, "summarize", "example.com", "--style", "research", "--format", "json")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	var summary core.Summary
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("Output is not JSON: %v\n%s", err, out)
	}
	if summary.Style != "research" {
		t.Errorf("Expected research style, got %s", summary.Style)
	}
}

func TestSummarizeCmd_MarkdownToFile(t *testing.T) {
	setup(t, &fakeRunner{})
	path := filepath.Join(t.TempDir(), "summary.md")

	if _, _, err := execute(t, "summarize", "example.com", "--format", "markdown", "--output", path); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected markdown file: %v", err)
	}
	if !strings.HasPrefix(string(data), "# Example") {
		t.Errorf("Unexpected markdown:\n%s", data)
	}
}

func TestSummarizeCmd_OutputCreatesDirectories(t *testing.T) {
	testCases := []struct {
		format string
		file   string
		prefix string
	}{
		{format: "json", file: "summary.json", prefix: "{"},
		{format: "markdown", file: "summary.md", prefix: "# Example"},
	}

	for _, tc := range testCases {
		t.Run(tc.format, func(t *testing.T) {
			setup(t, &fakeRunner{})
			path := filepath.Join(t.TempDir(), "reports", "2025", tc.file)

			out, _, err := execute(t, "summarize", "example.com", "--format", tc.format, "--output", path)
			if err != nil {
				t.Fatalf("Execute failed: %v", err)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("Expected output file: %v", err)
			}
			if !strings.HasPrefix(string(data), tc.prefix) {
				t.Errorf("Unexpected %s output:\n%s", tc.format, data)
			}
			if !strings.Contains(out, path) {
				t.Errorf("Expected saved path in output, got %q", out)
			}
		})
	}
}

func TestSummarizeCmd_Export(t *testing.T) {
	setup(t, &fakeRunner{})
	path := filepath.Join(t.TempDir(), "out", "brief.pdf")

	_, stderr, err := execute(t, "summarize", "example.com", "--export-path", path)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected exported file: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("Expected PDF content")
	}
	if !strings.Contains(stderr, path) {
		t.Errorf("Expected saved path on stderr, got %q", stderr)
	}
}

func TestSummarizeCmd_InvalidFlags(t *testing.T) {
	fake := &fakeRunner{}
	setup(t, fake)

	if _, _, err := execute(t, "summarize", "example.com", "--format", "html"); err == nil {
		t.Error("Expected error for invalid format")
	}
	if _, _, err := execute(t, "summarize", "example.com", "--export", "rtf"); err == nil {
		t.Error("Expected error for invalid export format")
	}
	if fake.gotURL != "" {
		t.Error("Runner should not be called when flags are invalid")
	}
}

func TestSummarizeCmd_RunFailure(t *testing.T) {
	fetchErr := &fetch.FetchError{URL: "https://example.com", StatusCode: 500, Err: errors.New("server error")}
	setup(t, &fakeRunner{err: fetchErr})
	path := filepath.Join(t.TempDir(), "never.pdf")

	out, _, err := execute(t, "summarize", "example.com", "--export-path", path)
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Expected FetchError, got %v", err)
	}
	if out != "" {
		t.Errorf("Nothing should be printed on failure, got %q", out)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("No export should be written after a failure")
	}
}

func TestSummarizeCmd_MissingAPIKey(t *testing.T) {
	setup(t, nil)

	_, _, err := execute(t, "summarize", "example.com")
	if !errors.Is(err, config.ErrMissingAPIKey) {
		t.Errorf("Expected ErrMissingAPIKey, got %v", err)
	}
}

func TestStylesCmd(t *testing.T) {
	setup(t, nil)

	out, _, err := execute(t, "styles")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	for _, want := range []string{"1. General overview", "4. Key points", "--style resume"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logger.Configure(logger.Options{Format: "json", Output: &buf})
	t.Cleanup(func() { logger.Configure(logger.Options{}) })
	return &buf
}

func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to find a free port: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	_ = ln.Close()
	return port
}

func TestRunServe_PortInUse(t *testing.T) {
	setup(t, &fakeRunner{})
	logs := captureLogs(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to listen: %v", err)
	}
	defer ln.Close()
	port := ln.Addr().(*net.TCPAddr).Port

	if err := runServe(context.Background(), port, "127.0.0.1"); err == nil {
		t.Fatal("Expected error when the port is taken")
	}

	var sawListening, sawFailure bool
	for _, line := range strings.Split(strings.TrimSpace(logs.String()), "\n") {
		var event map[string]any
		if err := json.Unmarshal([]byte(line), &event); err != nil {
			t.Fatalf("Log line is not JSON: %q", line)
		}
		switch event["message"] {
		case "Server listening":
			sawListening = event["addr"] == fmt.Sprintf("http://127.0.0.1:%d", port)
		case "Server failed":
			sawFailure = event["level"] == "error" && event["error"] != nil
		}
	}
	if !sawListening {
		t.Errorf("Expected listening event with addr, got:\n%s", logs.String())
	}
	if !sawFailure {
		t.Errorf("Expected error event, got:\n%s", logs.String())
	}
}

func TestRunServe_ShutdownOnCancel(t *testing.T) {
	fake := &fakeRunner{}
	setup(t, fake)
	captureLogs(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := runServe(ctx, freePort(t), "127.0.0.1"); err != nil {
		t.Fatalf("Expected clean shutdown, got %v", err)
	}
	if !fake.closed {
		t.Error("Runner should be closed after shutdown")
	}
}
