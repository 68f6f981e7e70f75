package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestConfigure_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	Configure(Options{Level: "debug", Format: "json", Output: &buf})
	t.Cleanup(func() { Configure(Options{Level: "info", Format: "console"}) })

	Info("Fetching page", "url", "https://example.com", "attempt", 1)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["message"] != "Fetching page" {
		t.Errorf("Expected message 'Fetching page', got %v", entry["message"])
	}
	if entry["url"] != "https://example.com" {
		t.Errorf("Expected url field, got %v", entry["url"])
	}
	if entry["level"] != "info" {
		t.Errorf("Expected level info, got %v", entry["level"])
	}
}

func TestConfigure_LevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	Configure(Options{Level: "warn", Format: "json", Output: &buf})
	t.Cleanup(func() { Configure(Options{Level: "info", Format: "console"}) })

	Debug("hidden")
	Info("hidden too")
	Error("Summary failed", errors.New("quota exceeded"))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Expected debug/info lines to be filtered, got %q", out)
	}
	if !strings.Contains(out, "quota exceeded") {
		t.Errorf("Expected error text in output, got %q", out)
	}
}

func TestConfigure_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	Configure(Options{Level: "loud", Format: "json", Output: &buf})
	t.Cleanup(func() { Configure(Options{Level: "info", Format: "console"}) })

	Debug("not shown")
	Info("shown")

	if strings.Contains(buf.String(), "not shown") {
		t.Error("Expected debug to be filtered at fallback info level")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Error("Expected info line to be written")
	}
}
