package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zulandar/cave/internal/config"
)

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := New(config.LoggingConfig{Level: "chatty"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNew_ConsoleRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := newWithConsole(config.LoggingConfig{Level: "warn"}, &buf)
	if err != nil {
		t.Fatalf("newWithConsole: %v", err)
	}
	log.Info("hidden")
	log.Warn("shown")
	_ = log.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message leaked through warn level: %s", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "WARN") {
		t.Errorf("expected warn message in output, got: %s", out)
	}
}

func TestNew_WritesJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cave.log")
	var console bytes.Buffer
	log, err := newWithConsole(config.LoggingConfig{Level: "info", File: path, MaxSizeMB: 1}, &console)
	if err != nil {
		t.Fatalf("newWithConsole: %v", err)
	}
	log.Info("view loaded")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"view loaded"`) {
		t.Errorf("log file = %s, want JSON msg field", data)
	}
}
