package logging

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestFileLoggerText tests text-format file logging
func TestFileLoggerText(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "sessync.log")

	logger, err := NewFileLogger(logPath, FormatText, InfoLevel)
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}

	ctx := context.Background()
	logger.Debug(ctx, "should be filtered", nil)
	logger.Info(ctx, "copied file", Fields{"path": "/a/b", "bytes": 12})
	logger.Error(ctx, "copy failed", errors.New("disk full"), nil)

	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	content := string(data)

	if strings.Contains(content, "should be filtered") {
		t.Error("debug line should be filtered at info level")
	}
	if !strings.Contains(content, "[INFO] copied file") {
		t.Errorf("missing info line, got:\n%s", content)
	}
	if !strings.Contains(content, "path=/a/b") {
		t.Errorf("missing structured field, got:\n%s", content)
	}
	if !strings.Contains(content, `error="disk full"`) {
		t.Errorf("missing error detail, got:\n%s", content)
	}
}

// TestFileLoggerJSON tests JSON-format file logging
func TestFileLoggerJSON(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "sessync.log")

	logger, err := NewFileLogger(logPath, FormatJSON, DebugLevel)
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	logger.Warn(context.Background(), "listing failed", Fields{"dir": "/x"})
	logger.Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	var entry map[string]interface{}
	if err := json.Unmarshal(data, &entry); err != nil {
		t.Fatalf("log line is not valid JSON: %v", err)
	}
	if entry["level"] != "WARN" {
		t.Errorf("level = %v, want WARN", entry["level"])
	}
	if entry["dir"] != "/x" {
		t.Errorf("dir = %v, want /x", entry["dir"])
	}
}

// TestParseLevel tests level parsing
func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", DebugLevel},
		{"INFO", InfoLevel},
		{"warning", WarnLevel},
		{"error", ErrorLevel},
		{"bogus", InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
