package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// Format represents the log output format
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// WriterLogger writes structured log lines to an io.Writer in text or
// JSON format, filtering by minimum level.
type WriterLogger struct {
	mu     sync.Mutex
	writer io.Writer
	closer io.Closer
	format Format
	level  Level
}

// NewStderrLogger creates a text logger on standard error.
// This is what --verbose per-action output goes through.
func NewStderrLogger(level Level) *WriterLogger {
	return &WriterLogger{
		writer: os.Stderr,
		format: FormatText,
		level:  level,
	}
}

// NewFileLogger creates a logger appending to the given file,
// creating parent directories as needed.
func NewFileLogger(path string, format Format, level Level) (*WriterLogger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return &WriterLogger{
		writer: file,
		closer: file,
		format: format,
		level:  level,
	}, nil
}

// Debug logs a debug message
func (l *WriterLogger) Debug(ctx context.Context, msg string, fields Fields) {
	l.log(DebugLevel, msg, nil, fields)
}

// Info logs an info message
func (l *WriterLogger) Info(ctx context.Context, msg string, fields Fields) {
	l.log(InfoLevel, msg, nil, fields)
}

// Warn logs a warning message
func (l *WriterLogger) Warn(ctx context.Context, msg string, fields Fields) {
	l.log(WarnLevel, msg, nil, fields)
}

// Error logs an error message
func (l *WriterLogger) Error(ctx context.Context, msg string, err error, fields Fields) {
	l.log(ErrorLevel, msg, err, fields)
}

// Close flushes and closes the underlying file, if any
func (l *WriterLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

func (l *WriterLogger) log(level Level, msg string, err error, fields Fields) {
	if level < l.level {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	var line []byte
	if l.format == FormatJSON {
		line = l.formatJSON(level, msg, err, fields)
	} else {
		line = l.formatText(level, msg, err, fields)
	}
	if line != nil {
		l.writer.Write(line)
	}
}

func (l *WriterLogger) formatJSON(level Level, msg string, err error, fields Fields) []byte {
	entry := map[string]interface{}{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"level":     LevelString(level),
		"message":   msg,
	}
	if err != nil {
		entry["error"] = err.Error()
	}
	for k, v := range fields {
		entry[k] = v
	}

	data, jsonErr := json.Marshal(entry)
	if jsonErr != nil {
		return nil
	}
	return append(data, '\n')
}

func (l *WriterLogger) formatText(level Level, msg string, err error, fields Fields) []byte {
	line := fmt.Sprintf("%s [%s] %s",
		time.Now().UTC().Format("2006-01-02T15:04:05.000Z"),
		LevelString(level), msg)

	if err != nil {
		line += fmt.Sprintf(" error=%q", err.Error())
	}

	// Deterministic field order keeps text output diffable.
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		line += fmt.Sprintf(" %s=%v", k, fields[k])
	}

	return []byte(line + "\n")
}
