package output

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/sessync/sessync/pkg/models"
)

// JSONFormatter formats the final report as JSON for automation
type JSONFormatter struct {
	writer io.Writer
}

// JSONReportData is the serialized report
type JSONReportData struct {
	OperationID  string   `json:"operation_id"`
	SourceRoot   string   `json:"source_root"`
	Prefix       string   `json:"prefix"`
	TargetRoot   string   `json:"target_root"`
	DryRun       bool     `json:"dry_run"`
	Status       string   `json:"status"`
	Duration     string   `json:"duration"`
	DurationMs   int64    `json:"duration_ms"`
	FilesCopied  int      `json:"files_copied"`
	FilesSkipped int      `json:"files_skipped"`
	DirsCreated  int      `json:"dirs_created"`
	Errors       []string `json:"errors,omitempty"`
}

// NewJSONFormatter creates a JSON formatter writing to stdout
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{writer: os.Stdout}
}

// NewJSONFormatterTo creates a JSON formatter writing to w
func NewJSONFormatterTo(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// Complete renders the finished report as indented JSON
func (f *JSONFormatter) Complete(report *models.Report) error {
	data := JSONReportData{
		OperationID:  report.OperationID,
		SourceRoot:   report.SourceRoot,
		Prefix:       report.Prefix,
		TargetRoot:   report.TargetRoot,
		DryRun:       report.DryRun,
		Status:       string(report.Status),
		Duration:     report.Duration.Round(time.Millisecond).String(),
		DurationMs:   report.Duration.Milliseconds(),
		FilesCopied:  report.Result.FilesCopied,
		FilesSkipped: report.Result.FilesSkipped,
		DirsCreated:  report.Result.DirsCreated,
		Errors:       report.Result.Errors,
	}

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Error reports a run-aborting error as a JSON object
func (f *JSONFormatter) Error(err error) error {
	return json.NewEncoder(f.writer).Encode(map[string]string{
		"error": err.Error(),
	})
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}
