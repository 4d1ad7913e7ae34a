package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sessync/sessync/pkg/models"
)

// HumanFormatter formats the final report for people
type HumanFormatter struct {
	writer io.Writer
}

// NewHumanFormatter creates a human-readable formatter writing to stdout
func NewHumanFormatter() *HumanFormatter {
	return &HumanFormatter{writer: os.Stdout}
}

// NewHumanFormatterTo creates a human-readable formatter writing to w
func NewHumanFormatterTo(w io.Writer) *HumanFormatter {
	return &HumanFormatter{writer: w}
}

// Complete renders the finished report
func (f *HumanFormatter) Complete(report *models.Report) error {
	fmt.Fprintf(f.writer, "\nSync completed in %s\n", report.Duration.Round(time.Millisecond))
	if report.DryRun {
		fmt.Fprintf(f.writer, "Mode: dry run (no changes were made)\n")
	}
	fmt.Fprintf(f.writer, "\n")
	fmt.Fprintf(f.writer, "  Files copied:        %d\n", report.Result.FilesCopied)
	fmt.Fprintf(f.writer, "  Files skipped:       %d\n", report.Result.FilesSkipped)
	fmt.Fprintf(f.writer, "  Directories created: %d\n", report.Result.DirsCreated)

	if len(report.Result.Errors) > 0 {
		fmt.Fprintf(f.writer, "\nErrors encountered:\n")
		for _, msg := range report.Result.Errors {
			fmt.Fprintf(f.writer, "  - %s\n", msg)
		}
	}

	fmt.Fprintf(f.writer, "\nStatus: %s\n", report.Status)
	return nil
}

// Error reports a run-aborting error
func (f *HumanFormatter) Error(err error) error {
	fmt.Fprintf(f.writer, "Error: %v\n", err)
	return nil
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}
