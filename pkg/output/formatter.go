package output

import (
	"github.com/sessync/sessync/pkg/models"
)

// Observer receives per-action notifications while a sync runs.
// Implementations must not influence the sync outcome.
type Observer interface {
	// FileCopied is called after a file copy is decided (and, outside
	// dry-run, performed)
	FileCopied(path string)

	// FileSkipped is called for files already up to date
	FileSkipped(path string)

	// DirCreated is called for each directory creation
	DirCreated(path string)
}

// Formatter defines the interface for final report output.
// Implementations include human-readable and JSON formatters.
type Formatter interface {
	// Complete renders the finished report
	Complete(report *models.Report) error

	// Error reports a run-aborting error
	Error(err error) error

	// Name returns the formatter name
	Name() string
}
