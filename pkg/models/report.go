package models

import (
	"time"
)

// Report wraps a Result with run identification and timing for output
// formatting
type Report struct {
	// OperationID uniquely identifies the run
	OperationID string

	// SourceRoot is the session store root that was scanned
	SourceRoot string

	// Prefix is the identifier token that selected source subtrees
	Prefix string

	// TargetRoot is the repository sync directory written to
	TargetRoot string

	// DryRun records whether mutation was suppressed
	DryRun bool

	// Timing
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Result is the sync accumulator
	Result *Result

	// Status is the overall outcome
	Status SyncStatus
}

// ValidationError represents an invalid run configuration
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Operation describes a sync run before it starts
type Operation struct {
	ID         string
	SourceRoot string
	Prefix     string
	TargetRoot string
	DryRun     bool
	CreatedAt  time.Time
}

// Validate checks if the operation configuration is valid
func (op *Operation) Validate() error {
	if op.SourceRoot == "" {
		return &ValidationError{Field: "SourceRoot", Message: "source root is required"}
	}
	if op.Prefix == "" {
		return &ValidationError{Field: "Prefix", Message: "identifier prefix is required"}
	}
	if op.TargetRoot == "" {
		return &ValidationError{Field: "TargetRoot", Message: "target root is required"}
	}
	return nil
}
