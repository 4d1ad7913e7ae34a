package models

// Options configures a sync invocation
type Options struct {
	// DryRun computes and reports all actions without mutating the
	// target store
	DryRun bool

	// Verbose emits per-action log lines; it never affects control flow
	// or results
	Verbose bool
}

// Result accumulates the outcome of one sync invocation. It is owned by
// a single invocation and never mutated after being returned.
type Result struct {
	// FilesCopied counts files written to the target
	FilesCopied int

	// FilesSkipped counts files already up to date
	FilesSkipped int

	// DirsCreated counts directories created in the target
	DirsCreated int

	// Errors holds human-readable soft-failure descriptions, in the
	// order they occurred
	Errors []string
}

// AddError records a soft failure
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// Status derives the overall status from the recorded soft failures
func (r *Result) Status() SyncStatus {
	if len(r.Errors) > 0 {
		return StatusPartial
	}
	return StatusSuccess
}

// SyncStatus represents the overall result
type SyncStatus string

const (
	// StatusSuccess indicates all operations completed successfully
	StatusSuccess SyncStatus = "success"
	// StatusPartial indicates some per-file operations failed
	StatusPartial SyncStatus = "partial"
	// StatusFailed indicates the sync operation aborted
	StatusFailed SyncStatus = "failed"
)

// ExitCode returns the process exit code for the sync status.
// Soft failures still exit zero; only an aborted run is non-zero.
func (s SyncStatus) ExitCode() int {
	switch s {
	case StatusSuccess, StatusPartial:
		return 0
	case StatusFailed:
		return 1
	default:
		return 1
	}
}
