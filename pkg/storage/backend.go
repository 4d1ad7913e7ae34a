package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates the requested entry does not exist.
// Backends wrap it so callers can test with errors.Is.
var ErrNotFound = errors.New("entry not found")

// PathError indicates a path that cannot be used for the requested
// operation (malformed, not relative to the expected root, ...).
type PathError struct {
	Path    string
	Message string
}

func (e *PathError) Error() string {
	return "invalid path '" + e.Path + "': " + e.Message
}

// FileInfo describes one filesystem entry. It is an immutable value
// produced by listing and stat calls.
type FileInfo struct {
	// Path is the absolute path of the entry
	Path string

	// Size in bytes (zero for directories)
	Size int64

	// ModTime is the last modification time
	ModTime time.Time

	// IsDir indicates if this is a directory
	IsDir bool
}

// Backend defines the narrow storage capability the sync engine runs
// against. Implementations include the local filesystem and an
// in-memory store used in tests; both enforce the same not-found and
// existence semantics.
type Backend interface {
	// ListDirectory returns the direct children of path (non-recursive)
	ListDirectory(ctx context.Context, path string) ([]FileInfo, error)

	// Stat returns metadata for a single entry
	Stat(ctx context.Context, path string) (*FileInfo, error)

	// CopyFile copies file bytes from one path to another, creating the
	// destination's parent directories as needed
	CopyFile(ctx context.Context, from, to string) error

	// MkdirAll creates a directory and all necessary parents; it is
	// idempotent
	MkdirAll(ctx context.Context, path string) error

	// Exists checks if a file or directory exists
	Exists(ctx context.Context, path string) (bool, error)

	// SetModTime sets the modification time of an entry
	SetModTime(ctx context.Context, path string, t time.Time) error

	// Close releases any resources held by the backend
	Close() error
}
