package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sessync/sessync/pkg/ratelimit"
)

// Local is a filesystem-based storage backend. Paths are used as given;
// the backend imposes no root of its own.
type Local struct {
	limiter *ratelimit.Limiter
}

// LocalOption configures a Local backend
type LocalOption func(*Local)

// WithBandwidthLimit caps copy throughput in bytes per second.
// A limit of zero or less disables limiting.
func WithBandwidthLimit(bytesPerSecond int64) LocalOption {
	return func(l *Local) {
		l.limiter = ratelimit.NewLimiter(bytesPerSecond)
	}
}

// NewLocal creates a new local filesystem backend
func NewLocal(opts ...LocalOption) *Local {
	l := &Local{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// ListDirectory returns the direct children of path
func (l *Local) ListDirectory(ctx context.Context, path string) ([]FileInfo, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("list %s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to list directory: %w", err)
	}

	infos := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			// Entry vanished between listing and stat; skip it.
			continue
		}

		infos = append(infos, FileInfo{
			Path:    filepath.Join(path, entry.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
			IsDir:   info.IsDir(),
		})
	}

	return infos, nil
}

// Stat returns metadata for a single entry
func (l *Local) Stat(ctx context.Context, path string) (*FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("stat %s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to stat entry: %w", err)
	}

	return &FileInfo{
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime(),
		IsDir:   info.IsDir(),
	}, nil
}

// CopyFile copies file bytes from one path to another
func (l *Local) CopyFile(ctx context.Context, from, to string) error {
	src, err := os.Open(from)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("copy %s: %w", from, ErrNotFound)
		}
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer src.Close()

	if err := os.MkdirAll(filepath.Dir(to), 0755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	dst, err := os.Create(to)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	reader := ratelimit.NewReader(ctx, src, l.limiter)
	if _, err := io.Copy(dst, reader); err != nil {
		return fmt.Errorf("failed to copy file contents: %w", err)
	}

	return nil
}

// MkdirAll creates a directory and all necessary parents
func (l *Local) MkdirAll(ctx context.Context, path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

// Exists checks if a file or directory exists
func (l *Local) Exists(ctx context.Context, path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check existence: %w", err)
}

// SetModTime sets the modification time of an entry
func (l *Local) SetModTime(ctx context.Context, path string, t time.Time) error {
	if err := os.Chtimes(path, t, t); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("set mtime %s: %w", path, ErrNotFound)
		}
		return fmt.Errorf("failed to set modification time: %w", err)
	}
	return nil
}

// Close releases resources (no-op for local filesystem)
func (l *Local) Close() error {
	return nil
}
