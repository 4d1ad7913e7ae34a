package storage

import (
	"context"
	"fmt"
	"path"
	"sort"
	"sync"
	"time"
)

// memEntry is one stored file or directory
type memEntry struct {
	data    []byte
	modTime time.Time
	isDir   bool
}

// Memory is an in-memory storage backend. It mirrors the not-found and
// existence semantics of Local so engine logic is exercised identically
// under both, and it is safe for concurrent use.
type Memory struct {
	mu          sync.Mutex
	entries     map[string]*memEntry
	failListing []string
}

// NewMemory creates an empty in-memory backend
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]*memEntry)}
}

// AddFile stores a file with the given content and modification time,
// creating parent directories implicitly. Intended for test setup.
func (m *Memory) AddFile(p string, data []byte, modTime time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.addParents(p)
	m.entries[path.Clean(p)] = &memEntry{data: data, modTime: modTime}
}

// AddDir stores a directory, creating parents implicitly.
// Intended for test setup.
func (m *Memory) AddDir(p string, modTime time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.addParents(p)
	m.entries[path.Clean(p)] = &memEntry{modTime: modTime, isDir: true}
}

// FileContent returns the stored bytes of a file, or false when the
// path does not name a file.
func (m *Memory) FileContent(p string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[path.Clean(p)]
	if !ok || entry.isDir {
		return nil, false
	}
	return entry.data, true
}

// Paths returns all stored paths in sorted order
func (m *Memory) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	paths := make([]string, 0, len(m.entries))
	for p := range m.entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// FailListing marks a directory path so that listing it returns an
// error, simulating a permission-denied subtree.
func (m *Memory) FailListing(p string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failListing = append(m.failListing, path.Clean(p))
}

// addParents creates implicit parent directories (lock must be held)
func (m *Memory) addParents(p string) {
	dir := path.Dir(path.Clean(p))
	for dir != "/" && dir != "." {
		if _, ok := m.entries[dir]; !ok {
			m.entries[dir] = &memEntry{modTime: time.Now(), isDir: true}
		}
		dir = path.Dir(dir)
	}
}

// ListDirectory returns the direct children of path
func (m *Memory) ListDirectory(ctx context.Context, p string) ([]FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	clean := path.Clean(p)
	for _, failed := range m.failListing {
		if failed == clean {
			return nil, fmt.Errorf("failed to list directory: access denied: %s", clean)
		}
	}

	entry, ok := m.entries[clean]
	if !ok {
		return nil, fmt.Errorf("list %s: %w", clean, ErrNotFound)
	}
	if !entry.isDir {
		return nil, &PathError{Path: clean, Message: "not a directory"}
	}

	var infos []FileInfo
	for child, e := range m.entries {
		if path.Dir(child) == clean && child != clean {
			infos = append(infos, m.infoLocked(child, e))
		}
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Path < infos[j].Path })
	return infos, nil
}

// Stat returns metadata for a single entry
func (m *Memory) Stat(ctx context.Context, p string) (*FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	clean := path.Clean(p)
	entry, ok := m.entries[clean]
	if !ok {
		return nil, fmt.Errorf("stat %s: %w", clean, ErrNotFound)
	}

	info := m.infoLocked(clean, entry)
	return &info, nil
}

// CopyFile copies file bytes from one path to another
func (m *Memory) CopyFile(ctx context.Context, from, to string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	src, ok := m.entries[path.Clean(from)]
	if !ok {
		return fmt.Errorf("copy %s: %w", from, ErrNotFound)
	}
	if src.isDir {
		return &PathError{Path: from, Message: "not a file"}
	}

	data := make([]byte, len(src.data))
	copy(data, src.data)

	m.addParents(to)
	m.entries[path.Clean(to)] = &memEntry{data: data, modTime: time.Now()}
	return nil
}

// MkdirAll creates a directory and all necessary parents
func (m *Memory) MkdirAll(ctx context.Context, p string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.addParents(p)
	clean := path.Clean(p)
	if _, ok := m.entries[clean]; !ok {
		m.entries[clean] = &memEntry{modTime: time.Now(), isDir: true}
	}
	return nil
}

// Exists checks if a file or directory exists
func (m *Memory) Exists(ctx context.Context, p string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.entries[path.Clean(p)]
	return ok, nil
}

// SetModTime sets the modification time of an entry
func (m *Memory) SetModTime(ctx context.Context, p string, t time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[path.Clean(p)]
	if !ok {
		return fmt.Errorf("set mtime %s: %w", p, ErrNotFound)
	}
	entry.modTime = t
	return nil
}

// Close releases resources (no-op for the in-memory backend)
func (m *Memory) Close() error {
	return nil
}

func (m *Memory) infoLocked(p string, e *memEntry) FileInfo {
	return FileInfo{
		Path:    p,
		Size:    int64(len(e.data)),
		ModTime: e.modTime,
		IsDir:   e.isDir,
	}
}
