package cli

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnvSourceDir overrides the default session store location
const EnvSourceDir = "SESSYNC_SOURCE_DIR"

// MarkerFile keeps an otherwise-empty sync directory under version control
const MarkerFile = ".gitkeep"

// DefaultSourceRoot returns the session store root: the EnvSourceDir
// environment variable when set, otherwise ~/.sessions/projects.
func DefaultSourceRoot() (string, error) {
	if dir := os.Getenv(EnvSourceDir); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".sessions", "projects"), nil
}

// FindGitRoot walks up from start looking for a directory containing .git.
// Returns false when no ancestor qualifies.
func FindGitRoot(start string) (string, bool) {
	return findAncestor(start, func(dir string) bool {
		return isDir(filepath.Join(dir, ".git"))
	})
}

// FindRepoRoot walks up from start looking for a git repository that has
// been initialized for syncing (contains syncDir). Returns false when no
// ancestor qualifies.
func FindRepoRoot(start, syncDir string) (string, bool) {
	return findAncestor(start, func(dir string) bool {
		return isDir(filepath.Join(dir, ".git")) && isDir(filepath.Join(dir, syncDir))
	})
}

func findAncestor(start string, match func(string) bool) (string, bool) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false
	}

	for {
		if match(dir) {
			return dir, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
