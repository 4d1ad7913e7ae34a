package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sessync/sessync/pkg/config"
	"github.com/sessync/sessync/pkg/models"
	"github.com/sessync/sessync/pkg/pathid"
)

// loadConfig loads configuration from file or returns default
func loadConfig() (*config.Config, error) {
	if globalFlags.ConfigFile != "" {
		return config.LoadFromFile(globalFlags.ConfigFile)
	}
	return config.LoadDefault()
}

// applyFlagsToConfig overrides config values with command-line flags
func applyFlagsToConfig(cfg *config.Config) {
	// Output format
	if syncFlags.Output != "" {
		cfg.Output.Format = syncFlags.Output
	}

	// Disable progress in quiet mode
	if globalFlags.Quiet {
		cfg.Output.Progress = false
		cfg.Output.Quiet = true
	}
}

// createSyncOperation resolves the repository, session store and prefix
// for a sync run and validates the result.
func createSyncOperation(cfg *config.Config) (*models.Operation, error) {
	repoRoot, err := resolveRepoRoot(cfg.Repo.SyncDir)
	if err != nil {
		return nil, err
	}

	sourceRoot, err := resolveSourceRoot(cfg)
	if err != nil {
		return nil, err
	}

	// The repository root's flattened identifier selects which session
	// directories belong to this repository.
	prefix, err := pathid.Encode(repoRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to encode repository path: %w", err)
	}

	operation := &models.Operation{
		ID:         uuid.New().String(),
		SourceRoot: sourceRoot,
		Prefix:     prefix,
		TargetRoot: filepath.Join(repoRoot, cfg.Repo.SyncDir),
		DryRun:     syncFlags.DryRun,
		CreatedAt:  time.Now(),
	}

	if err := operation.Validate(); err != nil {
		return nil, err
	}

	return operation, nil
}

// resolveRepoRoot returns the repository root to sync into: the
// --repo-dir flag when set, otherwise the nearest ancestor of the
// working directory that is an initialized repository.
func resolveRepoRoot(syncDir string) (string, error) {
	if syncFlags.RepoDir != "" {
		repoRoot, err := filepath.Abs(syncFlags.RepoDir)
		if err != nil {
			return "", fmt.Errorf("failed to resolve repository path: %w", err)
		}
		if !isDir(repoRoot) {
			return "", fmt.Errorf("repository path does not exist: %s", repoRoot)
		}
		if !isDir(filepath.Join(repoRoot, syncDir)) {
			return "", fmt.Errorf("repository is not initialized for syncing: %s (run 'sessync init' first)", repoRoot)
		}
		return repoRoot, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	repoRoot, ok := FindRepoRoot(cwd, syncDir)
	if !ok {
		return "", fmt.Errorf("no initialized repository found from %s (run 'sessync init' inside a git repository first)", cwd)
	}

	return repoRoot, nil
}

// resolveSourceRoot returns the session store root: the --source-dir
// flag, the configured root, or the environment/home default.
func resolveSourceRoot(cfg *config.Config) (string, error) {
	sourceRoot := syncFlags.SourceDir
	if sourceRoot == "" {
		sourceRoot = cfg.Source.Root
	}
	if sourceRoot == "" {
		var err error
		sourceRoot, err = DefaultSourceRoot()
		if err != nil {
			return "", err
		}
	}

	sourceRoot, err := filepath.Abs(sourceRoot)
	if err != nil {
		return "", fmt.Errorf("failed to resolve session store path: %w", err)
	}

	info, err := os.Stat(sourceRoot)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("session store does not exist: %s", sourceRoot)
	} else if err != nil {
		return "", fmt.Errorf("failed to access session store: %w", err)
	} else if !info.IsDir() {
		return "", fmt.Errorf("session store is not a directory: %s", sourceRoot)
	}

	return sourceRoot, nil
}
