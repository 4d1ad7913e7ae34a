package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// InitFlags holds init command flags
type InitFlags struct {
	RepoDir string
}

var initFlags InitFlags

// NewInitCommand creates the init command
func NewInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a repository for session syncing",
		Long: `Create the sync directory inside a git repository so that 'sessync sync'
can copy session files into it. A marker file is placed in the directory
so the otherwise-empty tree can be committed.`,
		RunE: runInit,
	}

	cmd.Flags().StringVarP(&initFlags.RepoDir, "repo-dir", "r", "", "repository root (default: discovered from the working directory)")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	repoRoot, err := resolveInitRoot()
	if err != nil {
		return err
	}

	syncDir, markerCreated, err := InitializeRepo(repoRoot, cfg.Repo.SyncDir)
	if err != nil {
		return err
	}

	if !globalFlags.Quiet {
		fmt.Printf("Initialized sync directory: %s\n", syncDir)
		if markerCreated {
			fmt.Printf("Created marker file: %s\n", filepath.Join(syncDir, MarkerFile))
		}
	}

	return nil
}

// resolveInitRoot returns the repository root to initialize: the
// --repo-dir flag when set, otherwise the enclosing git repository.
func resolveInitRoot() (string, error) {
	if initFlags.RepoDir != "" {
		repoRoot, err := filepath.Abs(initFlags.RepoDir)
		if err != nil {
			return "", fmt.Errorf("failed to resolve repository path: %w", err)
		}
		if !isDir(filepath.Join(repoRoot, ".git")) {
			return "", fmt.Errorf("not a git repository: %s", repoRoot)
		}
		return repoRoot, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	repoRoot, ok := FindGitRoot(cwd)
	if !ok {
		return "", fmt.Errorf("no git repository found from %s", cwd)
	}

	return repoRoot, nil
}

// InitializeRepo creates the sync directory under repoRoot along with
// its marker file. Both operations are idempotent; markerCreated
// reports whether the marker was written by this call.
func InitializeRepo(repoRoot, syncDir string) (string, bool, error) {
	dir := filepath.Join(repoRoot, syncDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", false, fmt.Errorf("failed to create sync directory: %w", err)
	}

	marker := filepath.Join(dir, MarkerFile)
	if _, err := os.Stat(marker); err == nil {
		return dir, false, nil
	} else if !os.IsNotExist(err) {
		return "", false, fmt.Errorf("failed to check marker file: %w", err)
	}

	if err := os.WriteFile(marker, nil, 0644); err != nil {
		return "", false, fmt.Errorf("failed to create marker file: %w", err)
	}

	return dir, true, nil
}
