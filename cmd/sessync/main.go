package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/sessync/sessync/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "sessync",
		Short: "Sync session files into git repositories",
		Long: `sessync copies per-repository session files from a flat session store
into the repository they belong to. Session directories carry the
repository path flattened into their name; sessync decodes that name,
rebuilds the hierarchy under the repository's sync directory and copies
only files that changed since the last run.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add global flags
	cli.AddGlobalFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(cli.NewInitCommand())
	rootCmd.AddCommand(cli.NewSyncCommand())
	rootCmd.AddCommand(cli.NewConfigCommand())
	rootCmd.AddCommand(cli.NewVersionCommand())

	return rootCmd.Execute()
}
