package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/sessync/sessync/pkg/logging"
	"github.com/sessync/sessync/pkg/models"
	"github.com/sessync/sessync/pkg/output"
	"github.com/sessync/sessync/pkg/pathid"
	"github.com/sessync/sessync/pkg/storage"
	"github.com/sessync/sessync/pkg/sync"
)

// SyncFlags holds sync command flags
type SyncFlags struct {
	SourceDir string
	RepoDir   string
	DryRun    bool
	Output    string
	// Logging flags
	LogFile   string
	LogFormat string
	LogLevel  string
}

var syncFlags SyncFlags

// NewSyncCommand creates the sync command
func NewSyncCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync session files into the repository",
		Long: `Copy session files for the current repository from the flat session
store into the repository's sync directory, rebuilding the directory
hierarchy encoded in the flattened session directory names.

Only files that are new or newer than their copy in the repository are
transferred.`,
		RunE: runSync,
	}

	cmd.Flags().StringVarP(&syncFlags.SourceDir, "source-dir", "s", "", "session store root (default: $"+EnvSourceDir+" or ~/.sessions/projects)")
	cmd.Flags().StringVarP(&syncFlags.RepoDir, "repo-dir", "r", "", "repository root (default: discovered from the working directory)")
	cmd.Flags().BoolVar(&syncFlags.DryRun, "dry-run", false, "report what would be synced without copying")
	cmd.Flags().StringVarP(&syncFlags.Output, "output", "o", "", "output format: human, json")

	// Logging flags
	cmd.Flags().StringVar(&syncFlags.LogFile, "log-file", "", "write logs to file (enables file logging)")
	cmd.Flags().StringVar(&syncFlags.LogFormat, "log-format", "text", "log format: text, json")
	cmd.Flags().StringVar(&syncFlags.LogLevel, "log-level", "info", "log level: debug, info, warn, error")

	return cmd
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with command-line flags
	applyFlagsToConfig(cfg)

	// Create sync operation
	operation, err := createSyncOperation(cfg)
	if err != nil {
		return fmt.Errorf("failed to create sync operation: %w", err)
	}

	// Create storage backend
	var backendOpts []storage.LocalOption
	if cfg.Performance.BandwidthLimit > 0 {
		backendOpts = append(backendOpts, storage.WithBandwidthLimit(cfg.Performance.BandwidthLimit))
	}
	backend := storage.NewLocal(backendOpts...)
	defer backend.Close()

	// Create identifier-to-path converter
	conv := pathid.NewConverter(cfg.Repo.DomainSuffixes)

	// Create logger
	logger, err := createLogger(syncFlags.LogFile, syncFlags.LogFormat, syncFlags.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	// Create output formatter
	var formatter output.Formatter
	switch cfg.Output.Format {
	case "json":
		formatter = output.NewJSONFormatter()
	default:
		formatter = output.NewHumanFormatter()
	}

	if !cfg.Output.Quiet && cfg.Output.Format != "json" {
		fmt.Printf("Syncing sessions into %s\n", operation.TargetRoot)
		if operation.DryRun {
			fmt.Println("Dry run: no files will be copied")
		}
	}

	// Create progress observer. The bar total comes from a preliminary
	// dry-run pass over the same store.
	var observer output.Observer
	var progress *output.Progress
	if cfg.Output.Progress && cfg.Output.Format != "json" && !cfg.Output.Quiet && !operation.DryRun {
		prescan := sync.NewEngine(backend, conv, nil, nil)
		preview, err := prescan.Sync(ctx, operation.SourceRoot, operation.Prefix, operation.TargetRoot, models.Options{DryRun: true})
		if err == nil {
			progress = output.NewProgress(preview.FilesCopied + preview.FilesSkipped)
			observer = progress
		}
	}

	// Create sync engine
	engine := sync.NewEngine(backend, conv, logger, observer)

	// Run sync
	opts := models.Options{
		DryRun:  operation.DryRun,
		Verbose: globalFlags.Verbose,
	}
	start := time.Now()
	result, err := engine.Sync(ctx, operation.SourceRoot, operation.Prefix, operation.TargetRoot, opts)
	if progress != nil {
		progress.Finish()
	}
	if err != nil {
		// main prints the returned error on stderr; no formatter output
		// for an aborted run.
		return fmt.Errorf("sync failed: %w", err)
	}
	end := time.Now()

	report := &models.Report{
		OperationID: operation.ID,
		SourceRoot:  operation.SourceRoot,
		Prefix:      operation.Prefix,
		TargetRoot:  operation.TargetRoot,
		DryRun:      operation.DryRun,
		StartTime:   start,
		EndTime:     end,
		Duration:    end.Sub(start),
		Result:      result,
		Status:      result.Status(),
	}

	if err := formatter.Complete(report); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	// Exit with appropriate code
	os.Exit(report.Status.ExitCode())
	return nil
}

// createLogger creates a logger based on flags. File logging wins when
// requested; otherwise --verbose enables per-action output on stderr.
func createLogger(logFile, logFormat, logLevel string) (logging.Logger, error) {
	if logFile != "" {
		var format logging.Format
		switch logFormat {
		case "json":
			format = logging.FormatJSON
		default:
			format = logging.FormatText
		}
		return logging.NewFileLogger(logFile, format, logging.ParseLevel(logLevel))
	}

	if globalFlags.Verbose {
		return logging.NewStderrLogger(logging.InfoLevel), nil
	}

	return logging.NewNullLogger(), nil
}
