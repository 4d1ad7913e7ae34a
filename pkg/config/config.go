package config

import (
	"github.com/sessync/sessync/pkg/pathid"
)

// Config represents the application configuration
type Config struct {
	Source      SourceConfig      `yaml:"source"`
	Repo        RepoConfig        `yaml:"repo"`
	Performance PerformanceConfig `yaml:"performance"`
	Output      OutputConfig      `yaml:"output"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// SourceConfig locates the flat session store
type SourceConfig struct {
	// Root overrides the SESSYNC_SOURCE_DIR / home-directory default
	Root string `yaml:"root"`
}

// RepoConfig controls the repository side of the sync
type RepoConfig struct {
	// SyncDir is the sync directory path relative to the repository root
	SyncDir string `yaml:"sync_dir"`

	// DomainSuffixes lists the dotted suffixes protected during
	// identifier-to-path conversion
	DomainSuffixes []string `yaml:"domain_suffixes"`
}

// PerformanceConfig holds transfer-related settings
type PerformanceConfig struct {
	// BandwidthLimit caps copy throughput in bytes per second (0 = unlimited)
	BandwidthLimit int64 `yaml:"bandwidth_limit"`
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Format   string `yaml:"format"`   // "human" or "json"
	Progress bool   `yaml:"progress"` // Show a progress bar
	Quiet    bool   `yaml:"quiet"`    // Suppress non-error output
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Format string `yaml:"format"` // "json" or "text"
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	File   string `yaml:"file"`   // Log file path (empty = disabled)
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Repo: RepoConfig{
			SyncDir:        ".sessync/sessions",
			DomainSuffixes: pathid.DefaultSuffixes(),
		},
		Performance: PerformanceConfig{
			BandwidthLimit: 0,
		},
		Output: OutputConfig{
			Format:   "human",
			Progress: true,
			Quiet:    false,
		},
		Logging: LoggingConfig{
			Format: "text",
			Level:  "info",
			File:   "",
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Repo.SyncDir == "" {
		return &ValidationError{
			Field:   "repo.sync_dir",
			Message: "must not be empty",
		}
	}

	if c.Performance.BandwidthLimit < 0 {
		return &ValidationError{
			Field:   "performance.bandwidth_limit",
			Message: "must not be negative",
		}
	}

	validFormats := map[string]bool{"human": true, "json": true}
	if !validFormats[c.Output.Format] {
		return &ValidationError{
			Field:   "output.format",
			Message: "must be 'human' or 'json'",
		}
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return &ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'text'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	return nil
}

// ValidationError represents an invalid configuration value
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
