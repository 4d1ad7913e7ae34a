package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/sessync/sessync/pkg/config"
)

// NewConfigCommand creates the config command
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `View or modify sessync configuration.`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigInitCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			sourceRoot := cfg.Source.Root
			if sourceRoot == "" {
				sourceRoot, err = DefaultSourceRoot()
				if err != nil {
					return err
				}
			}

			fmt.Printf("Session Store: %s\n", sourceRoot)
			fmt.Printf("Sync Directory: %s\n", cfg.Repo.SyncDir)
			fmt.Printf("Domain Suffixes: %s\n", strings.Join(cfg.Repo.DomainSuffixes, ", "))
			fmt.Printf("Bandwidth Limit: %d\n", cfg.Performance.BandwidthLimit)
			fmt.Printf("Output Format: %s\n", cfg.Output.Format)
			fmt.Printf("Log Format: %s\n", cfg.Logging.Format)
			fmt.Printf("Log Level: %s\n", cfg.Logging.Level)

			return nil
		},
	}
}

func newConfigInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.DefaultConfigPath()
			if err != nil {
				return err
			}

			cfg := config.Default()
			if err := config.SaveToFile(cfg, path); err != nil {
				return err
			}

			fmt.Printf("Configuration file created at: %s\n", path)
			return nil
		},
	}
}
