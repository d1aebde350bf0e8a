package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sdejongh/foldercheck/pkg/config"
)

// NewConfigCommand creates the config command
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `View or create the foldercheck configuration file.`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigInitCommand())

	return cmd
}

// configPath returns the --config path or the default location
func configPath() (string, error) {
	if globalFlags.ConfigFile != "" {
		return globalFlags.ConfigFile, nil
	}
	return config.DefaultConfigPath()
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath()
			if err != nil {
				return err
			}
			cfg, err := config.LoadOptional(path)
			if err != nil {
				return err
			}

			bandwidth := cfg.Performance.BandwidthLimit
			if bandwidth == "" {
				bandwidth = "unlimited"
			}
			exclude := strings.Join(cfg.Compare.Exclude, ", ")
			if exclude == "" {
				exclude = "none"
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Config File: %s\n", path)
			fmt.Fprintf(w, "Exclude: %s\n", exclude)
			fmt.Fprintf(w, "Skip Unreadable: %v\n", cfg.Compare.SkipUnreadable)
			fmt.Fprintf(w, "Max Workers: %d\n", cfg.Performance.MaxWorkers)
			fmt.Fprintf(w, "Buffer Size: %d\n", cfg.Performance.BufferSize)
			fmt.Fprintf(w, "Bandwidth Limit: %s\n", bandwidth)
			fmt.Fprintf(w, "Output Format: %s\n", cfg.Output.Format)
			fmt.Fprintf(w, "Sort: %s\n", cfg.Output.Sort)
			fmt.Fprintf(w, "Color: %s\n", cfg.Output.Color)
			fmt.Fprintf(w, "Log Format: %s\n", cfg.Logging.Format)
			fmt.Fprintf(w, "Log Level: %s\n", cfg.Logging.Level)

			return nil
		},
	}
}

func newConfigInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath()
			if err != nil {
				return err
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("configuration file already exists at %s (use --force to overwrite)", path)
			}

			if err := config.SaveToFile(config.Default(), path); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created at: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration file")

	return cmd
}
