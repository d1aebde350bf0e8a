package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/sdejongh/foldercheck/internal/platform"
	"github.com/sdejongh/foldercheck/pkg/config"
	"github.com/sdejongh/foldercheck/pkg/logging"
	"github.com/sdejongh/foldercheck/pkg/models"
	"github.com/sdejongh/foldercheck/pkg/output"
	"github.com/sdejongh/foldercheck/pkg/storage"
)

// validateFolders checks that every folder argument is an existing directory
func validateFolders(folders []string) error {
	if len(folders) < 2 {
		return &models.ValidationError{Field: "folders", Message: "at least two folders are required"}
	}
	for _, path := range folders {
		if err := platform.ValidatePath(path); err != nil {
			return err
		}
		local, err := storage.NewLocal(path)
		if err != nil {
			return err
		}
		local.Close()
	}
	return nil
}

// loadConfig loads the --config file or the default one, falling back to the
// defaults when the file does not exist
func loadConfig() (*config.Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	return config.LoadOptional(path)
}

// applyFlagsToConfig overrides config values with command-line flags
func applyFlagsToConfig(cfg *config.Config) {
	// Parallel workers (default: 4)
	if compareFlags.Parallel > 0 {
		cfg.Performance.MaxWorkers = compareFlags.Parallel
	} else if cfg.Performance.MaxWorkers == 0 {
		cfg.Performance.MaxWorkers = 4
	}

	if compareFlags.Bandwidth != "" {
		cfg.Performance.BandwidthLimit = compareFlags.Bandwidth
	}

	// Exclude patterns
	if len(compareFlags.Exclude) > 0 {
		cfg.Compare.Exclude = compareFlags.Exclude
	}

	if compareFlags.SkipUnreadable {
		cfg.Compare.SkipUnreadable = true
	}

	// Output
	if compareFlags.Output != "" {
		cfg.Output.Format = compareFlags.Output
	}
	if compareFlags.Sort != "" {
		cfg.Output.Sort = compareFlags.Sort
	}
	if compareFlags.NoColor {
		cfg.Output.Color = "never"
	}

	// Logging
	if compareFlags.LogFile != "" {
		cfg.Logging.File = compareFlags.LogFile
	}
	if compareFlags.LogFormat != "" {
		cfg.Logging.Format = compareFlags.LogFormat
	}
	if compareFlags.LogLevel != "" {
		cfg.Logging.Level = compareFlags.LogLevel
	}

	// Disable progress in quiet mode
	if globalFlags.Quiet {
		cfg.Output.Progress = false
		cfg.Output.Quiet = true
	}
}

// createCompareOperation creates a compare operation from configuration
func createCompareOperation(cfg *config.Config, folders []string) (*models.CompareOperation, error) {
	operation := &models.CompareOperation{
		ID:              uuid.New().String(),
		Folders:         folders,
		ExcludePatterns: cfg.Compare.Exclude,
		SkipUnreadable:  cfg.Compare.SkipUnreadable,
		MaxWorkers:      cfg.Performance.MaxWorkers,
		BandwidthLimit:  cfg.BandwidthBytes(),
		BufferSize:      cfg.Performance.BufferSize,
		CreatedAt:       time.Now(),
	}

	if err := operation.Validate(); err != nil {
		return nil, err
	}

	return operation, nil
}

// createLogger creates a logger based on configuration.
// Without a log file, verbose mode logs to stderr and anything else logs nowhere.
func createLogger(cfg *config.Config, verbose bool) (logging.Logger, error) {
	// Parse log format
	var format logging.Format
	switch cfg.Logging.Format {
	case "json":
		format = logging.FormatJSON
	default:
		format = logging.FormatText
	}
	level := logging.ParseLevel(cfg.Logging.Level)

	if cfg.Logging.File == "" {
		if verbose {
			return logging.NewWriterLogger(os.Stderr, format, level), nil
		}
		return logging.NewNullLogger(), nil
	}

	// Create file logger
	logger, err := logging.NewFileLogger(logging.FileLoggerConfig{
		Path:       cfg.Logging.File,
		Format:     format,
		Level:      level,
		MaxSize:    10 * 1024 * 1024, // 10 MB
		MaxBackups: 5,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", cfg.Logging.File, err)
	}
	return logger, nil
}

// useColor resolves the color setting against the terminal state of stdout
func useColor(setting string) bool {
	switch setting {
	case "always":
		return true
	case "never":
		return false
	default:
		return !color.NoColor && output.IsTerminal(os.Stdout)
	}
}
