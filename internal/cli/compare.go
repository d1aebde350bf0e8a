package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sdejongh/foldercheck/pkg/engine"
	"github.com/sdejongh/foldercheck/pkg/models"
	"github.com/sdejongh/foldercheck/pkg/output"
)

// CompareFlags holds compare command flags
type CompareFlags struct {
	Parallel       int
	Bandwidth      string
	Exclude        []string
	SkipUnreadable bool
	Output         string
	Sort           string
	NoColor        bool
	DiffReport     string
	DiffFormat     string
	// Logging flags
	LogFile   string
	LogFormat string
	LogLevel  string
}

var compareFlags CompareFlags

// NewCompareCommand creates the compare command
func NewCompareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare PRIMARY SECONDARY [ADDITIONAL...]",
		Short: "Compare folders by file checksums",
		Long: `Compare two or more folders by computing a checksum of every file.

Every path of the primary folder is looked up case-insensitively in each other
folder and reported as OK, MISMATCH, MISSING, MULTICASE_MATCH or
MULTICASE_MISMATCH. Files found only outside the primary folder are ignored.`,
		Args: cobra.MinimumNArgs(2),
		RunE: runCompare,
	}

	cmd.Flags().IntVarP(&compareFlags.Parallel, "parallel", "p", 0, "number of parallel digest workers (default: 4)")
	cmd.Flags().StringVarP(&compareFlags.Bandwidth, "bandwidth", "b", "", "read bandwidth limit (e.g., \"10M\", \"1G\")")
	cmd.Flags().StringSliceVar(&compareFlags.Exclude, "exclude", []string{}, "glob patterns to exclude")
	cmd.Flags().BoolVar(&compareFlags.SkipUnreadable, "skip-unreadable", false, "report unreadable files as MISSING instead of failing")
	cmd.Flags().StringVarP(&compareFlags.Output, "output", "o", "", "output format: table, json")
	cmd.Flags().StringVar(&compareFlags.Sort, "sort", "", "table row order: path, discovery")
	cmd.Flags().BoolVar(&compareFlags.NoColor, "no-color", false, "disable colored statuses")
	cmd.Flags().StringVar(&compareFlags.DiffReport, "diff-report", "", "write differences report to file")
	cmd.Flags().StringVar(&compareFlags.DiffFormat, "diff-format", "human", "differences report format: human, json")

	// Logging flags
	cmd.Flags().StringVar(&compareFlags.LogFile, "log-file", "", "write logs to file (enables logging)")
	cmd.Flags().StringVar(&compareFlags.LogFormat, "log-format", "", "log format: text, json")
	cmd.Flags().StringVar(&compareFlags.LogLevel, "log-level", "", "log level: debug, info, warn, error")

	return cmd
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Every folder must exist before any work starts
	if err := validateFolders(args); err != nil {
		return err
	}

	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with command-line flags
	applyFlagsToConfig(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	operation, err := createCompareOperation(cfg, args)
	if err != nil {
		return fmt.Errorf("failed to create compare operation: %w", err)
	}

	formatter, err := output.NewFormatter(output.Format(cfg.Output.Format), output.Options{
		Color: useColor(cfg.Output.Color),
		Sort:  output.SortOrder(cfg.Output.Sort),
	})
	if err != nil {
		return err
	}

	// Create logger
	logger, err := createLogger(cfg, globalFlags.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	// Progress bars go to stderr, only when it is a terminal
	var observer models.Observer
	if cfg.Output.Progress && output.IsTerminal(os.Stderr) {
		observer = output.NewProgressObserver(os.Stderr)
	}

	report, err := engine.NewEngine(operation, logger, observer).Run(ctx)
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}

	if !cfg.Output.Quiet || cfg.Output.Format == string(output.FormatJSON) {
		if err := formatter.Render(cmd.OutOrStdout(), report); err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}
	}

	// Write differences report if requested
	if compareFlags.DiffReport != "" {
		if err := output.WriteDifferencesReport(report, compareFlags.DiffReport, compareFlags.DiffFormat); err != nil {
			return fmt.Errorf("failed to write differences report: %w", err)
		}
	}

	// Exit with appropriate code
	if code := report.Status.ExitCode(); code != 0 {
		logger.Close()
		os.Exit(code)
	}
	return nil
}
