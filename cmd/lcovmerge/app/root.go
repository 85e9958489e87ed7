package app

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjy-dev/lcovmerge/internal/config"
	"github.com/zjy-dev/lcovmerge/internal/logger"
	"github.com/zjy-dev/lcovmerge/internal/merge"
	"github.com/zjy-dev/lcovmerge/internal/report"
)

// rootOptions holds the flags shared by every subcommand.
type rootOptions struct {
	v          *viper.Viper
	configFile string
	logLevel   string
	noColor    bool
}

// load reads the configuration and sets up logging for cmd.
func (o *rootOptions) load(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.v, o.configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if o.noColor {
		cfg.Color = false
	}
	if err := logger.Init(cfg.LogLevel, cmd.ErrOrStderr(), cfg.Color); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewLcovmergeCommand creates the root command for the lcovmerge tool.
func NewLcovmergeCommand(version string) *cobra.Command {
	opts := &rootOptions{v: viper.New()}
	var markdownPath string

	cmd := &cobra.Command{
		Use:   "lcovmerge [flags] files...",
		Short: "Merge LCOV coverage files by source file.",
		Long: `lcovmerge merges LCOV reports from independent test runs into one report.

Records for the same source file are combined instead of concatenated: every
line, function and branch keeps the highest execution count seen in any
input, so coverage measured by several suites is never double counted.
Summary lines (FNF, FNH, BRF, BRH, LF, LH) are recomputed from the merged
counts.

Missing or unreadable inputs are reported and skipped. The command fails when
no input contributed any coverage data; no output file is written then.

Configuration:
  Settings are read from lcovmerge.yaml in the working directory or in
  configs/, or from the file given with --config. Command line flags
  override the config file values.

Examples:
  # Merge unit and integration coverage
  lcovmerge -o coverage/merged.info unit.info integration.info

  # Also write a markdown report for the CI job summary
  lcovmerge -o merged.info --markdown coverage.md build/*.info`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}

			res, err := merge.Run(merge.Options{Inputs: args, Output: cfg.Output})
			if err != nil {
				return err
			}

			if markdownPath != "" {
				if err := report.WriteMarkdown(markdownPath, res.Report); err != nil {
					return err
				}
				logger.Info("Markdown report written to %s", markdownPath)
			}

			return report.PrintSummary(cmd.OutOrStdout(), res.Summary, res.Output)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "config file (default: lcovmerge.yaml in . or configs/)")
	pf.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	pf.BoolVar(&opts.noColor, "no-color", false, "disable colored log output")

	cmd.Flags().StringP("output", "o", "", "output merged LCOV file (required unless set in the config file; parent directories are created)")
	cmd.Flags().StringVar(&markdownPath, "markdown", "", "also write a markdown coverage report to this path")

	mustBind(opts.v, "output", cmd.Flags().Lookup("output"))
	mustBind(opts.v, "log_level", pf.Lookup("log-level"))

	cmd.AddCommand(newSummaryCommand(opts))
	cmd.AddCommand(newVersionCommand(version))

	return cmd
}
