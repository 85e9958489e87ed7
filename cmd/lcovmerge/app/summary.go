package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjy-dev/lcovmerge/internal/merge"
	"github.com/zjy-dev/lcovmerge/internal/report"
)

// newSummaryCommand creates the "summary" subcommand.
func newSummaryCommand(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "summary [flags] files...",
		Short: "Print merged coverage per source file without writing a report.",
		Long: `Merge the given LCOV files in memory and print their coverage.

The table format lists every source file followed by the overall summary.
The json and yaml formats print the same data for scripts.

Examples:
  lcovmerge summary unit.info integration.info
  lcovmerge summary --format json merged.info`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(strings.TrimSpace(format))
			switch format {
			case report.FormatTable, report.FormatJSON, report.FormatYAML:
			default:
				return fmt.Errorf("unsupported format %q, allowed values: table, json, yaml", format)
			}

			if _, err := opts.load(cmd); err != nil {
				return err
			}

			res, err := merge.Collect(args)
			if err != nil {
				return err
			}
			return report.Print(cmd.OutOrStdout(), res.Report, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", report.FormatTable, "output format: table, json or yaml")

	return cmd
}
