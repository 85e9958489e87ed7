// Package merge runs the parse, merge and write pipeline over a list of
// LCOV files.
package merge

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/zjy-dev/lcovmerge/internal/coverage"
	"github.com/zjy-dev/lcovmerge/internal/logger"
)

var (
	ErrNoInputs   = errors.New("no input files given")
	ErrNoOutput   = errors.New("output path is required (-o/--output)")
	ErrNoCoverage = errors.New("no coverage data found")
)

// Options configures a merge run.
type Options struct {
	Inputs []string
	Output string
}

// Result describes a completed run.
type Result struct {
	Report  *coverage.Report
	Summary coverage.Summary
	// Output is empty when nothing was written.
	Output string

	Processed []string
	Skipped   []string
}

// Collect parses every input in order and merges them.
//
// Missing or unreadable inputs are logged and skipped. ErrNoCoverage is
// returned when no input contributed any source file.
func Collect(inputs []string) (*Result, error) {
	if len(inputs) == 0 {
		return nil, ErrNoInputs
	}

	logger.Info("Merging %d coverage files...", len(inputs))

	res := &Result{}
	m := coverage.NewMerger()
	for _, path := range inputs {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			logger.Warn("File not found: %s", path)
			res.Skipped = append(res.Skipped, path)
			continue
		}

		logger.Info("Processing: %s", path)
		report, err := coverage.ParseFile(path)
		if err != nil {
			logger.Error("Error parsing %s: %v", path, err)
			res.Skipped = append(res.Skipped, path)
			continue
		}
		logger.Debug("%s: %d source files", path, report.Len())

		m.Add(report)
		res.Processed = append(res.Processed, path)
	}

	res.Report = m.Result()
	if res.Report.Len() == 0 {
		return nil, ErrNoCoverage
	}
	res.Summary = coverage.Summarize(res.Report)
	return res, nil
}

// Run merges the inputs and writes the result to opts.Output.
// No file is written when there is no coverage data.
func Run(opts Options) (*Result, error) {
	if opts.Output == "" {
		return nil, ErrNoOutput
	}

	res, err := Collect(opts.Inputs)
	if err != nil {
		return nil, err
	}

	if err := coverage.WriteFile(opts.Output, res.Report); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", opts.Output, err)
	}
	res.Output = opts.Output
	logger.Debug("Wrote %d source files to %s", res.Report.Len(), opts.Output)

	return res, nil
}
