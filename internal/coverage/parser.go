package coverage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LCOV record tags.
const (
	tagSourceFile   = "SF:"
	tagFunction     = "FN:"
	tagFunctionData = "FNDA:"
	tagLineData     = "DA:"
	tagBranchData   = "BRDA:"

	// branchNotTaken marks a branch whose block was never executed.
	branchNotTaken = "-"
)

// SyntaxError reports a record line whose numeric field could not be read.
type SyntaxError struct {
	Line int
	Text string
	Err  error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %q: %v", e.Line, e.Text, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// ParseFile reads the LCOV file at path.
func ParseFile(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open coverage file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads LCOV data from r.
//
// Summary lines (FNF, FNH, BRF, BRH, LF, LH), TN and end_of_record are
// ignored. Record lines with the wrong number of fields are skipped.
// A numeric field that does not parse fails the whole input. Lines have
// no length limit.
func Parse(r io.Reader) (*Report, error) {
	p := &parser{report: NewReport()}
	br := bufio.NewReader(r)

	for {
		raw, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("failed to read coverage data: %w", err)
		}
		if raw != "" {
			p.lineNo++
			line := strings.TrimSpace(raw)
			if perr := p.line(line); perr != nil {
				return nil, &SyntaxError{Line: p.lineNo, Text: line, Err: perr}
			}
		}
		if err == io.EOF {
			return p.report, nil
		}
	}
}

type parser struct {
	report  *Report
	current *Record
	lineNo  int
}

func (p *parser) line(line string) error {
	if strings.HasPrefix(line, tagSourceFile) {
		path := strings.TrimPrefix(line, tagSourceFile)
		if path == "" {
			p.current = nil
			return nil
		}
		p.current = p.report.Record(path)
		return nil
	}
	if p.current == nil {
		return nil
	}

	switch {
	case strings.HasPrefix(line, tagFunction):
		p.current.FunctionDefs = append(p.current.FunctionDefs, line)
	case strings.HasPrefix(line, tagFunctionData):
		return parseFunctionData(p.current, strings.TrimPrefix(line, tagFunctionData))
	case strings.HasPrefix(line, tagLineData):
		return parseLineData(p.current, strings.TrimPrefix(line, tagLineData))
	case strings.HasPrefix(line, tagBranchData):
		p.current.BranchDefs = append(p.current.BranchDefs, line)
		return parseBranchData(p.current, strings.TrimPrefix(line, tagBranchData))
	}
	return nil
}

// FNDA:<count>,<name>
func parseFunctionData(rec *Record, body string) error {
	countStr, name, ok := strings.Cut(body, ",")
	if !ok {
		return nil
	}
	count, err := parseCount(countStr)
	if err != nil {
		return err
	}
	rec.Functions.Max(name, count)
	return nil
}

// DA:<line>,<count>
func parseLineData(rec *Record, body string) error {
	parts := strings.Split(body, ",")
	if len(parts) != 2 {
		return nil
	}
	lineNum, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return err
	}
	count, err := parseCount(parts[1])
	if err != nil {
		return err
	}
	rec.Lines.Max(lineNum, count)
	return nil
}

// BRDA:<line>,<block>,<branch>,<count|->
func parseBranchData(rec *Record, body string) error {
	parts := strings.Split(body, ",")
	if len(parts) != 4 {
		return nil
	}
	var count int64
	if parts[3] != branchNotTaken {
		c, err := parseCount(parts[3])
		if err != nil {
			return err
		}
		count = c
	}
	rec.Branches.Max(BranchKey{Line: parts[0], Block: parts[1], Branch: parts[2]}, count)
	return nil
}

// parseCount reads an execution count. Values outside the int64 range
// saturate instead of failing.
func parseCount(s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if errors.Is(err, strconv.ErrRange) {
		return n, nil
	}
	return n, err
}
