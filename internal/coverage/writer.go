package coverage

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
)

// Write serializes r as LCOV, one block per source file in first-seen
// order. Summary lines are computed from the counters.
func Write(w io.Writer, r *Report) error {
	bw := bufio.NewWriter(w)
	for _, rec := range r.Records() {
		writeRecord(bw, rec)
	}
	// bufio.Writer keeps the first write error; Flush reports it.
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write coverage data: %w", err)
	}
	return nil
}

func writeRecord(w *bufio.Writer, rec *Record) {
	s := rec.Summary()

	fmt.Fprintln(w, "TN:")
	fmt.Fprintf(w, "SF:%s\n", rec.Path)

	writeUnique(w, rec.FunctionDefs)
	for _, name := range rec.Functions.Keys() {
		count, _ := rec.Functions.Get(name)
		fmt.Fprintf(w, "FNDA:%d,%s\n", count, name)
	}
	fmt.Fprintf(w, "FNF:%d\n", s.Functions.Found)
	fmt.Fprintf(w, "FNH:%d\n", s.Functions.Hit)

	writeUnique(w, rec.BranchDefs)
	fmt.Fprintf(w, "BRF:%d\n", s.Branches.Found)
	fmt.Fprintf(w, "BRH:%d\n", s.Branches.Hit)

	lines := slices.Clone(rec.Lines.Keys())
	slices.Sort(lines)
	for _, n := range lines {
		count, _ := rec.Lines.Get(n)
		fmt.Fprintf(w, "DA:%d,%d\n", n, count)
	}
	fmt.Fprintf(w, "LF:%d\n", s.Lines.Found)
	fmt.Fprintf(w, "LH:%d\n", s.Lines.Hit)

	fmt.Fprintln(w, "end_of_record")
}

// writeUnique writes each distinct line once, in first-seen order.
func writeUnique(w *bufio.Writer, lines []string) {
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		fmt.Fprintln(w, line)
	}
}

// WriteFile writes r to path, creating parent directories as needed.
func WriteFile(path string, r *Report) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := Write(f, r); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}
