package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zjy-dev/lcovmerge/internal/coverage"
)

// RenderMarkdown renders r as a markdown coverage report: the overall
// totals followed by one table row per source file.
func RenderMarkdown(r *coverage.Report) string {
	s := coverage.Summarize(r)

	var b strings.Builder
	b.WriteString("# Coverage Report\n\n")
	b.WriteString("| Metric | Covered | Total | Coverage |\n")
	b.WriteString("|---|---:|---:|---:|\n")
	writeTotalsRow(&b, "Lines", s.Lines)
	writeTotalsRow(&b, "Functions", s.Functions)
	writeTotalsRow(&b, "Branches", s.Branches)
	fmt.Fprintf(&b, "\n**Files:** %d\n\n", s.Files)

	b.WriteString("## Files\n\n")
	b.WriteString("| File | Lines | Functions | Branches |\n")
	b.WriteString("|---|---:|---:|---:|\n")
	for _, rec := range r.Records() {
		rs := rec.Summary()
		fmt.Fprintf(&b, "| `%s` | %s | %s | %s |\n",
			escapeCell(rec.Path), rs.Lines, rs.Functions, rs.Branches)
	}
	return b.String()
}

func writeTotalsRow(b *strings.Builder, name string, t coverage.Totals) {
	fmt.Fprintf(b, "| %s | %d | %d | %.2f%% |\n", name, t.Hit, t.Found, t.Percent())
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// WriteMarkdown saves the markdown report of r to path, creating the
// parent directory if needed.
func WriteMarkdown(path string, r *coverage.Report) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(RenderMarkdown(r)), 0644); err != nil {
		return fmt.Errorf("failed to write markdown report: %w", err)
	}
	return nil
}
