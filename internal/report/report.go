// Package report prints coverage summaries for humans and machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"go.yaml.in/yaml/v3"

	"github.com/zjy-dev/lcovmerge/internal/coverage"
)

// Output formats accepted by Print.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// FileSummary is the per-file entry of a Document.
type FileSummary struct {
	Path      string          `json:"path" yaml:"path"`
	Lines     coverage.Totals `json:"lines" yaml:"lines"`
	Functions coverage.Totals `json:"functions" yaml:"functions"`
	Branches  coverage.Totals `json:"branches" yaml:"branches"`
}

// Document is the machine-readable form of a merged report.
type Document struct {
	Summary coverage.Summary `json:"summary" yaml:"summary"`
	Files   []FileSummary    `json:"files" yaml:"files"`
}

// NewDocument builds a Document from r, files in report order.
func NewDocument(r *coverage.Report) Document {
	doc := Document{
		Summary: coverage.Summarize(r),
		Files:   make([]FileSummary, 0, r.Len()),
	}
	for _, rec := range r.Records() {
		s := rec.Summary()
		doc.Files = append(doc.Files, FileSummary{
			Path:      rec.Path,
			Lines:     s.Lines,
			Functions: s.Functions,
			Branches:  s.Branches,
		})
	}
	return doc
}

// PrintSummary prints the overall summary block. The output line is
// omitted when output is empty.
func PrintSummary(w io.Writer, s coverage.Summary, output string) error {
	renderer := lipgloss.NewRenderer(w)
	header := renderer.NewStyle().Bold(true)
	label := renderer.NewStyle().Width(12)

	rows := [][2]string{
		{"Files:", fmt.Sprintf("%d", s.Files)},
		{"Lines:", s.Lines.String()},
		{"Functions:", s.Functions.String()},
		{"Branches:", s.Branches.String()},
	}
	if output != "" {
		rows = append(rows, [2]string{"Output:", output})
	}

	if _, err := fmt.Fprintf(w, "\n%s\n", header.Render("Merged coverage summary:")); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintf(w, "  %s%s\n", label.Render(row[0]), row[1]); err != nil {
			return err
		}
	}
	return nil
}

// PrintFileTable prints one row per source file.
func PrintFileTable(w io.Writer, r *coverage.Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	if _, err := fmt.Fprintln(tw, "FILE\tLINES\tFUNCTIONS\tBRANCHES"); err != nil {
		return err
	}
	for _, rec := range r.Records() {
		s := rec.Summary()
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", rec.Path, s.Lines, s.Functions, s.Branches); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// PrintJSON writes the report Document as indented JSON.
func PrintJSON(w io.Writer, r *coverage.Report) error {
	content, err := json.MarshalIndent(NewDocument(r), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	content = append(content, '\n')
	if _, err := w.Write(content); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// PrintYAML writes the report Document as YAML.
func PrintYAML(w io.Writer, r *coverage.Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(r)); err != nil {
		return fmt.Errorf("write yaml: %w", err)
	}
	return enc.Close()
}

// Print writes r in the given format. The table format prints the
// per-file table followed by the summary block.
func Print(w io.Writer, r *coverage.Report, format string) error {
	switch format {
	case FormatTable, "":
		if err := PrintFileTable(w, r); err != nil {
			return err
		}
		return PrintSummary(w, coverage.Summarize(r), "")
	case FormatJSON:
		return PrintJSON(w, r)
	case FormatYAML:
		return PrintYAML(w, r)
	default:
		return fmt.Errorf("unsupported format %q, allowed values: table, json, yaml", format)
	}
}
