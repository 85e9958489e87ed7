package coverage

import "fmt"

// Totals counts found and hit units of one kind.
type Totals struct {
	Found int `json:"found" yaml:"found"`
	Hit   int `json:"hit" yaml:"hit"`
}

// Percent returns Hit/Found as a percentage, or 0 when nothing was found.
func (t Totals) Percent() float64 {
	if t.Found == 0 {
		return 0
	}
	return float64(t.Hit) / float64(t.Found) * 100
}

func (t Totals) String() string {
	return fmt.Sprintf("%d/%d (%.2f%%)", t.Hit, t.Found, t.Percent())
}

func (t *Totals) add(other Totals) {
	t.Found += other.Found
	t.Hit += other.Hit
}

// Summary holds line, function and branch totals over a set of files.
type Summary struct {
	Files     int    `json:"files" yaml:"files"`
	Lines     Totals `json:"lines" yaml:"lines"`
	Functions Totals `json:"functions" yaml:"functions"`
	Branches  Totals `json:"branches" yaml:"branches"`
}

// Summary computes the totals of a single record.
func (rec *Record) Summary() Summary {
	return Summary{
		Files:     1,
		Lines:     Totals{Found: rec.Lines.Len(), Hit: rec.Lines.Covered()},
		Functions: Totals{Found: rec.Functions.Len(), Hit: rec.Functions.Covered()},
		Branches:  Totals{Found: rec.Branches.Len(), Hit: rec.Branches.Covered()},
	}
}

// Summarize computes the totals of every record in r.
func Summarize(r *Report) Summary {
	var s Summary
	for _, rec := range r.Records() {
		rs := rec.Summary()
		s.Files++
		s.Lines.add(rs.Lines)
		s.Functions.add(rs.Functions)
		s.Branches.add(rs.Branches)
	}
	return s
}
