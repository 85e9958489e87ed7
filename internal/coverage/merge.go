package coverage

// Merger folds reports into one aggregate, keeping for every line,
// function and branch the highest count observed in any input.
//
// A Merger is not safe for concurrent use.
type Merger struct {
	total *Report
}

// NewMerger creates a Merger with an empty aggregate.
func NewMerger() *Merger {
	return &Merger{total: NewReport()}
}

// Add merges r into the aggregate.
//
// The first report that mentions a path provides its FN and BRDA lines;
// definitions from later reports for the same path are not added.
func (m *Merger) Add(r *Report) {
	for _, rec := range r.Records() {
		dst, seen := m.total.records[rec.Path]
		if !seen {
			dst = m.total.Record(rec.Path)
			dst.FunctionDefs = append([]string(nil), rec.FunctionDefs...)
			dst.BranchDefs = append([]string(nil), rec.BranchDefs...)
		}

		dst.Functions.MergeMax(&rec.Functions)
		dst.Lines.MergeMax(&rec.Lines)
		dst.Branches.MergeMax(&rec.Branches)
	}
}

// Result returns the aggregate. The Merger must not be used afterwards.
func (m *Merger) Result() *Report {
	total := m.total
	m.total = nil
	return total
}

// Merge folds reports in order and returns the aggregate.
func Merge(reports ...*Report) *Report {
	m := NewMerger()
	for _, r := range reports {
		m.Add(r)
	}
	return m.Result()
}
