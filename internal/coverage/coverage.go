package coverage

// Counts is an insertion-ordered map from a key to an execution count.
// The zero value is ready to use.
type Counts[K comparable] struct {
	keys   []K
	values map[K]int64
}

// Max records count for key, keeping the larger of the stored and the new
// value. An unseen key starts at zero, so negative counts are stored as 0.
// A key keeps the position at which it was first seen.
func (c *Counts[K]) Max(key K, count int64) {
	if c.values == nil {
		c.values = make(map[K]int64)
	}
	old, ok := c.values[key]
	if !ok {
		c.keys = append(c.keys, key)
	}
	c.values[key] = max(old, count)
}

// MergeMax folds every entry of src into c with Max, in src's order.
func (c *Counts[K]) MergeMax(src *Counts[K]) {
	for _, key := range src.keys {
		c.Max(key, src.values[key])
	}
}

// Get returns the count stored for key.
func (c *Counts[K]) Get(key K) (int64, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Len returns the number of distinct keys.
func (c *Counts[K]) Len() int {
	return len(c.keys)
}

// Covered returns the number of keys with a count greater than zero.
func (c *Counts[K]) Covered() int {
	n := 0
	for _, key := range c.keys {
		if c.values[key] > 0 {
			n++
		}
	}
	return n
}

// Keys returns the keys in first-seen order. The slice must not be modified.
func (c *Counts[K]) Keys() []K {
	return c.keys
}

// BranchKey identifies one branch of a BRDA record.
// The fields hold the literal tokens of the record.
type BranchKey struct {
	Line   string
	Block  string
	Branch string
}

// Record holds the coverage of one source file.
type Record struct {
	Path string

	// FunctionDefs and BranchDefs are the raw FN: and BRDA: lines,
	// in first-seen order.
	FunctionDefs []string
	BranchDefs   []string

	Functions Counts[string]
	Lines     Counts[int]
	Branches  Counts[BranchKey]
}

// Report maps source file paths to their records, preserving the order in
// which paths were first seen.
type Report struct {
	paths   []string
	records map[string]*Record
}

// NewReport creates an empty report.
func NewReport() *Report {
	return &Report{records: make(map[string]*Record)}
}

// Record returns the record for path, creating an empty one if needed.
func (r *Report) Record(path string) *Record {
	if rec, ok := r.records[path]; ok {
		return rec
	}
	rec := &Record{Path: path}
	r.paths = append(r.paths, path)
	r.records[path] = rec
	return rec
}

// Get returns the record for path, or nil if the path is unknown.
func (r *Report) Get(path string) *Record {
	return r.records[path]
}

// Paths returns the source paths in first-seen order.
func (r *Report) Paths() []string {
	return r.paths
}

// Records returns the records in first-seen order.
func (r *Report) Records() []*Record {
	out := make([]*Record, 0, len(r.paths))
	for _, p := range r.paths {
		out = append(out, r.records[p])
	}
	return out
}

// Len returns the number of source files in the report.
func (r *Report) Len() int {
	return len(r.paths)
}
