package cleaning

import (
	"github.com/404Health/universal-dataCleaner/internal/dataset"
)

// deduplicator removes exact-duplicate rows, keeping the first occurrence.
type deduplicator struct{}

func (deduplicator) Name() string { return "deduplicate" }

func (deduplicator) Run(t *dataset.Table, r *Report) (*dataset.Table, error) {
	rows := t.NumRows()
	seen := make(map[string]bool, rows)
	keep := make([]bool, rows)
	kept := 0
	for i := 0; i < rows; i++ {
		key := t.RowKey(i)
		if seen[key] {
			continue
		}
		seen[key] = true
		keep[i] = true
		kept++
	}

	out := t
	if kept < rows {
		out = t.FilterRows(keep)
	}
	r.Step("Removed %d duplicate rows", rows-kept)
	return out, nil
}
