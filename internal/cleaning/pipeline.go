package cleaning

import (
	"fmt"
	"log/slog"

	"github.com/404Health/universal-dataCleaner/internal/dataset"
)

// stage is a single pipeline step. Run takes the table produced by the
// prior stage and returns the table for the next one; implementations
// never mutate their input.
type stage interface {
	Name() string
	Run(t *dataset.Table, r *Report) (*dataset.Table, error)
}

// Clean runs the full cleaning pipeline over the table and returns the
// cleaned table together with the report of every transformation applied.
// The input table is left untouched. The run aborts on the first error
// with no partial result.
func Clean(t *dataset.Table, opts Options) (*dataset.Table, *Report, error) {
	if t == nil || t.IsEmpty() {
		return nil, nil, ErrEmptyTable
	}
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}

	stages := []stage{
		deduplicator{},
		columnNormalizer{},
		outlierResolver{opts: opts},
		missingResolver{opts: opts},
		typeOptimizer{opts: opts},
	}

	report := NewReport()
	current := t
	for _, s := range stages {
		next, err := s.Run(current, report)
		if err != nil {
			return nil, nil, fmt.Errorf("stage %s: %w", s.Name(), err)
		}
		current = next
	}

	slog.Debug("Cleaning pipeline completed",
		slog.Int("rows_in", t.NumRows()),
		slog.Int("rows_out", current.NumRows()),
		slog.Int("steps", len(report.Steps)))

	return current, report, nil
}

// MissingComparison is one column's before/after missing-value counts,
// used by the front end's comparison chart.
type MissingComparison struct {
	Column   string `json:"column"`
	Original int    `json:"original"`
	Cleaned  int    `json:"cleaned"`
}

// CompareMissing computes the per-column missing-count comparison between
// the original and cleaned tables. Only columns with at least one missing
// value in either table appear. Cleaned counts are matched through the
// column rename rule, since the cleaned table carries normalized names.
func CompareMissing(original, cleaned *dataset.Table) []MissingComparison {
	cleanedCounts := cleaned.MissingCounts()

	var out []MissingComparison
	for _, col := range original.Columns {
		orig := col.MissingCount()
		after := cleanedCounts[normalizeColumnName(col.Name)]
		if orig == 0 && after == 0 {
			continue
		}
		out = append(out, MissingComparison{
			Column:   normalizeColumnName(col.Name),
			Original: orig,
			Cleaned:  after,
		})
	}
	return out
}
