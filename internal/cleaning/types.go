package cleaning

import (
	"math"
	"strings"

	"github.com/404Health/universal-dataCleaner/internal/dataset"
)

// typeOptimizer marks declared categorical columns and downcasts float
// columns that only hold whole numbers to a nullable integer
// representation. Observable values never change.
type typeOptimizer struct {
	opts Options
}

func (typeOptimizer) Name() string { return "optimize_types" }

func (s typeOptimizer) Run(t *dataset.Table, r *Report) (*dataset.Table, error) {
	out := t.Clone()
	categorical := s.opts.categoricalSet()

	for i := range out.Columns {
		col := &out.Columns[i]
		switch {
		case categorical[col.Name]:
			col.Type = dataset.TypeCategory
		case col.Type == dataset.TypeNumber && wholeNumbers(col):
			col.Type = dataset.TypeInteger
		}
	}

	r.Step("Data types optimized: %s", typeSummary(out))
	return out, nil
}

// wholeNumbers reports whether every non-missing value in the column is a
// whole number.
func wholeNumbers(col *dataset.Column) bool {
	for _, cell := range col.Cells {
		if cell.Null {
			continue
		}
		if cell.Number != math.Trunc(cell.Number) {
			return false
		}
	}
	return true
}

func typeSummary(t *dataset.Table) string {
	parts := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		parts[i] = col.Name + ": " + string(col.Type)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
