package cleaning

import (
	"fmt"

	"github.com/404Health/universal-dataCleaner/internal/dataset"
)

// unknownLabel fills categorical gaps that no strategy resolved, and
// stands in for the mode of an entirely missing text column.
const unknownLabel = "Unknown"

// missingLabel is the text fill used by the ZeroOrMissing strategy for
// non-numeric columns.
const missingLabel = "MISSING"

// missingResolver fills or drops missing values per the configured
// strategy, column by column in table order. Under the delete strategy
// the row removals are cumulative: later columns see the reduced table.
type missingResolver struct {
	opts Options
}

func (missingResolver) Name() string { return "resolve_missing" }

func (s missingResolver) Run(t *dataset.Table, r *Report) (*dataset.Table, error) {
	out := t.Clone()
	categorical := s.opts.categoricalSet()

	for ci := 0; ci < len(out.Columns); ci++ {
		col := &out.Columns[ci]
		missing := col.MissingCount()
		if missing == 0 {
			continue
		}

		var err error
		switch s.opts.FillStrategy {
		case StrategyDelete:
			out = dropMissingRows(out, ci)
			col = &out.Columns[ci]
			r.RecordAction(col.Name, fmt.Sprintf("Deleted %d missing values", missing))
		case StrategyZeroMissing:
			fillZeroOrMissing(col, missing, r)
		case StrategyMeanOrMode:
			err = s.fillMeanOrMode(col, missing, r)
		case StrategyForwardFill:
			forwardFill(col)
			r.RecordAction(col.Name, fmt.Sprintf("Forward-filled %d missing values", missing))
		case StrategyBackwardFill:
			backwardFill(col)
			r.RecordAction(col.Name, fmt.Sprintf("Backward-filled %d missing values", missing))
		default:
			err = fmt.Errorf("%w: fill strategy %q", ErrUnsupportedConfig, s.opts.FillStrategy)
		}
		if err != nil {
			return nil, err
		}

		if categorical[col.Name] {
			fillCategoricalRemainder(col, r)
		}
	}

	r.Step("Missing values handled: %s", r.missingSummary())
	return out, nil
}

// dropMissingRows removes every row where column ci is missing.
func dropMissingRows(t *dataset.Table, ci int) *dataset.Table {
	keep := make([]bool, t.NumRows())
	for ri, cell := range t.Columns[ci].Cells {
		keep[ri] = !cell.Null
	}
	return t.FilterRows(keep)
}

func fillZeroOrMissing(col *dataset.Column, missing int, r *Report) {
	if col.Type.IsNumeric() {
		fillNulls(col, dataset.NumberCell(0))
		r.RecordAction(col.Name, fmt.Sprintf("Filled %d missing with 0", missing))
		return
	}
	fillNulls(col, dataset.TextCell(missingLabel))
	r.RecordAction(col.Name, fmt.Sprintf("Filled %d missing with '%s'", missing, missingLabel))
}

func (s missingResolver) fillMeanOrMode(col *dataset.Column, missing int, r *Report) error {
	if col.Type.IsNumeric() {
		values := col.NonMissing()
		if len(values) == 0 {
			// No statistic exists for an entirely missing numeric column;
			// the cells stay missing (the categorical fallback may still
			// resolve them).
			r.RecordAction(col.Name, fmt.Sprintf("Left %d missing unfilled (column entirely missing)", missing))
			return nil
		}
		var fill float64
		switch s.opts.OutlierReplacement {
		case ReplaceMedian:
			fill = median(values)
		case ReplaceMean:
			fill = mean(values)
		default:
			return fmt.Errorf("%w: outlier replacement %q", ErrUnsupportedConfig, s.opts.OutlierReplacement)
		}
		fillNulls(col, dataset.NumberCell(fill))
		r.RecordAction(col.Name, fmt.Sprintf("Filled %d missing with %s (%.2f)", missing, s.opts.OutlierReplacement, fill))
		return nil
	}

	var present []string
	for _, cell := range col.Cells {
		if !cell.Null {
			present = append(present, cell.Text)
		}
	}
	modeValue, ok := textMode(present)
	if !ok {
		modeValue = unknownLabel
	}
	fillNulls(col, dataset.TextCell(modeValue))
	r.RecordAction(col.Name, fmt.Sprintf("Filled %d missing with mode (%s)", missing, modeValue))
	return nil
}

// forwardFill propagates the nearest preceding non-missing value.
// Leading gaps with no prior value stay missing.
func forwardFill(col *dataset.Column) {
	var last dataset.Cell
	have := false
	for i := range col.Cells {
		if col.Cells[i].Null {
			if have {
				col.Cells[i] = last
			}
			continue
		}
		last = col.Cells[i]
		have = true
	}
}

// backwardFill propagates the nearest following non-missing value.
// Trailing gaps with no later value stay missing.
func backwardFill(col *dataset.Column) {
	var next dataset.Cell
	have := false
	for i := len(col.Cells) - 1; i >= 0; i-- {
		if col.Cells[i].Null {
			if have {
				col.Cells[i] = next
			}
			continue
		}
		next = col.Cells[i]
		have = true
	}
}

// fillCategoricalRemainder resolves gaps the strategy left behind in a
// declared categorical column, merging the action into the column's
// existing report entry. A numeric categorical column is converted to its
// text rendering first so the label fill keeps the column uniform.
func fillCategoricalRemainder(col *dataset.Column, r *Report) {
	remaining := col.MissingCount()
	if remaining == 0 {
		return
	}
	if col.Type.IsNumeric() {
		for i := range col.Cells {
			if !col.Cells[i].Null {
				col.Cells[i] = dataset.TextCell(col.Cells[i].String())
			}
		}
		col.Type = dataset.TypeText
	}
	fillNulls(col, dataset.TextCell(unknownLabel))
	r.RecordAction(col.Name, fmt.Sprintf("Filled remaining %d missing with '%s'", remaining, unknownLabel))
}

func fillNulls(col *dataset.Column, fill dataset.Cell) {
	for i := range col.Cells {
		if col.Cells[i].Null {
			col.Cells[i] = fill
		}
	}
}
