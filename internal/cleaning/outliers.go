package cleaning

import (
	"fmt"
	"math"

	"github.com/404Health/universal-dataCleaner/internal/dataset"
)

// iqrMultiplier is the fence width used by the IQR method. The configured
// OutlierThreshold intentionally does not apply here; the IQR fences are
// fixed at the conventional 1.5x.
const iqrMultiplier = 1.5

// outlierResolver detects and replaces statistical outliers per numeric
// column. Missing cells are never flagged and never count toward column
// statistics.
type outlierResolver struct {
	opts Options
}

func (outlierResolver) Name() string { return "resolve_outliers" }

func (s outlierResolver) Run(t *dataset.Table, r *Report) (*dataset.Table, error) {
	if !s.opts.ApplyOutliers {
		r.Step("Outlier treatment skipped")
		return t, nil
	}

	out := t.Clone()
	capped := 0
	for i := range out.Columns {
		col := &out.Columns[i]
		if !col.Type.IsNumeric() {
			continue
		}
		n, err := s.resolveColumn(col, r)
		if err != nil {
			return nil, err
		}
		capped += n
	}
	if capped == 0 {
		// Per-column entries stay silent on no-op; the step log still gets
		// one entry for the stage.
		r.Step("No outliers detected")
	}
	return out, nil
}

// resolveColumn flags and replaces outliers in a single column, returning
// the number of replaced values.
func (s outlierResolver) resolveColumn(col *dataset.Column, r *Report) (int, error) {
	values := col.NonMissing()
	if len(values) == 0 {
		return 0, nil
	}

	var flagged []bool
	var methodLabel string
	switch s.opts.OutlierMethod {
	case MethodZScore:
		methodLabel = "Z-Score"
		flagged = flagByZScore(values, s.opts.OutlierThreshold)
	case MethodIQR:
		methodLabel = "IQR"
		flagged = flagByIQR(values)
	default:
		return 0, fmt.Errorf("%w: outlier method %q", ErrUnsupportedConfig, s.opts.OutlierMethod)
	}

	count := 0
	for _, f := range flagged {
		if f {
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}

	// Replacement scalar is computed over non-missing values before any
	// replacement happens.
	var replacement float64
	switch s.opts.OutlierReplacement {
	case ReplaceMedian:
		replacement = median(values)
	case ReplaceMean:
		replacement = mean(values)
	default:
		return 0, fmt.Errorf("%w: outlier replacement %q", ErrUnsupportedConfig, s.opts.OutlierReplacement)
	}

	vi := 0
	for ci := range col.Cells {
		if col.Cells[ci].Null {
			continue
		}
		if flagged[vi] {
			col.Cells[ci] = dataset.NumberCell(replacement)
		}
		vi++
	}

	r.Step("Capped %d outliers in %s to %s (%s, %.2f)",
		count, col.Name, s.opts.OutlierReplacement, methodLabel, replacement)
	return count, nil
}

// flagByZScore marks values whose absolute z-score exceeds the threshold.
// Zero-variance columns produce no flags.
func flagByZScore(values []float64, threshold float64) []bool {
	scores := zScores(values)
	flagged := make([]bool, len(values))
	for i, z := range scores {
		flagged[i] = math.Abs(z) > threshold
	}
	return flagged
}

// flagByIQR marks values outside the Tukey fences Q1-1.5*IQR and
// Q3+1.5*IQR.
func flagByIQR(values []float64) []bool {
	q1 := percentile(values, 25)
	q3 := percentile(values, 75)
	iqr := q3 - q1
	lo := q1 - iqrMultiplier*iqr
	hi := q3 + iqrMultiplier*iqr

	flagged := make([]bool, len(values))
	for i, v := range values {
		flagged[i] = v < lo || v > hi
	}
	return flagged
}
