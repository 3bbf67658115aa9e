package cleaning

import "fmt"

// FillStrategy selects how missing values are resolved.
type FillStrategy string

const (
	StrategyDelete       FillStrategy = "delete"
	StrategyZeroMissing  FillStrategy = "zero_missing"
	StrategyMeanOrMode   FillStrategy = "mean_or_mode"
	StrategyForwardFill  FillStrategy = "forward_fill"
	StrategyBackwardFill FillStrategy = "backward_fill"
)

// OutlierMethod selects the outlier detection technique.
type OutlierMethod string

const (
	MethodZScore OutlierMethod = "zscore"
	MethodIQR    OutlierMethod = "iqr"
)

// Replacement selects the scalar that replaces flagged outliers, and
// doubles as the fill statistic for numeric columns under MeanOrMode.
type Replacement string

const (
	ReplaceMedian Replacement = "median"
	ReplaceMean   Replacement = "mean"
)

// DefaultOutlierThreshold is the default Z-Score cutoff.
const DefaultOutlierThreshold = 3.0

// Options configures a pipeline run. The zero value is not valid; use
// DefaultOptions as a starting point.
type Options struct {
	FillStrategy       FillStrategy `json:"fill_strategy" validate:"required,oneof=delete zero_missing mean_or_mode forward_fill backward_fill"`
	ApplyOutliers      bool         `json:"apply_outliers"`
	OutlierMethod      OutlierMethod `json:"outlier_method" validate:"omitempty,oneof=zscore iqr"`
	OutlierThreshold   float64      `json:"outlier_threshold" validate:"omitempty,gt=0"`
	OutlierReplacement Replacement  `json:"outlier_replacement" validate:"omitempty,oneof=median mean"`
	CategoricalColumns []string     `json:"categorical_columns"`
}

// DefaultOptions returns the defaults used by the interactive front end:
// delete missing rows, Z-Score outlier capping at 3.0 to the median.
func DefaultOptions() Options {
	return Options{
		FillStrategy:       StrategyDelete,
		ApplyOutliers:      true,
		OutlierMethod:      MethodZScore,
		OutlierThreshold:   DefaultOutlierThreshold,
		OutlierReplacement: ReplaceMedian,
	}
}

// Validate checks the options for unsupported enum values. Stages repeat
// the checks on their own branch dispatch, so an option that slips past a
// stale Validate still fails instead of silently defaulting.
func (o Options) Validate() error {
	switch o.FillStrategy {
	case StrategyDelete, StrategyZeroMissing, StrategyMeanOrMode, StrategyForwardFill, StrategyBackwardFill:
	default:
		return fmt.Errorf("%w: fill strategy %q", ErrUnsupportedConfig, o.FillStrategy)
	}
	if o.ApplyOutliers {
		switch o.OutlierMethod {
		case MethodZScore, MethodIQR:
		default:
			return fmt.Errorf("%w: outlier method %q", ErrUnsupportedConfig, o.OutlierMethod)
		}
		switch o.OutlierReplacement {
		case ReplaceMedian, ReplaceMean:
		default:
			return fmt.Errorf("%w: outlier replacement %q", ErrUnsupportedConfig, o.OutlierReplacement)
		}
		if o.OutlierThreshold <= 0 {
			return fmt.Errorf("%w: outlier threshold %v must be positive", ErrUnsupportedConfig, o.OutlierThreshold)
		}
	}
	return nil
}

// categoricalSet returns the declared categorical column names normalized
// with the same rule applied to table columns, so declarations made
// against raw headers still match after the rename stage.
func (o Options) categoricalSet() map[string]bool {
	set := make(map[string]bool, len(o.CategoricalColumns))
	for _, name := range o.CategoricalColumns {
		set[normalizeColumnName(name)] = true
	}
	return set
}
