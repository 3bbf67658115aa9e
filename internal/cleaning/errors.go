package cleaning

import "errors"

var (
	// ErrEmptyTable is returned when an empty table reaches the pipeline.
	ErrEmptyTable = errors.New("the input table is empty")

	// ErrUnsupportedConfig is returned when a strategy, method, or
	// replacement value has no matching branch. The reference behavior of
	// silently falling back to a text fill is deliberately not kept.
	ErrUnsupportedConfig = errors.New("unsupported configuration")

	// ErrColumnCollision is returned when column-name normalization maps
	// two distinct input columns to the same name.
	ErrColumnCollision = errors.New("column name collision after normalization")
)
