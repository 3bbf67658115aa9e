// Package cleaning implements the tabular data cleaning pipeline.
//
// A run executes five stages in a fixed order, each producing a new table
// value from its predecessor:
//
//  1. Deduplication: exact-duplicate rows removed, first occurrence kept
//  2. Column normalization: column renames plus diagnosis-label canonicalization
//  3. Outlier resolution: Z-Score or IQR detection per numeric column
//  4. Missing-value resolution: fill or drop per the configured strategy
//  5. Type optimization: categorical marking and whole-number downcasting
//
// A Report accumulates alongside the stages: an ordered step log with at
// least one entry per stage, plus a per-column record of every
// missing-value action taken.
//
// Basic usage:
//
//	cleaned, report, err := cleaning.Clean(table, cleaning.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, step := range report.Steps {
//	    fmt.Println(step)
//	}
//
// The input table is never mutated; callers keep it for before/after
// comparison.
package cleaning
