package cleaning

import (
	"fmt"
	"strings"
)

// ColumnAction records the missing-value handling applied to one column.
type ColumnAction struct {
	Column string `json:"column"`
	Action string `json:"action"`
}

// Report is the audit trail of a pipeline run: an append-only step log
// plus an ordered per-column missing-value action list. Actions keep
// insertion order, matching column iteration order in the table, and are
// keyed once per column; a second record for the same column merges into
// the existing entry.
type Report struct {
	Steps   []string       `json:"steps_taken"`
	Actions []ColumnAction `json:"missing_values"`

	index map[string]int
}

// NewReport creates an empty report.
func NewReport() *Report {
	return &Report{index: make(map[string]int)}
}

// Step appends a formatted entry to the step log.
func (r *Report) Step(format string, args ...any) {
	r.Steps = append(r.Steps, fmt.Sprintf(format, args...))
}

// RecordAction records the missing-value action taken on a column.
// A repeat record for the same column is merged with "; " rather than
// overwriting the earlier action.
func (r *Report) RecordAction(column, action string) {
	if i, ok := r.index[column]; ok {
		r.Actions[i].Action += "; " + action
		return
	}
	r.index[column] = len(r.Actions)
	r.Actions = append(r.Actions, ColumnAction{Column: column, Action: action})
}

// Action returns the recorded action for a column, if any.
func (r *Report) Action(column string) (string, bool) {
	i, ok := r.index[column]
	if !ok {
		return "", false
	}
	return r.Actions[i].Action, true
}

// missingSummary renders the full action list for the consolidated step
// log entry, in insertion order.
func (r *Report) missingSummary() string {
	if len(r.Actions) == 0 {
		return "{}"
	}
	parts := make([]string, len(r.Actions))
	for i, a := range r.Actions {
		parts[i] = fmt.Sprintf("%s: %s", a.Column, a.Action)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
