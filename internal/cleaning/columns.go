package cleaning

import (
	"fmt"
	"strings"

	"github.com/404Health/universal-dataCleaner/internal/dataset"
)

// diagnosisColumn is the (normalized) name of the column that gets label
// canonicalization.
const diagnosisColumn = "diagnosis"

// diagnosisSynonyms maps known free-text variants to the canonical label.
// Matching is exact per cell value, case-insensitive; no substring or
// fuzzy matching.
var diagnosisSynonyms = map[string]string{
	"hypertension": "Hypertension",
	"high bp":      "Hypertension",
}

// normalizeColumnName applies the column naming rule: trim surrounding
// whitespace, lowercase, spaces and hyphens to underscores, drop "?".
func normalizeColumnName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "?", "")
	return s
}

// columnNormalizer rewrites column names and canonicalizes diagnosis
// labels.
type columnNormalizer struct{}

func (columnNormalizer) Name() string { return "normalize_columns" }

func (columnNormalizer) Run(t *dataset.Table, r *Report) (*dataset.Table, error) {
	out := t.Clone()

	seen := make(map[string]string, len(out.Columns))
	for i := range out.Columns {
		original := out.Columns[i].Name
		normalized := normalizeColumnName(original)
		if prev, ok := seen[normalized]; ok {
			return nil, fmt.Errorf("%w: %q and %q both normalize to %q",
				ErrColumnCollision, prev, original, normalized)
		}
		seen[normalized] = original
		out.Columns[i].Name = normalized
	}
	r.Step("Column names cleaned (lowercase, underscores, no special chars)")

	if col := out.Column(diagnosisColumn); col != nil && !col.Type.IsNumeric() {
		standardizeDiagnosis(col)
		r.Step("Standardized diagnosis values")
	}

	return out, nil
}

func standardizeDiagnosis(col *dataset.Column) {
	for i := range col.Cells {
		if col.Cells[i].Null {
			continue
		}
		if canonical, ok := diagnosisSynonyms[strings.ToLower(col.Cells[i].Text)]; ok {
			col.Cells[i] = dataset.TextCell(canonical)
		}
	}
}
