package cleaning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/404Health/universal-dataCleaner/internal/dataset"
)

func runMissing(t *testing.T, table *dataset.Table, opts Options) (*dataset.Table, *Report) {
	t.Helper()
	report := NewReport()
	out, err := missingResolver{opts: opts}.Run(table, report)
	require.NoError(t, err)
	return out, report
}

func TestMissingResolver_DeleteIsCumulative(t *testing.T) {
	table := mustTable(t,
		numColumn("a", fp(1), nil, fp(3), fp(4)),
		numColumn("b", fp(1), fp(2), nil, fp(4)),
	)
	out, report := runMissing(t, table, Options{FillStrategy: StrategyDelete})

	assert.Equal(t, 2, out.NumRows())

	actionA, _ := report.Action("a")
	actionB, _ := report.Action("b")
	assert.Equal(t, "Deleted 1 missing values", actionA)
	assert.Equal(t, "Deleted 1 missing values", actionB)
}

func TestMissingResolver_DeleteSkipsColumnClearedByEarlierDeletes(t *testing.T) {
	// b's only gap sits on the row a's deletion already removed, so b
	// never reaches the missing-value map.
	table := mustTable(t,
		numColumn("a", fp(1), nil),
		numColumn("b", fp(1), nil),
	)
	out, report := runMissing(t, table, Options{FillStrategy: StrategyDelete})

	assert.Equal(t, 1, out.NumRows())
	_, ok := report.Action("b")
	assert.False(t, ok)
}

func TestMissingResolver_ZeroMissing(t *testing.T) {
	table := mustTable(t,
		numColumn("n", fp(1), nil),
		textColumn("s", "x", ""),
	)
	out, report := runMissing(t, table, Options{FillStrategy: StrategyZeroMissing})

	assert.Equal(t, 0.0, out.Column("n").Cells[1].Number)
	assert.Equal(t, "MISSING", out.Column("s").Cells[1].Text)

	actionN, _ := report.Action("n")
	actionS, _ := report.Action("s")
	assert.Equal(t, "Filled 1 missing with 0", actionN)
	assert.Equal(t, "Filled 1 missing with 'MISSING'", actionS)
}

func TestMissingResolver_MeanOrMode(t *testing.T) {
	tests := []struct {
		name        string
		replacement Replacement
		wantFill    float64
		wantAction  string
	}{
		{"median", ReplaceMedian, 2.0, "Filled 1 missing with median (2.00)"},
		{"mean", ReplaceMean, 2.5, "Filled 1 missing with mean (2.50)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := mustTable(t, numColumn("n", fp(1), fp(2), fp(4.5), nil))
			out, report := runMissing(t, table, Options{
				FillStrategy:       StrategyMeanOrMode,
				OutlierReplacement: tt.replacement,
			})

			assert.Equal(t, tt.wantFill, out.Column("n").Cells[3].Number)
			action, _ := report.Action("n")
			assert.Equal(t, tt.wantAction, action)
		})
	}
}

func TestMissingResolver_ModeFill(t *testing.T) {
	table := mustTable(t, textColumn("s", "a", "b", "b", ""))
	out, report := runMissing(t, table, Options{
		FillStrategy:       StrategyMeanOrMode,
		OutlierReplacement: ReplaceMedian,
	})

	assert.Equal(t, "b", out.Column("s").Cells[3].Text)
	action, _ := report.Action("s")
	assert.Equal(t, "Filled 1 missing with mode (b)", action)
}

func TestMissingResolver_ModeFallbackOnEmptyColumn(t *testing.T) {
	table := mustTable(t,
		textColumn("s", "", ""),
		numColumn("anchor", fp(1), fp(2)),
	)
	out, report := runMissing(t, table, Options{
		FillStrategy:       StrategyMeanOrMode,
		OutlierReplacement: ReplaceMedian,
	})

	assert.Equal(t, []string{"Unknown", "Unknown"}, cellTexts(out.Column("s")))
	action, _ := report.Action("s")
	assert.Equal(t, "Filled 2 missing with mode (Unknown)", action)
}

func TestMissingResolver_EntirelyMissingNumericColumn(t *testing.T) {
	table := mustTable(t,
		numColumn("n", nil, nil),
		numColumn("anchor", fp(1), fp(2)),
	)
	out, report := runMissing(t, table, Options{
		FillStrategy:       StrategyMeanOrMode,
		OutlierReplacement: ReplaceMean,
	})

	assert.Equal(t, 2, out.Column("n").MissingCount(), "no statistic exists, cells stay missing")
	action, _ := report.Action("n")
	assert.Equal(t, "Left 2 missing unfilled (column entirely missing)", action)
}

func TestMissingResolver_BackwardFill(t *testing.T) {
	table := mustTable(t, textColumn("s", "", "b", "", "d", ""))
	out, report := runMissing(t, table, Options{FillStrategy: StrategyBackwardFill})

	assert.Equal(t, []string{"b", "b", "d", "d", ""}, cellTexts(out.Column("s")))
	assert.Equal(t, 1, out.Column("s").MissingCount(), "trailing gap has no following value")

	action, _ := report.Action("s")
	assert.Equal(t, "Backward-filled 3 missing values", action)
}

func TestMissingResolver_ForwardFillLeadingGap(t *testing.T) {
	table := mustTable(t, numColumn("n", nil, fp(2), nil))
	out, _ := runMissing(t, table, Options{FillStrategy: StrategyForwardFill})

	col := out.Column("n")
	assert.True(t, col.Cells[0].Null, "leading gap has no prior value")
	assert.Equal(t, 2.0, col.Cells[2].Number)
}

func TestMissingResolver_ConsolidatedStep(t *testing.T) {
	table := mustTable(t, numColumn("n", fp(1), nil))
	_, report := runMissing(t, table, Options{FillStrategy: StrategyZeroMissing})

	require.NotEmpty(t, report.Steps)
	assert.Equal(t, "Missing values handled: {n: Filled 1 missing with 0}", report.Steps[len(report.Steps)-1])
}

func TestMissingResolver_NoMissingValues(t *testing.T) {
	table := mustTable(t, numColumn("n", fp(1), fp(2)))
	_, report := runMissing(t, table, Options{FillStrategy: StrategyDelete})

	assert.Empty(t, report.Actions)
	assert.Equal(t, []string{"Missing values handled: {}"}, report.Steps)
}
