package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RowCountMismatch(t *testing.T) {
	_, err := New([]Column{
		{Name: "a", Type: TypeNumber, Cells: []Cell{NumberCell(1)}},
		{Name: "b", Type: TypeNumber, Cells: []Cell{NumberCell(1), NumberCell(2)}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `column "b"`)
}

func TestTable_CloneIsDeep(t *testing.T) {
	table, err := New([]Column{
		{Name: "a", Type: TypeText, Cells: []Cell{TextCell("x")}},
	})
	require.NoError(t, err)

	clone := table.Clone()
	clone.Columns[0].Name = "renamed"
	clone.Columns[0].Cells[0] = TextCell("changed")

	assert.Equal(t, "a", table.Columns[0].Name)
	assert.Equal(t, "x", table.Columns[0].Cells[0].Text)
}

func TestTable_RowKeyDistinguishesNullFromEmpty(t *testing.T) {
	table, err := New([]Column{
		{Name: "a", Type: TypeText, Cells: []Cell{NullCell(), TextCell("x")}},
		{Name: "b", Type: TypeText, Cells: []Cell{TextCell("x"), NullCell()}},
	})
	require.NoError(t, err)

	assert.NotEqual(t, table.RowKey(0), table.RowKey(1))
}

func TestTable_FilterRows(t *testing.T) {
	table, err := New([]Column{
		{Name: "n", Type: TypeNumber, Cells: []Cell{NumberCell(1), NumberCell(2), NumberCell(3)}},
	})
	require.NoError(t, err)

	out := table.FilterRows([]bool{true, false, true})
	assert.Equal(t, 2, out.NumRows())
	assert.Equal(t, 1.0, out.Columns[0].Cells[0].Number)
	assert.Equal(t, 3.0, out.Columns[0].Cells[1].Number)
	assert.Equal(t, 3, table.NumRows(), "input unchanged")
}

func TestCell_String(t *testing.T) {
	assert.Equal(t, "", NullCell().String())
	assert.Equal(t, "10", NumberCell(10).String())
	assert.Equal(t, "2.5", NumberCell(2.5).String())
	assert.Equal(t, "hello", TextCell("hello").String())
}

func TestCell_Equal(t *testing.T) {
	assert.True(t, NullCell().Equal(NullCell()))
	assert.True(t, NumberCell(1).Equal(NumberCell(1)))
	assert.False(t, NumberCell(1).Equal(NullCell()))
	assert.False(t, TextCell("1").Equal(NumberCell(1)))
}

func TestTable_MissingCounts(t *testing.T) {
	table, err := New([]Column{
		{Name: "a", Type: TypeNumber, Cells: []Cell{NumberCell(1), NullCell()}},
		{Name: "b", Type: TypeText, Cells: []Cell{TextCell("x"), TextCell("y")}},
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"a": 1, "b": 0}, table.MissingCounts())
}

func TestColumnType_IsNumeric(t *testing.T) {
	assert.True(t, TypeNumber.IsNumeric())
	assert.True(t, TypeInteger.IsNumeric())
	assert.False(t, TypeText.IsNumeric())
	assert.False(t, TypeCategory.IsNumeric())
}
