package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ColumnType is the declared representation of a column's cells.
type ColumnType string

const (
	TypeNumber   ColumnType = "number"
	TypeInteger  ColumnType = "integer"
	TypeText     ColumnType = "text"
	TypeCategory ColumnType = "category"
)

// IsNumeric reports whether the type holds numeric cells.
func (t ColumnType) IsNumeric() bool {
	return t == TypeNumber || t == TypeInteger
}

// Cell is a single table value: a number, a text value, or missing.
type Cell struct {
	Number float64
	Text   string
	Null   bool
}

// NumberCell creates a numeric cell.
func NumberCell(v float64) Cell { return Cell{Number: v} }

// TextCell creates a text cell.
func TextCell(s string) Cell { return Cell{Text: s} }

// NullCell creates a missing cell.
func NullCell() Cell { return Cell{Null: true} }

// String renders the cell for serialization and previews.
// Missing cells render as the empty string.
func (c Cell) String() string {
	if c.Null {
		return ""
	}
	if c.Text != "" {
		return c.Text
	}
	return formatNumber(c.Number)
}

// Equal reports whether two cells hold the same value.
// Two missing cells are equal regardless of payload.
func (c Cell) Equal(other Cell) bool {
	if c.Null || other.Null {
		return c.Null == other.Null
	}
	return c.Number == other.Number && c.Text == other.Text
}

// formatNumber renders a float without a trailing ".0" for whole values,
// matching how integer-ish columns appear in exported files.
func formatNumber(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Column is a named, typed, ordered sequence of cells.
type Column struct {
	Name  string
	Type  ColumnType
	Cells []Cell
}

// MissingCount returns the number of missing cells in the column.
func (c *Column) MissingCount() int {
	n := 0
	for _, cell := range c.Cells {
		if cell.Null {
			n++
		}
	}
	return n
}

// NonMissing returns the numeric values of all non-missing cells.
// Only meaningful for numeric columns.
func (c *Column) NonMissing() []float64 {
	values := make([]float64, 0, len(c.Cells))
	for _, cell := range c.Cells {
		if !cell.Null {
			values = append(values, cell.Number)
		}
	}
	return values
}

// Clone returns a deep copy of the column.
func (c *Column) Clone() Column {
	cells := make([]Cell, len(c.Cells))
	copy(cells, c.Cells)
	return Column{Name: c.Name, Type: c.Type, Cells: cells}
}

// Table is an ordered collection of equally sized columns.
type Table struct {
	Columns []Column
}

// New creates a table from columns, validating that all columns share the
// same row count.
func New(columns []Column) (*Table, error) {
	if len(columns) > 0 {
		rows := len(columns[0].Cells)
		for _, col := range columns[1:] {
			if len(col.Cells) != rows {
				return nil, fmt.Errorf("column %q has %d rows, expected %d", col.Name, len(col.Cells), rows)
			}
		}
	}
	return &Table{Columns: columns}, nil
}

// NumRows returns the table's row count.
func (t *Table) NumRows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Cells)
}

// NumColumns returns the table's column count.
func (t *Table) NumColumns() int { return len(t.Columns) }

// IsEmpty reports whether the table has no rows or no columns.
func (t *Table) IsEmpty() bool { return t.NumRows() == 0 || t.NumColumns() == 0 }

// Column returns a pointer to the column with the given name, or nil.
func (t *Table) Column(name string) *Column {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i]
		}
	}
	return nil
}

// ColumnNames returns the column names in table order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = col.Name
	}
	return names
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	columns := make([]Column, len(t.Columns))
	for i := range t.Columns {
		columns[i] = t.Columns[i].Clone()
	}
	return &Table{Columns: columns}
}

// RowKey returns a canonical serialization of row i across all columns,
// used for exact-duplicate detection. Cell values are joined with an
// unprintable separator to avoid accidental key collisions.
func (t *Table) RowKey(i int) string {
	var b strings.Builder
	for ci := range t.Columns {
		if ci > 0 {
			b.WriteByte(0x1f)
		}
		cell := t.Columns[ci].Cells[i]
		if cell.Null {
			b.WriteByte(0x00)
			continue
		}
		b.WriteString(cell.String())
	}
	return b.String()
}

// FilterRows returns a new table containing only the rows for which
// keep[i] is true, preserving order.
func (t *Table) FilterRows(keep []bool) *Table {
	columns := make([]Column, len(t.Columns))
	for ci := range t.Columns {
		src := &t.Columns[ci]
		cells := make([]Cell, 0, len(src.Cells))
		for ri, cell := range src.Cells {
			if keep[ri] {
				cells = append(cells, cell)
			}
		}
		columns[ci] = Column{Name: src.Name, Type: src.Type, Cells: cells}
	}
	return &Table{Columns: columns}
}

// Row returns the string rendering of row i, one entry per column.
func (t *Table) Row(i int) []string {
	row := make([]string, len(t.Columns))
	for ci := range t.Columns {
		row[ci] = t.Columns[ci].Cells[i].String()
	}
	return row
}

// MissingCounts returns the per-column missing-cell counts keyed by
// column name, in table order.
func (t *Table) MissingCounts() map[string]int {
	counts := make(map[string]int, len(t.Columns))
	for i := range t.Columns {
		counts[t.Columns[i].Name] = t.Columns[i].MissingCount()
	}
	return counts
}
