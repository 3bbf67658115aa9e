package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// WriteOptions configures table serialization.
type WriteOptions struct {
	BOMPrefix bool // add UTF-8 BOM so Excel recognizes the encoding
}

// WriteCSV serializes the table as CSV. Missing cells become empty fields.
func WriteCSV(t *Table, opts WriteOptions) ([]byte, error) {
	var buf bytes.Buffer
	if opts.BOMPrefix {
		buf.Write([]byte{0xEF, 0xBB, 0xBF})
	}

	w := csv.NewWriter(&buf)
	if err := w.Write(t.ColumnNames()); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	for i := 0; i < t.NumRows(); i++ {
		if err := w.Write(t.Row(i)); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteXLSX serializes the table as an Excel workbook with a single
// "CleanedData" sheet.
func WriteXLSX(t *Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "CleanedData"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	header := make([]interface{}, t.NumColumns())
	for i, name := range t.ColumnNames() {
		header[i] = name
	}
	if err := setRow(f, sheet, 1, header); err != nil {
		return nil, err
	}

	for ri := 0; ri < t.NumRows(); ri++ {
		row := make([]interface{}, t.NumColumns())
		for ci := range t.Columns {
			cell := t.Columns[ci].Cells[ri]
			switch {
			case cell.Null:
				row[ci] = nil
			case t.Columns[ci].Type.IsNumeric():
				row[ci] = cell.Number
			default:
				row[ci] = cell.String()
			}
		}
		if err := setRow(f, sheet, ri+2, row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}

// CleanedFileName derives the output file name for a cleaned input,
// e.g. "patients.xlsx" -> "cleaned_patients.csv".
func CleanedFileName(inputName, format string) string {
	base := strings.TrimSuffix(filepath.Base(inputName), filepath.Ext(inputName))
	return fmt.Sprintf("cleaned_%s.%s", base, format)
}
