package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// MaxFileSize is the largest input accepted by the loader.
const MaxFileSize = 100 * 1024 * 1024 // 100 MB

// supported input extensions, lowercase
var supportedExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
	".xls":  true,
}

// missingMarkers are raw cell values treated as missing on load,
// matched case-insensitively after trimming.
var missingMarkers = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"nan":  true,
	"null": true,
}

// SupportedExtension reports whether the file name carries a loadable
// extension.
func SupportedExtension(name string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(name))]
}

// Load parses raw file bytes into a Table. The format is chosen from the
// file name's extension. Oversized inputs, unsupported extensions, and
// files that parse to an empty table are rejected.
func Load(name string, data []byte) (*Table, error) {
	if int64(len(data)) > MaxFileSize {
		return nil, fmt.Errorf("file %s exceeds %d MB size limit", name, MaxFileSize/(1024*1024))
	}

	ext := strings.ToLower(filepath.Ext(name))
	if !supportedExtensions[ext] {
		return nil, fmt.Errorf("unsupported file format %q: use CSV or Excel (.xlsx, .xls)", ext)
	}

	var (
		rows [][]string
		err  error
	)
	switch ext {
	case ".csv":
		rows, err = readCSVRows(bytes.NewReader(data))
	default:
		rows, err = readExcelRows(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}

	table, err := fromRawRows(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}
	if table.IsEmpty() {
		return nil, fmt.Errorf("the loaded file %s is empty", name)
	}

	slog.Info("Loaded input file",
		slog.String("file", name),
		slog.Int("rows", table.NumRows()),
		slog.Int("columns", table.NumColumns()))

	return table, nil
}

func readCSVRows(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = false

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, record)
	}
	return rows, nil
}

// readExcelRows reads the first sheet that yields any rows. Workbooks
// written by most tools have the data on the first sheet, but scanning
// tolerates leading empty sheets.
func readExcelRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}
		if len(rows) > 0 {
			return rows, nil
		}
	}
	return nil, fmt.Errorf("no sheet with data found")
}

// fromRawRows builds a typed table from a header row plus data rows.
// A column whose non-missing cells all parse as floats becomes numeric;
// every other column is text. Short rows are padded with missing cells.
func fromRawRows(rows [][]string) (*Table, error) {
	if len(rows) == 0 {
		return &Table{}, nil
	}

	header := rows[0]
	data := rows[1:]

	columns := make([]Column, len(header))
	for ci, name := range header {
		raw := make([]string, len(data))
		for ri, row := range data {
			if ci < len(row) {
				raw[ri] = row[ci]
			}
		}
		columns[ci] = buildColumn(name, raw)
	}

	return New(columns)
}

func buildColumn(name string, raw []string) Column {
	numeric := false
	hasValue := false
	numericOK := true
	for _, v := range raw {
		if isMissing(v) {
			continue
		}
		hasValue = true
		if _, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err != nil {
			numericOK = false
			break
		}
	}
	numeric = hasValue && numericOK

	cells := make([]Cell, len(raw))
	for i, v := range raw {
		switch {
		case isMissing(v):
			cells[i] = NullCell()
		case numeric:
			f, _ := strconv.ParseFloat(strings.TrimSpace(v), 64)
			cells[i] = NumberCell(f)
		default:
			cells[i] = TextCell(v)
		}
	}

	colType := TypeText
	if numeric {
		colType = TypeNumber
	}
	return Column{Name: name, Type: colType, Cells: cells}
}

func isMissing(v string) bool {
	return missingMarkers[strings.ToLower(strings.TrimSpace(v))]
}
