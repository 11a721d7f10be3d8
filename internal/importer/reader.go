// Package importer turns uploaded spreadsheets (CSV, XLSX, legacy XLS)
// into normalized domain records, one entity type per batch, skipping bad
// rows instead of failing the file.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// Row is one spreadsheet line keyed by header cell.
type Row = map[string]any

// ReadFile reads an upload into rows, dispatching on the file extension.
// The whole file is read before normalization begins; there is no
// streaming parse.
func ReadFile(filename string, r io.Reader) ([]Row, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload %s: %w", filename, err)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return readCSV(data)
	case ".xlsx":
		return readXLSX(data)
	case ".xls":
		return readXLS(data)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", filename)
	}
}

// readCSV handles UTF-8 CSVs with an optional BOM. The delimiter is
// auto-detected from the header line: ";" when present, "," otherwise.
func readCSV(data []byte) ([]Row, error) {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	headerLine := string(data)
	if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
		headerLine = string(data[:idx])
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	if strings.Contains(headerLine, ";") {
		reader.Comma = ';'
	}

	table, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	return rowsFromTable(table), nil
}

// readXLSX reads the first worksheet, first row as header.
func readXLSX(data []byte) ([]Row, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx has no sheets")
	}

	table, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read xlsx rows: %w", err)
	}

	return rowsFromTable(table), nil
}

const maxXLSRows = 65536

// readXLS reads a legacy Excel workbook, first sheet only.
func readXLS(data []byte) ([]Row, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open xls: %w", err)
	}

	table := wb.ReadAllCells(maxXLSRows)
	return rowsFromTable(table), nil
}

// rowsFromTable converts a raw cell grid into header-keyed rows. The first
// row is the header; trailing fully-empty rows are discarded.
func rowsFromTable(table [][]string) []Row {
	for len(table) > 0 && emptyRow(table[len(table)-1]) {
		table = table[:len(table)-1]
	}
	if len(table) < 2 {
		return nil
	}

	header := make([]string, len(table[0]))
	for i, cell := range table[0] {
		header[i] = strings.TrimSpace(cell)
	}

	rows := make([]Row, 0, len(table)-1)
	for _, line := range table[1:] {
		row := Row{}
		for i, name := range header {
			if name == "" || i >= len(line) {
				continue
			}
			row[name] = line[i]
		}
		rows = append(rows, row)
	}

	return rows
}

func emptyRow(line []string) bool {
	for _, cell := range line {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
