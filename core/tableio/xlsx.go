package tableio

import (
	"fmt"
	"io"
	"strconv"

	"github.com/tealeg/xlsx/v2"
)

// DefaultSheetName is the sheet written by WriteXLSX.
const DefaultSheetName = "Sheet1"

// ReadXLSX decodes the first sheet of an XLSX workbook.
func ReadXLSX(data []byte) (*Table, error) {
	f, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, fmt.Errorf("%w: xlsx: open: %v", ErrInputUnavailable, err)
	}
	return firstSheet(f)
}

// OpenXLSX reads an XLSX file from disk.
func OpenXLSX(path string) (*Table, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: xlsx: open file %s: %v", ErrInputUnavailable, path, err)
	}
	return firstSheet(f)
}

func firstSheet(f *xlsx.File) (*Table, error) {
	if len(f.Sheets) == 0 {
		return nil, fmt.Errorf("%w: xlsx: workbook has no sheets", ErrInputUnavailable)
	}

	sheet := f.Sheets[0]
	records := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		if row == nil {
			continue
		}
		records = append(records, rowToStrings(row))
	}
	return fromRecords(records), nil
}

// WriteXLSX writes the table as a single sheet workbook.
// Columns whose non-blank cells are all canonical integers are written as numbers,
// so "12" becomes a number while "007" stays text. Cells of the columns listed in
// numeric are written as numbers whenever they parse as integers.
func WriteXLSX(w io.Writer, t *Table, numeric ...string) error {
	numericCols := integerColumns(t)
	forced := make(map[int]bool, len(numeric))
	for _, name := range numeric {
		if col := t.Column(name); col >= 0 {
			forced[col] = true
		}
	}

	f := xlsx.NewFile()
	sheet, err := f.AddSheet(DefaultSheetName)
	if err != nil {
		return fmt.Errorf("xlsx: add sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, h := range t.Headers {
		header.AddCell().SetString(h)
	}

	for _, rec := range t.Rows {
		row := sheet.AddRow()
		for col, value := range rec {
			cell := row.AddCell()
			if numericCols[col] || forced[col] {
				if n, err := strconv.Atoi(value); err == nil {
					cell.SetInt(n)
					continue
				}
			}
			cell.SetString(value)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx: write: %w", err)
	}
	return nil
}

// maxExactDigits is the longest integer a spreadsheet number keeps exactly.
const maxExactDigits = 15

// integerColumns returns the columns that hold at least one value and whose
// non-blank cells all print back unchanged through strconv.Itoa.
func integerColumns(t *Table) map[int]bool {
	cols := make(map[int]bool)
	mixed := make(map[int]bool)
	for _, rec := range t.Rows {
		for col, value := range rec {
			if value == "" || mixed[col] {
				continue
			}
			if isCanonicalInt(value) {
				cols[col] = true
				continue
			}
			mixed[col] = true
			delete(cols, col)
		}
	}
	return cols
}

func isCanonicalInt(value string) bool {
	if len(value) > maxExactDigits {
		return false
	}
	n, err := strconv.Atoi(value)
	return err == nil && strconv.Itoa(n) == value
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}
