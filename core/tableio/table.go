package tableio

import (
	"errors"
	"strings"
)

var (
	// ErrInputUnavailable is returned when a source table cannot be fetched or decoded.
	ErrInputUnavailable = errors.New("input table unavailable")
	// ErrMissingColumn is returned when a required column is absent from the header row.
	ErrMissingColumn = errors.New("required column missing")
)

// Table is a header row plus raw string cells.
// Rows may be shorter than Headers; missing cells read as "".
type Table struct {
	Headers []string
	Rows    [][]string
}

// Column returns the index of the header equal to name, ignoring case and surrounding spaces, or -1.
func (t *Table) Column(name string) int {
	name = strings.TrimSpace(name)
	for i, h := range t.Headers {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

// Cell returns the cell at row, col or "" when it does not exist.
func (t *Table) Cell(row, col int) string {
	if col < 0 || row < 0 || row >= len(t.Rows) || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// SetCell writes a cell, growing the row when needed.
func (t *Table) SetCell(row, col int, value string) {
	for len(t.Rows[row]) <= col {
		t.Rows[row] = append(t.Rows[row], "")
	}
	t.Rows[row][col] = value
}

// AddColumn appends a header and returns its index.
func (t *Table) AddColumn(name string) int {
	t.Headers = append(t.Headers, name)
	return len(t.Headers) - 1
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := &Table{
		Headers: append([]string(nil), t.Headers...),
		Rows:    make([][]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		out.Rows[i] = append([]string(nil), row...)
	}
	return out
}

// FindVariantVolumeColumn returns the index of the first header that mentions "variant"
// together with "objem" or "volume", or -1 when there is none.
func FindVariantVolumeColumn(headers []string) int {
	for i, h := range headers {
		h = strings.ToLower(h)
		if strings.Contains(h, "variant") && (strings.Contains(h, "objem") || strings.Contains(h, "volume")) {
			return i
		}
	}
	return -1
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// fromRecords splits raw records into header and data rows.
// Fully blank rows are dropped.
func fromRecords(records [][]string) *Table {
	t := &Table{}
	for _, rec := range records {
		if isBlank(rec) {
			continue
		}
		if t.Headers == nil {
			t.Headers = rec
			continue
		}
		t.Rows = append(t.Rows, rec)
	}
	return t
}
