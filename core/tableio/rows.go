package tableio

import (
	"fmt"
	"strconv"
	"strings"

	"stock-checker/core/reconcile"
	"stock-checker/core/utils"
)

// Column names of the shop and supplier exports.
const (
	ColCode       = "code"
	ColName       = "name"
	ColCategory   = "defaultCategory"
	ColStock      = "stock"
	ColVisibility = "productVisibility"
)

// LocalLayout holds the column indices of a local catalog table. Absent columns are -1.
type LocalLayout struct {
	Code          int
	Name          int
	Category      int
	Stock         int
	Visibility    int
	VariantVolume int
}

// DetectLocalLayout resolves the local catalog columns, including the heuristic variant volume column.
func DetectLocalLayout(t *Table) LocalLayout {
	return LocalLayout{
		Code:          t.Column(ColCode),
		Name:          t.Column(ColName),
		Category:      t.Column(ColCategory),
		Stock:         t.Column(ColStock),
		Visibility:    t.Column(ColVisibility),
		VariantVolume: FindVariantVolumeColumn(t.Headers),
	}
}

// LocalRows coerces the local catalog into typed rows.
// Missing columns are treated as empty values, malformed stock as 0.
func LocalRows(t *Table) ([]reconcile.ProductRow, LocalLayout) {
	layout := DetectLocalLayout(t)

	rows := make([]reconcile.ProductRow, len(t.Rows))
	for i := range t.Rows {
		rows[i] = reconcile.ProductRow{
			Index:         i,
			Code:          utils.ToString(t.Cell(i, layout.Code)),
			Name:          utils.ToString(t.Cell(i, layout.Name)),
			Category:      utils.ToString(t.Cell(i, layout.Category)),
			Stock:         utils.ToStock(t.Cell(i, layout.Stock)),
			Visibility:    utils.ToString(t.Cell(i, layout.Visibility)),
			VariantVolume: utils.ToString(t.Cell(i, layout.VariantVolume)),
		}
	}
	return rows, layout
}

// SupplierRows coerces the supplier export into typed rows.
// The code and name columns are required; a missing stock column yields zero stock.
func SupplierRows(t *Table) ([]reconcile.SupplierRow, error) {
	codeCol, nameCol, stockCol := t.Column(ColCode), t.Column(ColName), t.Column(ColStock)
	if codeCol < 0 {
		return nil, fmt.Errorf("%w: supplier table has no %q column", ErrMissingColumn, ColCode)
	}
	if nameCol < 0 {
		return nil, fmt.Errorf("%w: supplier table has no %q column", ErrMissingColumn, ColName)
	}

	rows := make([]reconcile.SupplierRow, len(t.Rows))
	for i := range t.Rows {
		rows[i] = reconcile.SupplierRow{
			Code:  utils.ToString(t.Cell(i, codeCol)),
			Name:  utils.ToString(t.Cell(i, nameCol)),
			Stock: utils.ToStock(t.Cell(i, stockCol)),
		}
	}
	return rows, nil
}

// ApplyRows returns a copy of t with the stock and visibility of rows written back.
// Only cells whose text differs from the row are rewritten, so malformed or negative
// stock cells are replaced by their coerced value. Every other cell, the column order
// and the row order are kept. Missing stock or visibility columns are appended on demand.
func ApplyRows(t *Table, layout LocalLayout, rows []reconcile.ProductRow) *Table {
	out := t.Clone()
	stockCol, visCol := layout.Stock, layout.Visibility

	for _, row := range rows {
		i := row.Index
		if i < 0 || i >= len(out.Rows) {
			continue
		}

		if stock := strconv.Itoa(row.Stock); stock != strings.TrimSpace(t.Cell(i, layout.Stock)) {
			if stockCol < 0 {
				stockCol = out.AddColumn(ColStock)
			}
			out.SetCell(i, stockCol, stock)
		}

		if row.Visibility != strings.TrimSpace(t.Cell(i, layout.Visibility)) {
			if visCol < 0 {
				visCol = out.AddColumn(ColVisibility)
			}
			out.SetCell(i, visCol, row.Visibility)
		}
	}
	return out
}

// ReportTable renders report rows as a table with the columns shown to operators.
func ReportTable(rows []reconcile.ProductRow) *Table {
	t := &Table{Headers: []string{ColCode, ColName, ColCategory, ColStock, ColVisibility}}
	for _, row := range rows {
		t.Rows = append(t.Rows, []string{row.Code, row.Name, row.Category, strconv.Itoa(row.Stock), row.Visibility})
	}
	return t
}
