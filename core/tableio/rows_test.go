package tableio

import (
	"testing"

	"stock-checker/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func localTable() *Table {
	return &Table{
		Headers: []string{"code", "name", "defaultCategory", "stock", "productVisibility", "variant:Objem", "price"},
		Rows: [][]string{
			{" 1 ", " Tea ", "Drinks", "5", "Visible", "", "10"},
			{"2", "Mix Box", "Namixuj si dárkový box", "abc", "hidden", "objem 2", "20"},
			{"3", "Short row"},
		},
	}
}

func TestLocalRows(t *testing.T) {
	rows, layout := LocalRows(localTable())

	require.Len(t, rows, 3)
	assert.Equal(t, 5, layout.VariantVolume)
	assert.Equal(t, reconcile.ProductRow{
		Index: 0, Code: "1", Name: "Tea", Category: "Drinks", Stock: 5, Visibility: "Visible",
	}, rows[0])
	assert.Equal(t, 0, rows[1].Stock)
	assert.Equal(t, "objem 2", rows[1].VariantVolume)
	assert.Equal(t, 2, rows[2].Index)
	assert.Equal(t, "", rows[2].Category)
}

func TestLocalRows_MissingColumns(t *testing.T) {
	rows, layout := LocalRows(&Table{Headers: []string{"code"}, Rows: [][]string{{"1"}}})

	require.Len(t, rows, 1)
	assert.Equal(t, -1, layout.Stock)
	assert.Equal(t, -1, layout.VariantVolume)
	assert.Equal(t, "", rows[0].Name)
	assert.Equal(t, 0, rows[0].Stock)
}

func TestSupplierRows(t *testing.T) {
	tbl := &Table{
		Headers: []string{"Code", "Name", "Stock"},
		Rows:    [][]string{{" 1 ", " Tea ", "7.0"}, {"2", "Coffee", "-1"}, {"3"}},
	}

	rows, err := SupplierRows(tbl)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, reconcile.SupplierRow{Code: "1", Name: "Tea", Stock: 7}, rows[0])
	assert.Equal(t, 0, rows[1].Stock)
	assert.Equal(t, reconcile.SupplierRow{Code: "3"}, rows[2])
}

func TestSupplierRows_MissingColumns(t *testing.T) {
	_, err := SupplierRows(&Table{Headers: []string{"name", "stock"}})
	assert.ErrorIs(t, err, ErrMissingColumn)

	_, err = SupplierRows(&Table{Headers: []string{"code", "stock"}})
	assert.ErrorIs(t, err, ErrMissingColumn)

	rows, err := SupplierRows(&Table{Headers: []string{"code", "name"}, Rows: [][]string{{"1", "Tea"}}})
	require.NoError(t, err)
	assert.Equal(t, 0, rows[0].Stock)
}

func TestApplyRows(t *testing.T) {
	src := localTable()
	rows, layout := LocalRows(src)

	rows[0].Stock = 9
	rows[0].Visibility = "visible"
	rows[1].Visibility = "visible"

	out := ApplyRows(src, layout, rows)

	assert.Equal(t, src.Headers, out.Headers)
	require.Len(t, out.Rows, 3)
	assert.Equal(t, "9", out.Rows[0][3])
	assert.Equal(t, "visible", out.Rows[0][4])
	// Untouched cells keep their raw text.
	assert.Equal(t, " 1 ", out.Rows[0][0])
	assert.Equal(t, "0", out.Rows[1][3])
	assert.Equal(t, "visible", out.Rows[1][4])
	assert.Equal(t, "20", out.Rows[1][6])
	assert.Equal(t, []string{"3", "Short row", "", "0"}, out.Rows[2])
	// The source table is not modified.
	assert.Equal(t, "5", src.Rows[0][3])
}

func TestApplyRows_AppendsMissingColumns(t *testing.T) {
	src := &Table{Headers: []string{"code", "name"}, Rows: [][]string{{"1", "Tea"}, {"2", "Coffee"}}}
	rows, layout := LocalRows(src)
	rows[1].Stock = 4
	rows[1].Visibility = "visible"

	out := ApplyRows(src, layout, rows)

	assert.Equal(t, []string{"code", "name", "stock", "productVisibility"}, out.Headers)
	assert.Equal(t, []string{"1", "Tea", "0"}, out.Rows[0])
	assert.Equal(t, []string{"2", "Coffee", "4", "visible"}, out.Rows[1])
}

func TestApplyRows_RewritesCoercedStock(t *testing.T) {
	src := &Table{
		Headers: []string{"code", "name", "stock", "productVisibility"},
		Rows: [][]string{
			{"1", "Tea", "abc", "hidden"},
			{"2", "Coffee", "-4", "hidden"},
			{"3", "Milk", " 0 ", "hidden"},
		},
	}
	localRows, layout := LocalRows(src)

	result := reconcile.Run(localRows, nil, reconcile.DefaultOptions())
	out := ApplyRows(src, layout, result.Rows)

	require.Len(t, out.Rows, 3)
	for _, row := range result.Rows {
		assert.Equal(t, 0, row.Stock)
	}
	assert.Equal(t, "0", out.Rows[0][2])
	assert.Equal(t, "0", out.Rows[1][2])
	// A cell already holding the value keeps its raw text.
	assert.Equal(t, " 0 ", out.Rows[2][2])
	assert.Equal(t, "abc", src.Rows[0][2])
}

// TestRoundTrip_ReconcileTable tests ingestion, a full run and write back on a table.
func TestRoundTrip_ReconcileTable(t *testing.T) {
	local := localTable()
	supplier := &Table{
		Headers: []string{"code", "name", "stock"},
		Rows:    [][]string{{"1", "Tea", "1"}, {"9", "mix box", "4"}},
	}

	localRows, layout := LocalRows(local)
	supplierRows, err := SupplierRows(supplier)
	require.NoError(t, err)

	result := reconcile.Run(localRows, supplierRows, reconcile.DefaultOptions())
	out := ApplyRows(local, layout, result.Rows)

	require.Len(t, out.Rows, len(local.Rows))
	assert.Equal(t, "1", out.Rows[0][3])
	assert.Equal(t, "hidden", out.Rows[0][4])
	assert.Equal(t, "4", out.Rows[1][3])
	assert.Equal(t, "hidden", out.Rows[2][4])
	assert.Len(t, result.Report.MissingProducts, 1)
}

func TestReportTable(t *testing.T) {
	tbl := ReportTable([]reconcile.ProductRow{{Code: "1", Name: "Tea", Category: "Drinks", Stock: 3, Visibility: "hidden"}})

	assert.Equal(t, []string{"code", "name", "defaultCategory", "stock", "productVisibility"}, tbl.Headers)
	assert.Equal(t, [][]string{{"1", "Tea", "Drinks", "3", "hidden"}}, tbl.Rows)
}
