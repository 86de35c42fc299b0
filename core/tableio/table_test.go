package tableio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_Column(t *testing.T) {
	tbl := &Table{Headers: []string{"code", " Name ", "defaultCategory"}}

	assert.Equal(t, 0, tbl.Column("code"))
	assert.Equal(t, 1, tbl.Column("name"))
	assert.Equal(t, 2, tbl.Column("DEFAULTCATEGORY"))
	assert.Equal(t, -1, tbl.Column("stock"))
}

func TestTable_CellAndSetCell(t *testing.T) {
	tbl := &Table{Headers: []string{"a", "b", "c"}, Rows: [][]string{{"1"}}}

	assert.Equal(t, "1", tbl.Cell(0, 0))
	assert.Equal(t, "", tbl.Cell(0, 2))
	assert.Equal(t, "", tbl.Cell(3, 0))
	assert.Equal(t, "", tbl.Cell(0, -1))

	tbl.SetCell(0, 2, "x")
	assert.Equal(t, []string{"1", "", "x"}, tbl.Rows[0])
}

func TestTable_Clone(t *testing.T) {
	tbl := &Table{Headers: []string{"a"}, Rows: [][]string{{"1"}}}
	clone := tbl.Clone()
	clone.Rows[0][0] = "2"
	clone.Headers[0] = "b"

	assert.Equal(t, "1", tbl.Rows[0][0])
	assert.Equal(t, "a", tbl.Headers[0])
}

func TestFindVariantVolumeColumn(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		want    int
	}{
		{"Czech", []string{"code", "variant:Objem", "stock"}, 1},
		{"English", []string{"code", "Variant Volume"}, 1},
		{"FirstWins", []string{"variantObjem", "variant:volume"}, 0},
		{"VariantOnly", []string{"variant:Barva"}, -1},
		{"None", []string{"code", "name"}, -1},
		{"Empty", nil, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FindVariantVolumeColumn(tt.headers))
		})
	}
}

func TestFromRecords_DropsBlankRows(t *testing.T) {
	tbl := fromRecords([][]string{
		{"", ""},
		{"code", "name"},
		{"1", "Tea"},
		{" ", ""},
		{"2", "Coffee"},
	})

	assert.Equal(t, []string{"code", "name"}, tbl.Headers)
	assert.Len(t, tbl.Rows, 2)
}
