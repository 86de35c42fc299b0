package tableio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"Comma", "code,name,stock\n1,Tea,5\n2,\"Coffee, dark\",0\n"},
		{"Semicolon", "code;name;stock\n1;Tea;5\n2;Coffee, dark;0\n"},
		{"BOM", "\xEF\xBB\xBFcode,name,stock\n1,Tea,5\n2,\"Coffee, dark\",0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := ReadCSV([]byte(tt.data))
			require.NoError(t, err)
			assert.Equal(t, []string{"code", "name", "stock"}, tbl.Headers)
			require.Len(t, tbl.Rows, 2)
			assert.Equal(t, "Coffee, dark", tbl.Rows[1][1])
		})
	}
}

func TestReadCSV_RaggedRows(t *testing.T) {
	tbl, err := ReadCSV([]byte("code,name,stock\n1,Tea\n2,Coffee,3,extra\n"))
	require.NoError(t, err)
	assert.Equal(t, "", tbl.Cell(0, 2))
	assert.Equal(t, "3", tbl.Cell(1, 2))
}

func TestWriteCSV(t *testing.T) {
	tbl := &Table{Headers: []string{"code", "name"}, Rows: [][]string{{"1", "Tea, green"}}}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, tbl))
	assert.Equal(t, "code,name\n1,\"Tea, green\"\n", buf.String())
}
