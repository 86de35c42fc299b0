package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToInt(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
	}{
		{"Int", 5, 5},
		{"Int64", int64(7), 7},
		{"Uint8", uint8(3), 3},
		{"Float", 4.9, 4},
		{"String", " 12 ", 12},
		{"DecimalString", "12.0", 12},
		{"CommaDecimal", "3,7", 3},
		{"Bytes", []byte("8"), 8},
		{"Garbage", "abc", 0},
		{"Empty", "", 0},
		{"Nil", nil, 0},
		{"NaN", "NaN", 0},
		{"Negative", "-4", -4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToInt(tt.in))
		})
	}
}

func TestToStock(t *testing.T) {
	assert.Equal(t, 0, ToStock("-4"))
	assert.Equal(t, 0, ToStock("n/a"))
	assert.Equal(t, 15, ToStock("15"))
	assert.Equal(t, 2, ToStock(2.5))
}

func TestToString(t *testing.T) {
	assert.Equal(t, "", ToString(nil))
	assert.Equal(t, "abc", ToString("  abc "))
	assert.Equal(t, "42", ToString(42))
	assert.Equal(t, "x", ToString([]byte(" x")))
}
