package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyVolume(t *testing.T) {
	tests := []struct {
		in   string
		want SizeClass
	}{
		{"objem 2", SizeMediumLarge},
		{"1", SizeLarge},
		{"Objem: 3 (střední)", SizeMedium},
		{"velikost 7, pak 4", SizeSmall},
		{"98 5 3", SizeMedium},
		{"", SizeSmall},
		{"malé", SizeSmall},
		{"0", SizeSmall},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyVolume(tt.in))
		})
	}
}
