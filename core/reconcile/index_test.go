package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildIndex(t *testing.T) {
	idx := BuildIndex([]SupplierRow{
		{Code: " A1 ", Name: " Zelený Čaj ", Stock: 4},
		{Code: "B2", Name: "Coffee (kód: B2)", Stock: 7},
		{Code: "", Name: "", Stock: 99},
		{Code: "C3", Name: "Negative", Stock: -5},
	})

	t.Run("ByCodeIsTrimmed", func(t *testing.T) {
		stock, ok := idx.ByCode("A1")
		assert.True(t, ok)
		assert.Equal(t, 4, stock)
	})

	t.Run("ByNameIsNormalized", func(t *testing.T) {
		stock, ok := idx.ByName("zeleny caj")
		assert.True(t, ok)
		assert.Equal(t, 4, stock)

		stock, ok = idx.ByName("COFFEE")
		assert.True(t, ok)
		assert.Equal(t, 7, stock)
	})

	t.Run("EmptyKeysAreNotIndexed", func(t *testing.T) {
		_, ok := idx.ByCode("")
		assert.False(t, ok)
		_, ok = idx.ByName("   ")
		assert.False(t, ok)
	})

	t.Run("NegativeStockIsClamped", func(t *testing.T) {
		stock, ok := idx.ByCode("C3")
		assert.True(t, ok)
		assert.Equal(t, 0, stock)
	})

	t.Run("Len", func(t *testing.T) {
		codes, names := idx.Len()
		assert.Equal(t, 3, codes)
		assert.Equal(t, 3, names)
	})
}

// TestSupplierIndex_Resolve tests that the code wins over the name.
func TestSupplierIndex_Resolve(t *testing.T) {
	idx := BuildIndex([]SupplierRow{
		{Code: "1", Name: "Tea", Stock: 10},
		{Code: "2", Name: "Coffee", Stock: 20},
	})

	stock, ok := idx.Resolve("1", "Coffee")
	assert.True(t, ok)
	assert.Equal(t, 10, stock)

	stock, ok = idx.Resolve("unknown", "coffee")
	assert.True(t, ok)
	assert.Equal(t, 20, stock)

	_, ok = idx.Resolve("unknown", "water")
	assert.False(t, ok)
}

// TestBuildIndex_LastRowWins tests the collision policy and its reporting.
func TestBuildIndex_LastRowWins(t *testing.T) {
	idx := BuildIndex([]SupplierRow{
		{Code: "1", Name: "Tea", Stock: 10},
		{Code: "1", Name: "tea", Stock: 3},
	})

	stock, _ := idx.ByCode("1")
	assert.Equal(t, 3, stock)
	stock, _ = idx.ByName("Tea")
	assert.Equal(t, 3, stock)

	require.Len(t, idx.Collisions, 2)
	assert.Equal(t, "code", idx.Collisions[0].Kind)
	assert.Equal(t, "name", idx.Collisions[1].Kind)
	assert.Equal(t, 10, idx.Collisions[1].Previous)
}
