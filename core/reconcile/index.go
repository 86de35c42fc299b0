package reconcile

import "strings"

// SupplierIndex resolves supplier stock by exact code and by normalized name.
// It is built once per run and never modified afterwards.
type SupplierIndex struct {
	byCode map[string]int
	byName map[string]int

	// Collisions lists keys that appeared more than once in the supplier table.
	// The last occurrence wins; the list is only surfaced as a warning.
	Collisions []Collision
}

// Collision describes a supplier key that was overwritten by a later row.
type Collision struct {
	// Kind is "code" or "name".
	Kind string `json:"kind"`
	// Key is the code or normalized name.
	Key string `json:"key"`
	// Previous is the stock that was overwritten.
	Previous int `json:"previous"`
	// Current is the stock that was kept.
	Current int `json:"current"`
}

// BuildIndex builds a SupplierIndex from supplier rows.
// Codes and names are trimmed; empty keys are not indexed.
func BuildIndex(rows []SupplierRow) *SupplierIndex {
	idx := &SupplierIndex{
		byCode: make(map[string]int, len(rows)),
		byName: make(map[string]int, len(rows)),
	}

	for _, row := range rows {
		stock := row.Stock
		if stock < 0 {
			stock = 0
		}

		if code := strings.TrimSpace(row.Code); code != "" {
			idx.put(idx.byCode, "code", code, stock)
		}
		if name := NormalizeName(row.Name); name != "" {
			idx.put(idx.byName, "name", name, stock)
		}
	}

	return idx
}

func (idx *SupplierIndex) put(m map[string]int, kind, key string, stock int) {
	if prev, exists := m[key]; exists {
		idx.Collisions = append(idx.Collisions, Collision{Kind: kind, Key: key, Previous: prev, Current: stock})
	}
	m[key] = stock
}

// ByCode returns the supplier stock for an exact code.
func (idx *SupplierIndex) ByCode(code string) (int, bool) {
	if code == "" {
		return 0, false
	}
	stock, ok := idx.byCode[code]
	return stock, ok
}

// ByName returns the supplier stock for a raw name, normalizing it first.
func (idx *SupplierIndex) ByName(name string) (int, bool) {
	key := NormalizeName(name)
	if key == "" {
		return 0, false
	}
	stock, ok := idx.byName[key]
	return stock, ok
}

// Resolve tries the exact code first, then the normalized name.
func (idx *SupplierIndex) Resolve(code, name string) (int, bool) {
	if stock, ok := idx.ByCode(code); ok {
		return stock, true
	}
	return idx.ByName(name)
}

// HasCode reports whether the supplier table contains code.
func (idx *SupplierIndex) HasCode(code string) bool {
	_, ok := idx.ByCode(code)
	return ok
}

// Len returns the number of distinct codes and normalized names.
func (idx *SupplierIndex) Len() (codes, names int) {
	return len(idx.byCode), len(idx.byName)
}
