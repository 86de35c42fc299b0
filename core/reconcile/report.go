package reconcile

import "strings"

// Report aggregates the changes made during one reconciliation pass.
type Report struct {
	// StockChanges counts rows whose own stock was overwritten from the supplier.
	StockChanges int `json:"stock_changes"`

	// HiddenCount counts rows that went from visible to hidden.
	HiddenCount int `json:"hidden_count"`

	// VisibleCount counts rows that went from hidden to visible.
	VisibleCount int `json:"visible_count"`

	// TotalVisible counts visible rows in the output table.
	TotalVisible int `json:"total_visible"`

	// MissingProducts holds rows with no supplier counterpart, bundle variants included.
	MissingProducts []ProductRow `json:"missing_products"`

	// MissingExcludingBundles holds missing rows outside the bundle categories.
	MissingExcludingBundles []ProductRow `json:"missing_excluding_bundles"`

	// NewlyHidden holds rows whose visibility changed to hidden.
	NewlyHidden []ProductRow `json:"newly_hidden"`

	// NewlyVisible holds rows whose visibility changed to visible.
	NewlyVisible []ProductRow `json:"newly_visible"`

	// UnmatchedByCode holds non-bundle rows whose code is not in the supplier table.
	UnmatchedByCode []ProductRow `json:"unmatched_by_code"`

	// DuplicateCodes holds rows sharing a code with another local row.
	DuplicateCodes []ProductRow `json:"duplicate_codes"`

	// SupplierCollisions lists supplier keys that were overwritten while indexing.
	SupplierCollisions []Collision `json:"supplier_collisions,omitempty"`
}

// newReport returns a Report whose row lists are empty rather than nil, so they encode as [].
func newReport() *Report {
	return &Report{
		MissingProducts:         []ProductRow{},
		MissingExcludingBundles: []ProductRow{},
		NewlyHidden:             []ProductRow{},
		NewlyVisible:            []ProductRow{},
		UnmatchedByCode:         []ProductRow{},
		DuplicateCodes:          []ProductRow{},
	}
}

// MissingUnique returns MissingProducts without repeated codes, keeping the first occurrence.
// Rows without a code are always kept.
func (r *Report) MissingUnique() []ProductRow {
	seen := make(map[string]struct{}, len(r.MissingProducts))
	out := make([]ProductRow, 0, len(r.MissingProducts))
	for _, row := range r.MissingProducts {
		if row.Code != "" {
			if _, dup := seen[row.Code]; dup {
				continue
			}
			seen[row.Code] = struct{}{}
		}
		out = append(out, row)
	}
	return out
}

// UnmatchedByCode returns the rows whose code is absent from the supplier code set.
// Bundle rows and ignored codes are excluded.
func UnmatchedByCode(rows []ProductRow, index *SupplierIndex, opts Options) []ProductRow {
	out := make([]ProductRow, 0)
	for _, row := range rows {
		if opts.Ignore.Contains(row.Code) || opts.IsBundle(row.Category) {
			continue
		}
		if !index.HasCode(row.Code) {
			out = append(out, row)
		}
	}
	return out
}

// DuplicateCodes returns every row whose code appears more than once in rows.
// Ignored and empty codes are excluded.
func DuplicateCodes(rows []ProductRow, ignore IgnoreSet) []ProductRow {
	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		if row.Code == "" || ignore.Contains(row.Code) {
			continue
		}
		counts[row.Code]++
	}

	out := make([]ProductRow, 0)
	for _, row := range rows {
		if counts[row.Code] > 1 {
			out = append(out, row)
		}
	}
	return out
}

// CountVisible counts rows whose visibility is "visible", ignoring case.
func CountVisible(rows []ProductRow) int {
	n := 0
	for _, row := range rows {
		if strings.EqualFold(strings.TrimSpace(row.Visibility), string(Visible)) {
			n++
		}
	}
	return n
}
