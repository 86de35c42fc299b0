package reconcile

import (
	"sort"
	"strings"
)

// Visibility is the canonical visibility state of a catalog row.
type Visibility string

const (
	// Visible marks a product shown in the storefront.
	Visible Visibility = "visible"
	// Hidden marks a product hidden from the storefront.
	Hidden Visibility = "hidden"
)

// ParseVisibility trims and lower-cases free text visibility.
// Unknown values are kept, so they compare unequal to both canonical states.
func ParseVisibility(raw string) Visibility {
	return Visibility(strings.ToLower(strings.TrimSpace(raw)))
}

// ProductRow is one line of the local catalog after ingestion coercion.
// Only Stock and Visibility are ever mutated by a reconciliation pass.
type ProductRow struct {
	// Index is the zero-based position of the row in the source table.
	Index int `json:"index"`

	// Code is the product identifier. It may be empty or duplicated.
	Code string `json:"code"`

	// Name is the trimmed product name.
	Name string `json:"name"`

	// Category is the trimmed default category. Comparisons are case-insensitive.
	Category string `json:"category"`

	// Stock is the non-negative stock quantity.
	Stock int `json:"stock"`

	// Visibility is the trimmed visibility text as loaded, canonical after processing.
	Visibility string `json:"visibility"`

	// VariantVolume is the raw variant volume tag. Empty when the column is absent.
	VariantVolume string `json:"variant_volume,omitempty"`
}

// SupplierRow is one line of the supplier catalog. It is only used to build a SupplierIndex.
type SupplierRow struct {
	Code  string
	Name  string
	Stock int
}

// IgnoreSet holds product codes excluded from reconciliation and reporting.
type IgnoreSet map[string]struct{}

// NewIgnoreSet builds an IgnoreSet from a list of codes. Blank codes are skipped.
func NewIgnoreSet(codes ...string) IgnoreSet {
	set := make(IgnoreSet, len(codes))
	for _, code := range codes {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		set[code] = struct{}{}
	}
	return set
}

// Contains reports whether code is ignored.
func (s IgnoreSet) Contains(code string) bool {
	_, ok := s[code]
	return ok
}

// Codes returns the ignored codes in ascending order.
func (s IgnoreSet) Codes() []string {
	codes := make([]string, 0, len(s))
	for code := range s {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Options bundles the read-only policy for one reconciliation run.
type Options struct {
	// Thresholds controls when rows are hidden.
	Thresholds ThresholdConfig

	// Ignore lists codes that are skipped entirely.
	Ignore IgnoreSet

	// BundleCategories are the lower-cased category names of "mix your own" gift box variants.
	BundleCategories []string
}

// DefaultOptions returns the default thresholds, ignore set and bundle categories.
func DefaultOptions() Options {
	return Options{
		Thresholds:       DefaultThresholds(),
		Ignore:           NewIgnoreSet(DefaultIgnoreCodes...),
		BundleCategories: DefaultBundleCategories,
	}
}

// IsBundle reports whether category names a bundle box category.
func (o Options) IsBundle(category string) bool {
	category = strings.ToLower(strings.TrimSpace(category))
	for _, c := range o.BundleCategories {
		if category == strings.ToLower(c) {
			return true
		}
	}
	return false
}
