package reconcile

import (
	"fmt"
	"strings"
)

// SizeClass is the coarse bundle size bucket, "1" (large) to "4" (small).
type SizeClass string

const (
	SizeLarge       SizeClass = "1"
	SizeMediumLarge SizeClass = "2"
	SizeMedium      SizeClass = "3"
	SizeSmall       SizeClass = "4"
)

// DefaultBundleThreshold is used when a size class has no configured threshold.
const DefaultBundleThreshold = 9

// DefaultIgnoreCodes are product codes that stay untouched by default.
var DefaultIgnoreCodes = []string{"86827", "3625"}

// DefaultBundleCategories are the category names of gift box variants.
var DefaultBundleCategories = []string{"namixuj si dárkový box", "mix-your-own gift box"}

// ThresholdConfig is the hide policy for one run.
type ThresholdConfig struct {
	// MinStockToShow hides non-bundle products whose resolved stock is at or below it.
	MinStockToShow int `json:"min_stock_to_show"`

	// Bundle maps a size class to the hide threshold of bundle variants.
	Bundle map[SizeClass]int `json:"bundle"`
}

// DefaultThresholds returns minStockToShow=2 and bundle thresholds {1:2, 2:3, 3:5, 4:9}.
func DefaultThresholds() ThresholdConfig {
	return ThresholdConfig{
		MinStockToShow: 2,
		Bundle: map[SizeClass]int{
			SizeLarge:       2,
			SizeMediumLarge: 3,
			SizeMedium:      5,
			SizeSmall:       9,
		},
	}
}

// BundleThreshold returns the threshold for class, or DefaultBundleThreshold if it is not configured.
func (t ThresholdConfig) BundleThreshold(class SizeClass) int {
	if v, ok := t.Bundle[class]; ok {
		return v
	}
	return DefaultBundleThreshold
}

// Validate rejects negative thresholds.
func (t ThresholdConfig) Validate() error {
	if t.MinStockToShow < 0 {
		return fmt.Errorf("min stock to show must not be negative, got %d", t.MinStockToShow)
	}
	for class, v := range t.Bundle {
		if v < 0 {
			return fmt.Errorf("bundle threshold for size %s must not be negative, got %d", class, v)
		}
	}
	return nil
}

// Config holds the reconciliation policy as loaded from the environment.
type Config struct {
	// MinStockToShow hides products with stock at or below this value.
	MinStockToShow int `mapstructure:"min_stock_to_show" default:"2"`
	// ThresholdLarge is the bundle threshold for size class 1.
	ThresholdLarge int `mapstructure:"threshold_large" default:"2"`
	// ThresholdMediumLarge is the bundle threshold for size class 2.
	ThresholdMediumLarge int `mapstructure:"threshold_medium_large" default:"3"`
	// ThresholdMedium is the bundle threshold for size class 3.
	ThresholdMedium int `mapstructure:"threshold_medium" default:"5"`
	// ThresholdSmall is the bundle threshold for size class 4.
	ThresholdSmall int `mapstructure:"threshold_small" default:"9"`
	// IgnoreCodes is a comma separated list of codes left untouched.
	IgnoreCodes string `mapstructure:"ignore_codes" default:"86827,3625"`
	// BundleCategories is a comma separated list of gift box category names.
	BundleCategories string `mapstructure:"bundle_categories" default:"namixuj si dárkový box,mix-your-own gift box"`
}

// Thresholds converts the flat configuration into a ThresholdConfig.
func (c Config) Thresholds() ThresholdConfig {
	return ThresholdConfig{
		MinStockToShow: c.MinStockToShow,
		Bundle: map[SizeClass]int{
			SizeLarge:       c.ThresholdLarge,
			SizeMediumLarge: c.ThresholdMediumLarge,
			SizeMedium:      c.ThresholdMedium,
			SizeSmall:       c.ThresholdSmall,
		},
	}
}

// Options builds validated run options from the configuration.
func (c Config) Options() (Options, error) {
	thresholds := c.Thresholds()
	if err := thresholds.Validate(); err != nil {
		return Options{}, err
	}

	categories := splitList(c.BundleCategories)
	if len(categories) == 0 {
		categories = DefaultBundleCategories
	}

	return Options{
		Thresholds:       thresholds,
		Ignore:           NewIgnoreSet(splitList(c.IgnoreCodes)...),
		BundleCategories: categories,
	}, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
