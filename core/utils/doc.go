// Package utils provides common utility functions for the stock-checker application.
// It includes the lenient value coercion used when tabular cells are turned into typed rows.
package utils
