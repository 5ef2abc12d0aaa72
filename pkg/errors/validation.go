package errors

import (
	"math"
	"strings"
	"unicode"
)

// maxNameLength bounds catalog item names.
const maxNameLength = 256

// ValidateGridDimensions rejects grid sizes that would produce a degenerate
// (zero-size or infinite) canvas.
func ValidateGridDimensions(columns, rows int) error {
	if columns <= 0 {
		return Configuration("columns must be a positive integer, got %d", columns)
	}
	if rows <= 0 {
		return Configuration("rows must be a positive integer, got %d", rows)
	}
	return nil
}

// ValidateFinite fails with an invariant violation when any of the named
// values is NaN or infinite.
func ValidateFinite(name string, values ...float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Invariant("%s must be finite, got %v", name, v)
		}
	}
	return nil
}

// ValidatePositive fails with an invariant violation unless every value is
// finite and strictly greater than zero.
func ValidatePositive(name string, values ...float64) error {
	if err := ValidateFinite(name, values...); err != nil {
		return err
	}
	for _, v := range values {
		if v <= 0 {
			return Invariant("%s must be positive, got %v", name, v)
		}
	}
	return nil
}

// ValidateNonNegative fails with an invariant violation unless every value is
// finite and at least zero.
func ValidateNonNegative(name string, values ...float64) error {
	if err := ValidateFinite(name, values...); err != nil {
		return err
	}
	for _, v := range values {
		if v < 0 {
			return Invariant("%s must not be negative, got %v", name, v)
		}
	}
	return nil
}

// ValidateItemName validates a catalog item name.
//
// The rules are conservative:
//   - No empty or whitespace-only names
//   - No control characters
//   - Maximum length of 256 characters
func ValidateItemName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidCatalog, "item name cannot be empty")
	}
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidCatalog, "item name too long (max %d characters)", maxNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidCatalog, "item name contains invalid control characters")
		}
	}
	return nil
}
