package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidateGridDimensions(t *testing.T) {
	tests := []struct {
		name    string
		cols    int
		rows    int
		wantErr bool
	}{
		{"default grid", 60, 40, false},
		{"single cell", 1, 1, false},

		{"zero columns", 0, 40, true},
		{"zero rows", 60, 0, true},
		{"negative columns", -3, 40, true},
		{"negative rows", 60, -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGridDimensions(tt.cols, tt.rows)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateGridDimensions(%d, %d) error = %v, wantErr %v", tt.cols, tt.rows, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeConfiguration) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeConfiguration)
			}
		})
	}
}

func TestValidatePositive(t *testing.T) {
	tests := []struct {
		name    string
		values  []float64
		wantErr bool
	}{
		{"positive", []float64{1, 0.5, 1e6}, false},
		{"zero", []float64{0}, true},
		{"negative", []float64{3, -0.1}, true},
		{"nan", []float64{math.NaN()}, true},
		{"inf", []float64{math.Inf(1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositive("value", tt.values...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidatePositive(%v) error = %v, wantErr %v", tt.values, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvariant) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvariant)
			}
		})
	}
}

func TestValidateNonNegative(t *testing.T) {
	if err := ValidateNonNegative("size", 0, 10); err != nil {
		t.Errorf("zero should be accepted: %v", err)
	}
	if err := ValidateNonNegative("size", -1); !Is(err, ErrCodeInvariant) {
		t.Errorf("negative should be rejected, got %v", err)
	}
	if err := ValidateNonNegative("size", math.Inf(-1)); !Is(err, ErrCodeInvariant) {
		t.Errorf("-Inf should be rejected, got %v", err)
	}
}

func TestValidateItemName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "Sofa", false},
		{"with spaces", "Dining Table", false},
		{"unicode", "Bücherregal", false},

		{"empty", "", true},
		{"whitespace", "   ", true},
		{"too long", strings.Repeat("x", 300), true},
		{"control char", "sofa\x01", true},
		{"newline", "so\nfa", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateItemName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateItemName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
