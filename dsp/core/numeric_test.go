package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		lo       float64
		hi       float64
		expected float64
	}{
		{name: "inside", value: 0.5, lo: -1, hi: 1, expected: 0.5},
		{name: "below", value: -3, lo: -1, hi: 1, expected: -1},
		{name: "above", value: 2, lo: -1, hi: 1, expected: 1},
		{name: "lower edge", value: -1, lo: -1, hi: 1, expected: -1},
		{name: "upper edge", value: 1, lo: -1, hi: 1, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.lo, tt.hi)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestLinearPowerToDB(t *testing.T) {
	if db := LinearPowerToDB(100); math.Abs(db-20) > 1e-12 {
		t.Fatalf("LinearPowerToDB(100) = %v, want 20", db)
	}
	if db := LinearPowerToDB(0.5); math.Abs(db+3.010299956639812) > 1e-12 {
		t.Fatalf("LinearPowerToDB(0.5) = %v, want -3.0103", db)
	}
	if !math.IsInf(LinearPowerToDB(0), -1) {
		t.Fatal("expected -Inf for zero power")
	}
	if !math.IsNaN(LinearPowerToDB(-1)) {
		t.Fatal("expected NaN for negative power")
	}
}
