// ABOUTME: Tests for the simulation calculator and BRL formatting
// ABOUTME: Verifies the fixed formulas, their invariants, and boundary inputs

package finance

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func TestCompute_ReferenceScenario(t *testing.T) {
	b, err := Compute(500000, 20, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if b.DownPaymentValue != 100000 {
		t.Errorf("expected down payment 100000, got %v", b.DownPaymentValue)
	}
	if b.FinancingAmount != 400000 {
		t.Errorf("expected financing 400000, got %v", b.FinancingAmount)
	}
	if b.AdditionalCosts != 75000 {
		t.Errorf("expected additional costs 75000, got %v", b.AdditionalCosts)
	}
	want := 75000.0 / 360.0
	if math.Abs(b.MonthlySavings-want) > epsilon {
		t.Errorf("expected monthly savings %v, got %v", want, b.MonthlySavings)
	}
}

func TestCompute_Invariants(t *testing.T) {
	tests := []struct {
		name          string
		propertyValue float64
		pct           float64
		years         int
	}{
		{"minimum down payment", 350000, 10, 35},
		{"maximum down payment", 350000, 90, 1},
		{"small value", 1000, 50, 10},
		{"large value", 12500000, 25, 20},
		{"fractional value", 123456.78, 33, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Compute(tt.propertyValue, tt.pct, tt.years)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if math.Abs(b.DownPaymentValue+b.FinancingAmount-tt.propertyValue) > epsilon {
				t.Errorf("down payment %v + financing %v != property value %v",
					b.DownPaymentValue, b.FinancingAmount, tt.propertyValue)
			}
			if math.Abs(b.AdditionalCosts-tt.propertyValue*AdditionalCostRate) > epsilon {
				t.Errorf("additional costs %v != %v * %v", b.AdditionalCosts, tt.propertyValue, AdditionalCostRate)
			}
			wantSavings := b.AdditionalCosts / float64(tt.years*12)
			if math.Abs(b.MonthlySavings-wantSavings) > epsilon {
				t.Errorf("monthly savings %v != additional costs / months %v", b.MonthlySavings, wantSavings)
			}
		})
	}
}

func TestCompute_ZeroPropertyValue(t *testing.T) {
	b, err := Compute(0, 20, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.DownPaymentValue != 0 || b.FinancingAmount != 0 || b.AdditionalCosts != 0 || b.MonthlySavings != 0 {
		t.Errorf("expected all derived values to be zero, got %+v", b)
	}
}

func TestCompute_NonPositiveYears(t *testing.T) {
	for _, years := range []int{0, -1} {
		if _, err := Compute(500000, 20, years); err == nil {
			t.Errorf("expected error for contract years %d, got nil", years)
		}
	}
}

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0, "R$ 0,00"},
		{1, "R$ 1,00"},
		{999.99, "R$ 999,99"},
		{1000, "R$ 1.000,00"},
		{500000, "R$ 500.000,00"},
		{1234567.89, "R$ 1.234.567,89"},
		{208.333333, "R$ 208,33"},
		{-2500.5, "-R$ 2.500,50"},
	}

	for _, tt := range tests {
		if got := FormatBRL(tt.value); got != tt.want {
			t.Errorf("FormatBRL(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}
