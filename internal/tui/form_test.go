// ABOUTME: Tests for the simulation form validators and payload building
// ABOUTME: Covers input ranges, edit prefill, and the live preview

package tui

import (
	"strings"
	"testing"

	"github.com/fespschulte/amora-simulator/internal/client"
)

func TestValidatePropertyValue(t *testing.T) {
	if err := validatePropertyValue("500000"); err != nil {
		t.Errorf("valid value rejected: %v", err)
	}
	for _, bad := range []string{"", "abc", "0", "-100"} {
		if err := validatePropertyValue(bad); err == nil {
			t.Errorf("validatePropertyValue(%q) = nil, want error", bad)
		}
	}
}

func TestValidatePercentage(t *testing.T) {
	for _, ok := range []string{"10", "20", "90", "42.5"} {
		if err := validatePercentage(ok); err != nil {
			t.Errorf("validatePercentage(%q) = %v", ok, err)
		}
	}
	for _, bad := range []string{"", "x", "9.9", "90.1"} {
		if err := validatePercentage(bad); err == nil {
			t.Errorf("validatePercentage(%q) = nil, want error", bad)
		}
	}
}

func TestValidateYears(t *testing.T) {
	for _, ok := range []string{"1", "3", "35"} {
		if err := validateYears(ok); err != nil {
			t.Errorf("validateYears(%q) = %v", ok, err)
		}
	}
	for _, bad := range []string{"", "x", "0", "36", "2.5"} {
		if err := validateYears(bad); err == nil {
			t.Errorf("validateYears(%q) = nil, want error", bad)
		}
	}
}

func TestFormInputFromValues(t *testing.T) {
	f := newSimForm(nil)
	f.value = "500000"
	f.percentage = "20"
	f.years = "3"
	f.name = " Casa "
	f.notes = "Perto do metrô"

	input := f.input()
	want := client.SimulationInput{
		PropertyValue:         500000,
		DownPaymentPercentage: 20,
		ContractYears:         3,
		Name:                  "Casa",
		Notes:                 "Perto do metrô",
	}
	if input != want {
		t.Errorf("input() = %+v, want %+v", input, want)
	}
}

func TestFormPrefillsFromExisting(t *testing.T) {
	sim := &client.Simulation{
		ID:                    "sim-1",
		PropertyValue:         500000,
		DownPaymentPercentage: 20,
		ContractYears:         3,
		Name:                  "Casa",
	}

	f := newSimForm(sim)
	if !f.editing() {
		t.Error("editing() = false for prefilled form")
	}
	if f.value != "500000" || f.percentage != "20" || f.years != "3" || f.name != "Casa" {
		t.Errorf("prefill = value %q, percentage %q, years %q, name %q", f.value, f.percentage, f.years, f.name)
	}
}

func TestFormPreview(t *testing.T) {
	f := newSimForm(nil)
	f.value = "500000"
	f.percentage = "20"
	f.years = "3"

	preview := f.preview()
	for _, want := range []string{"R$ 100.000,00", "R$ 400.000,00", "R$ 75.000,00", "R$ 2.083,33"} {
		if !strings.Contains(preview, want) {
			t.Errorf("preview missing %q:\n%s", want, preview)
		}
	}
}

func TestFormPreviewEmptyWhileInvalid(t *testing.T) {
	f := newSimForm(nil)
	f.value = "abc"

	if got := f.preview(); got != "" {
		t.Errorf("preview() = %q, want empty for unparseable input", got)
	}
}
