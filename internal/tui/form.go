// ABOUTME: Simulation create and edit form as a huh form with live preview
// ABOUTME: Validates input ranges before anything reaches the backend

package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/fespschulte/amora-simulator/internal/client"
	"github.com/fespschulte/amora-simulator/internal/finance"
	"github.com/fespschulte/amora-simulator/internal/tui/styles"
)

// simForm wraps a huh form for creating or editing a simulation.
type simForm struct {
	form      *huh.Form
	editingID string // empty when creating

	// Field values (strings for huh)
	value      string
	percentage string
	years      string
	name       string
	notes      string
}

func newSimForm(existing *client.Simulation) *simForm {
	f := &simForm{
		percentage: "20",
		years:      "3",
	}
	if existing != nil {
		f.editingID = existing.ID
		f.value = strconv.FormatFloat(existing.PropertyValue, 'f', -1, 64)
		f.percentage = strconv.FormatFloat(existing.DownPaymentPercentage, 'f', -1, 64)
		f.years = strconv.Itoa(existing.ContractYears)
		f.name = existing.Name
		f.notes = existing.Notes
	}

	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Property value (BRL)").
				Description("Total value of the property").
				Value(&f.value).
				Validate(validatePropertyValue),
			huh.NewInput().
				Title("Down payment (%)").
				Description("Between 10 and 90").
				Value(&f.percentage).
				Validate(validatePercentage),
			huh.NewInput().
				Title("Contract years").
				Description("Between 1 and 35").
				Value(&f.years).
				Validate(validateYears),
			huh.NewInput().
				Title("Name").
				Description("Optional label").
				Value(&f.name),
			huh.NewInput().
				Title("Notes").
				Description("Optional free-form notes").
				Value(&f.notes),
		),
	).WithShowHelp(true)

	return f
}

func (f *simForm) editing() bool {
	return f.editingID != ""
}

// input builds the API payload from the form values. Only valid after the
// form completes since huh has already validated each field.
func (f *simForm) input() client.SimulationInput {
	value, _ := strconv.ParseFloat(strings.TrimSpace(f.value), 64)
	percentage, _ := strconv.ParseFloat(strings.TrimSpace(f.percentage), 64)
	years, _ := strconv.Atoi(strings.TrimSpace(f.years))

	return client.SimulationInput{
		PropertyValue:         value,
		DownPaymentPercentage: percentage,
		ContractYears:         years,
		Name:                  strings.TrimSpace(f.name),
		Notes:                 strings.TrimSpace(f.notes),
	}
}

// preview renders the live breakdown for the current field values, or an
// empty string while they do not parse to a valid scenario.
func (f *simForm) preview() string {
	value, err := strconv.ParseFloat(strings.TrimSpace(f.value), 64)
	if err != nil || value <= 0 {
		return ""
	}
	percentage, err := strconv.ParseFloat(strings.TrimSpace(f.percentage), 64)
	if err != nil {
		return ""
	}
	years, err := strconv.Atoi(strings.TrimSpace(f.years))
	if err != nil || years <= 0 {
		return ""
	}

	b, err := finance.Compute(value, percentage, years)
	if err != nil {
		return ""
	}

	rows := []struct{ label, amount string }{
		{"Down payment", finance.FormatBRL(b.DownPaymentValue)},
		{"Financing", finance.FormatBRL(b.FinancingAmount)},
		{"Additional costs", finance.FormatBRL(b.AdditionalCosts)},
		{"Monthly savings", finance.FormatBRL(b.MonthlySavings)},
	}

	var sb strings.Builder
	sb.WriteString(styles.Subtitle.Render("Preview"))
	sb.WriteString("\n")
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("%s %s\n",
			styles.Label.Render(fmt.Sprintf("%-17s", row.label+":")),
			styles.Currency.Render(row.amount)))
	}
	return styles.Panel.Render(strings.TrimRight(sb.String(), "\n"))
}

func validatePropertyValue(s string) error {
	value, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("enter a number")
	}
	if value <= 0 {
		return fmt.Errorf("value must be positive")
	}
	return nil
}

func validatePercentage(s string) error {
	p, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("enter a number")
	}
	if p < 10 || p > 90 {
		return fmt.Errorf("must be between 10 and 90")
	}
	return nil
}

func validateYears(s string) error {
	y, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("enter a whole number")
	}
	if y < 1 || y > 35 {
		return fmt.Errorf("must be between 1 and 35")
	}
	return nil
}
