// ABOUTME: Simulation calculator for property purchase projections
// ABOUTME: Single source of derived financial fields, shared by CLI preview and backend persistence

package finance

import (
	"fmt"
	"math"
	"strings"
)

// AdditionalCostRate is the fixed share of the property value reserved for
// taxes, notary fees and moving costs.
const AdditionalCostRate = 0.15

// Breakdown holds the derived financial fields for a simulation.
type Breakdown struct {
	DownPaymentValue float64 `json:"down_payment_value"`
	FinancingAmount  float64 `json:"financing_amount"`
	AdditionalCosts  float64 `json:"additional_costs"`
	MonthlySavings   float64 `json:"monthly_savings"`
}

// Compute derives the financial breakdown from the three user-supplied inputs.
// propertyValue is in major currency units (BRL), downPaymentPercentage in
// [0, 100]. contractYears must be positive; callers validate ranges before
// calling, but a non-positive term would divide by zero so it is rejected here.
func Compute(propertyValue, downPaymentPercentage float64, contractYears int) (Breakdown, error) {
	if contractYears <= 0 {
		return Breakdown{}, fmt.Errorf("contract years must be positive, got %d", contractYears)
	}

	downPayment := propertyValue * downPaymentPercentage / 100
	additionalCosts := propertyValue * AdditionalCostRate

	return Breakdown{
		DownPaymentValue: downPayment,
		FinancingAmount:  propertyValue - downPayment,
		AdditionalCosts:  additionalCosts,
		MonthlySavings:   additionalCosts / float64(contractYears*12),
	}, nil
}

// FormatBRL renders a value as Brazilian currency, e.g. "R$ 500.000,00".
// Display-only: formatted strings are never fed back into stored values.
func FormatBRL(value float64) string {
	negative := value < 0
	cents := int64(math.Round(math.Abs(value) * 100))

	whole := cents / 100
	frac := cents % 100

	digits := fmt.Sprintf("%d", whole)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	out := fmt.Sprintf("R$ %s,%02d", b.String(), frac)
	if negative {
		return "-" + out
	}
	return out
}
