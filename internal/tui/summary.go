// ABOUTME: Aggregate figures for the dashboard header
// ABOUTME: Totals and averages across the user's saved simulations

package tui

import "github.com/fespschulte/amora-simulator/internal/client"

// Summary aggregates the saved simulations for the dashboard header.
type Summary struct {
	Count                int
	TotalPropertyValue   float64
	TotalMonthlySavings  float64
	AveragePropertyValue float64
}

// Summarize computes dashboard totals from the simulation list.
func Summarize(sims []client.Simulation) Summary {
	s := Summary{Count: len(sims)}
	for i := range sims {
		s.TotalPropertyValue += sims[i].PropertyValue
		s.TotalMonthlySavings += sims[i].MonthlySavings
	}
	if s.Count > 0 {
		s.AveragePropertyValue = s.TotalPropertyValue / float64(s.Count)
	}
	return s
}
