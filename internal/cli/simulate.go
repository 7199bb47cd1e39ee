// ABOUTME: Simulate command for the amora CLI
// ABOUTME: Computes a purchase breakdown locally without contacting the backend

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/fespschulte/amora-simulator/internal/client"
	"github.com/fespschulte/amora-simulator/internal/finance"
)

var (
	simulateValue      float64
	simulatePercentage float64
	simulateYears      int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a purchase simulation locally",
	Long:  `Compute the purchase breakdown for a property value, down payment percentage, and contract length. Runs entirely offline; use 'amora simulations create' to save a scenario.`,
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := runSimulate(os.Stdout, simulateValue, simulatePercentage, simulateYears)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	simulateCmd.Flags().Float64Var(&simulateValue, "value", 0, "Property value in BRL")
	simulateCmd.Flags().Float64Var(&simulatePercentage, "percentage", 20, "Down payment percentage (10 to 90)")
	simulateCmd.Flags().IntVar(&simulateYears, "years", 3, "Contract length in years (1 to 35)")
	simulateCmd.MarkFlagRequired("value")
	rootCmd.AddCommand(simulateCmd)
}

// runSimulate validates input, computes the breakdown, and returns exit code
func runSimulate(w io.Writer, value, percentage float64, years int) int {
	input := client.SimulationInput{
		PropertyValue:         value,
		DownPaymentPercentage: percentage,
		ContractYears:         years,
	}
	if err := input.Validate(); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	breakdown, err := finance.Compute(value, percentage, years)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatBreakdownJSON(breakdown))
	} else {
		fmt.Fprintln(w, formatBreakdownHuman(value, percentage, years, breakdown))
	}
	return 0
}

// formatBreakdownHuman formats a simulation result for human readability
func formatBreakdownHuman(value, percentage float64, years int, b finance.Breakdown) string {
	return fmt.Sprintf(`Property value:  %s
Down payment:    %s (%.0f%%)
Financing:       %s
Additional costs: %s
Monthly savings:  %s over %d years`,
		finance.FormatBRL(value),
		finance.FormatBRL(b.DownPaymentValue), percentage,
		finance.FormatBRL(b.FinancingAmount),
		finance.FormatBRL(b.AdditionalCosts),
		finance.FormatBRL(b.MonthlySavings), years)
}

// formatBreakdownJSON formats a simulation result as JSON
func formatBreakdownJSON(b finance.Breakdown) string {
	data, _ := json.MarshalIndent(b, "", "  ")
	return string(data)
}
