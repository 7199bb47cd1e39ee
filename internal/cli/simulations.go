// ABOUTME: Simulations command group for the amora CLI
// ABOUTME: List, show, create, update, and delete saved simulations

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fespschulte/amora-simulator/internal/client"
	"github.com/fespschulte/amora-simulator/internal/finance"
)

var (
	simValue      float64
	simPercentage float64
	simYears      int
	simName       string
	simNotes      string
)

var simulationsCmd = &cobra.Command{
	Use:   "simulations",
	Short: "Manage saved simulations",
	Long:  `List, show, create, update, and delete simulations saved on the backend. Requires a session; run 'amora login' first.`,
}

var simulationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your simulations",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runSimulationsList(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var simulationsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one simulation",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runSimulationsShow(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var simulationsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a simulation",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runSimulationsCreate(ctx, os.Stdout, simulationInputFromFlags())
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var simulationsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a simulation",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runSimulationsUpdate(ctx, os.Stdout, args[0], simulationInputFromFlags())
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var simulationsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a simulation",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runSimulationsDelete(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	for _, c := range []*cobra.Command{simulationsCreateCmd, simulationsUpdateCmd} {
		c.Flags().Float64Var(&simValue, "value", 0, "Property value in BRL")
		c.Flags().Float64Var(&simPercentage, "percentage", 20, "Down payment percentage (10 to 90)")
		c.Flags().IntVar(&simYears, "years", 3, "Contract length in years (1 to 35)")
		c.Flags().StringVar(&simName, "name", "", "Simulation name (optional)")
		c.Flags().StringVar(&simNotes, "notes", "", "Free-form notes (optional)")
		c.MarkFlagRequired("value")
	}

	simulationsCmd.AddCommand(simulationsListCmd)
	simulationsCmd.AddCommand(simulationsShowCmd)
	simulationsCmd.AddCommand(simulationsCreateCmd)
	simulationsCmd.AddCommand(simulationsUpdateCmd)
	simulationsCmd.AddCommand(simulationsDeleteCmd)
	rootCmd.AddCommand(simulationsCmd)
}

func simulationInputFromFlags() client.SimulationInput {
	return client.SimulationInput{
		PropertyValue:         simValue,
		DownPaymentPercentage: simPercentage,
		ContractYears:         simYears,
		Name:                  simName,
		Notes:                 simNotes,
	}
}

// runSimulationsList fetches and prints the simulation list, returning exit code
func runSimulationsList(ctx context.Context, w io.Writer) int {
	c := newClient()
	sims, err := c.ListSimulations(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCodeForError(err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(sims, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(sims) == 0 {
		fmt.Fprintln(w, "No simulations yet. Create one with 'amora simulations create'.")
		return 0
	}
	fmt.Fprint(w, formatSimulationTable(sims))
	return 0
}

func runSimulationsShow(ctx context.Context, w io.Writer, id string) int {
	c := newClient()
	sim, err := c.GetSimulation(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCodeForError(err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(sim, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatSimulationHuman(sim))
	}
	return 0
}

func runSimulationsCreate(ctx context.Context, w io.Writer, input client.SimulationInput) int {
	if err := input.Validate(); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	c := newClient()
	sim, err := c.CreateSimulation(ctx, input)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCodeForError(err)
	}

	fmt.Fprintf(w, "Created %s (%s)\n", sim.DisplayName(), sim.ID)
	return 0
}

func runSimulationsUpdate(ctx context.Context, w io.Writer, id string, input client.SimulationInput) int {
	if err := input.Validate(); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	c := newClient()
	sim, err := c.UpdateSimulation(ctx, id, input)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCodeForError(err)
	}

	fmt.Fprintf(w, "Updated %s (%s)\n", sim.DisplayName(), sim.ID)
	return 0
}

// runSimulationsDelete removes a simulation. A record that is already gone
// counts as success; the end state is the same.
func runSimulationsDelete(ctx context.Context, w io.Writer, id string) int {
	c := newClient()
	if err := c.DeleteSimulation(ctx, id); err != nil {
		if errors.Is(err, client.ErrNotFound) {
			fmt.Fprintf(w, "Deleted %s\n", id)
			return 0
		}
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCodeForError(err)
	}

	fmt.Fprintf(w, "Deleted %s\n", id)
	return 0
}

// formatSimulationTable renders the list as an aligned table
func formatSimulationTable(sims []client.Simulation) string {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tVALUE\tDOWN PAYMENT\tMONTHLY SAVINGS")
	for i := range sims {
		s := &sims[i]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.0f%%\t%s\n",
			s.ID,
			s.DisplayName(),
			finance.FormatBRL(s.PropertyValue),
			s.DownPaymentPercentage,
			finance.FormatBRL(s.MonthlySavings))
	}
	tw.Flush()
	return sb.String()
}

// formatSimulationHuman formats one simulation for human readability
func formatSimulationHuman(s *client.Simulation) string {
	out := fmt.Sprintf(`%s
ID:              %s
Property value:  %s
Down payment:    %s (%.0f%%)
Financing:       %s
Additional costs: %s
Monthly savings:  %s over %d years
Created:         %s`,
		s.DisplayName(),
		s.ID,
		finance.FormatBRL(s.PropertyValue),
		finance.FormatBRL(s.DownPaymentValue), s.DownPaymentPercentage,
		finance.FormatBRL(s.FinancingAmount),
		finance.FormatBRL(s.AdditionalCosts),
		finance.FormatBRL(s.MonthlySavings), s.ContractYears,
		s.CreatedAt.Format("2006-01-02 15:04"))
	if s.Notes != "" {
		out += "\nNotes:           " + s.Notes
	}
	return out
}
