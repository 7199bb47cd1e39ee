// ABOUTME: Dashboard command for the amora CLI
// ABOUTME: Launches the interactive terminal UI

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fespschulte/amora-simulator/internal/tui"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the interactive dashboard",
	Long:  `Open a terminal UI to browse, create, edit, and delete simulations. Requires a session; run 'amora login' first.`,
	Run: func(cmd *cobra.Command, args []string) {
		c := newClient()
		if !c.IsAuthenticated() {
			fmt.Fprintln(os.Stderr, "Not logged in. Run 'amora login' first.")
			os.Exit(1)
		}
		if err := tui.Run(c); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
