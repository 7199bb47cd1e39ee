// ABOUTME: Whoami command for the amora CLI
// ABOUTME: Shows the authenticated user's profile

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fespschulte/amora-simulator/internal/session"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current user",
	Long:  `Display the profile of the authenticated user, fetched from the backend.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runWhoami(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// runWhoami fetches and prints the current profile, returning exit code
func runWhoami(ctx context.Context, w io.Writer) int {
	c := newClient()
	profile, err := c.Me(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCodeForError(err)
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatProfileJSON(profile))
	} else {
		fmt.Fprintln(w, formatProfileHuman(profile))
	}
	return 0
}

// formatProfileHuman formats a profile for human readability
func formatProfileHuman(p *session.Profile) string {
	return fmt.Sprintf(`Username:  %s
Email:     %s
Member since: %s`,
		p.Username, p.Email, p.CreatedAt.Format("2006-01-02"))
}

// formatProfileJSON formats a profile as JSON
func formatProfileJSON(p *session.Profile) string {
	data, _ := json.MarshalIndent(p, "", "  ")
	return string(data)
}
