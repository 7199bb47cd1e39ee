// ABOUTME: Root command for the amora CLI
// ABOUTME: Handles global flags, session location, and client construction

package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fespschulte/amora-simulator/internal/client"
	"github.com/fespschulte/amora-simulator/internal/session"
)

var (
	apiURL     string
	jsonOutput bool
)

const defaultAPIURL = "http://localhost:8000/api"

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "amora",
	Short: "CLI for the aMORA purchase simulator",
	Long: `amora is a command-line interface for the aMORA real-estate purchase simulator.

It simulates purchase scenarios locally and manages saved simulations on the backend.

Environment Variables:
  AMORA_API_URL     Backend API URL (default: http://localhost:8000/api)
  AMORA_CONFIG_DIR  Session directory (default: ~/.config/amora)`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides AMORA_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if envURL := os.Getenv("AMORA_API_URL"); envURL != "" {
		return envURL
	}
	return defaultAPIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

func sessionDir() string {
	if dir := os.Getenv("AMORA_CONFIG_DIR"); dir != "" {
		return dir
	}
	return session.DefaultDir()
}

// newClient builds an API client backed by the local session store.
func newClient() *client.Client {
	c := client.New(GetAPIURL(), session.New(sessionDir()))
	c.OnSessionExpired(func() {
		fmt.Fprintln(os.Stderr, "Sessão expirada. Faça login novamente com 'amora login'.")
	})
	return c
}

// exitCodeForError maps client errors to exit codes. Expected conditions
// (not logged in, record missing) exit 1; network and server failures exit 2.
func exitCodeForError(err error) int {
	if errors.Is(err, client.ErrUnauthenticated) || errors.Is(err, client.ErrNotFound) {
		return 1
	}
	return 2
}
