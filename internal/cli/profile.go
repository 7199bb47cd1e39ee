// ABOUTME: Profile command for the amora CLI
// ABOUTME: Updates account fields after re-verifying the current password

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fespschulte/amora-simulator/internal/client"
)

var (
	profileUsername        string
	profileEmail           string
	profileCurrentPassword string
	profileNewPassword     string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Update your profile",
	Long:  `Update username, email, or password. The backend requires your current password to accept any change.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		update := client.ProfileUpdate{
			Username:        profileUsername,
			Email:           profileEmail,
			CurrentPassword: profileCurrentPassword,
			NewPassword:     profileNewPassword,
		}
		exitCode := runProfile(ctx, os.Stdout, update)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	profileCmd.Flags().StringVar(&profileUsername, "username", "", "New username (defaults to current)")
	profileCmd.Flags().StringVar(&profileEmail, "email", "", "New email (defaults to current)")
	profileCmd.Flags().StringVar(&profileCurrentPassword, "current-password", "", "Current password (prompted when omitted)")
	profileCmd.Flags().StringVar(&profileNewPassword, "new-password", "", "New password (optional)")
	rootCmd.AddCommand(profileCmd)
}

// runProfile applies the profile update and returns exit code
func runProfile(ctx context.Context, w io.Writer, update client.ProfileUpdate) int {
	c := newClient()

	// Unchanged fields default to the cached profile so a single-flag
	// invocation works.
	if update.Username == "" || update.Email == "" {
		cached := c.CachedProfile()
		if cached == nil {
			fmt.Fprintln(w, "Error: not logged in")
			return 1
		}
		if update.Username == "" {
			update.Username = cached.Username
		}
		if update.Email == "" {
			update.Email = cached.Email
		}
	}

	if update.CurrentPassword == "" {
		p, err := promptPassword("Current password: ")
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		update.CurrentPassword = p
	}

	profile, err := c.UpdateProfile(ctx, update)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCodeForError(err)
	}

	fmt.Fprintf(w, "Profile updated: %s (%s)\n", profile.Username, profile.Email)
	return 0
}
