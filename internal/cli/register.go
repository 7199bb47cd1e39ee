// ABOUTME: Register command for the amora CLI
// ABOUTME: Creates a new account without establishing a session

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	registerUsername string
	registerEmail    string
	registerPassword string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new aMORA account",
	Long:  `Create an account with username, email, and password. Registration does not log you in; run 'amora login' afterwards.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runRegister(ctx, os.Stdout, registerUsername, registerEmail, registerPassword)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	registerCmd.Flags().StringVar(&registerUsername, "username", "", "Account username")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Account email")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "Account password (prompted when omitted)")
	registerCmd.MarkFlagRequired("username")
	registerCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(registerCmd)
}

// runRegister executes account creation and returns exit code
func runRegister(ctx context.Context, w io.Writer, username, email, password string) int {
	if password == "" {
		p, err := promptPassword("Password: ")
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		password = p
	}

	c := newClient()
	profile, err := c.Register(ctx, username, email, password)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCodeForError(err)
	}

	fmt.Fprintf(w, "Account created for %s (%s). Run 'amora login' to start a session.\n", profile.Username, profile.Email)
	return 0
}
