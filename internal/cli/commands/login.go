package commands

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/campus-dev/campus/internal/cli/guard"
)

// NewLoginCmd creates the login command
func NewLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the Campus server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd.Context(), email, password)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (or set CAMPUS_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set CAMPUS_PASSWORD, will prompt if not provided)")

	return cmd
}

func runLogin(ctx context.Context, email, password string) error {
	// Check for environment variables (useful for CI/CD)
	if email == "" {
		email = os.Getenv("CAMPUS_EMAIL")
	}
	if password == "" {
		password = os.Getenv("CAMPUS_PASSWORD")
	}

	if email == "" {
		return fmt.Errorf("email is required (use --email flag or CAMPUS_EMAIL env var)")
	}

	client, store, err := newPortal()
	if err != nil {
		return err
	}

	// Prompt for password if not provided via flag or env var
	if password == "" {
		// Check if stdin is a terminal (not piped)
		if term.IsTerminal(int(syscall.Stdin)) {
			fmt.Print("Password: ")
			bytePassword, err := term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password = string(bytePassword)
			fmt.Println() // New line after password input
		} else {
			return fmt.Errorf("password is required in non-interactive mode (use --password flag or CAMPUS_PASSWORD env var)")
		}
	}

	token, err := client.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("%s", loginFailureMessage(err))
	}

	if err := store.Set(token); err != nil {
		return fmt.Errorf("failed to save session token: %w", err)
	}

	fmt.Println("✓ Signed in!")

	// Resolve the identity to pick the landing page, exactly like the web
	// portal does after login. A failure here is not fatal: the session is
	// already established.
	user, err := client.Me(ctx)
	if err != nil {
		fmt.Printf("→ %s\n", guard.RouteDashboard)
		return nil
	}

	fmt.Printf("  User: %s (%s)\n", user.Name, user.Email)
	if user.Role == "admin" {
		fmt.Println("  Role: Admin")
	}
	fmt.Printf("→ %s\n", guard.LandingRoute(user.Role))

	return nil
}
