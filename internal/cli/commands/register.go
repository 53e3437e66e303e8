package commands

import (
	"context"
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/campus-dev/campus/internal/cli/guard"
)

// NewRegisterCmd creates the register command
func NewRegisterCmd() *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account on the Campus server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegister(cmd.Context(), name, email, password)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Full name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password (will prompt if not provided)")

	return cmd
}

func runRegister(ctx context.Context, name, email, password string) error {
	if name == "" {
		return fmt.Errorf("name is required (use --name)")
	}
	if email == "" {
		return fmt.Errorf("email is required (use --email)")
	}

	client, store, err := newPortal()
	if err != nil {
		return err
	}

	if password == "" {
		if term.IsTerminal(int(syscall.Stdin)) {
			fmt.Print("Password: ")
			bytePassword, err := term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password = string(bytePassword)
			fmt.Println()
		} else {
			return fmt.Errorf("password is required in non-interactive mode (use --password)")
		}
	}

	if err := client.Register(ctx, name, email, password); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	fmt.Println("✓ Account created!")

	// Registration-then-login: establish the session right away
	token, err := client.Login(ctx, email, password)
	if err != nil {
		fmt.Println("Account created but sign-in failed. Run 'campus login'.")
		return nil
	}

	if err := store.Set(token); err != nil {
		return fmt.Errorf("failed to save session token: %w", err)
	}

	fmt.Printf("✓ Signed in as %s\n", email)
	fmt.Printf("→ %s\n", guard.RouteDashboard)

	return nil
}
