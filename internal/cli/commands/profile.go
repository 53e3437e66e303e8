package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campus-dev/campus/internal/cli/guard"
)

// NewProfileCmd creates the profile command
func NewProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "profile",
		Aliases: []string{"whoami"},
		Short:   "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfile(cmd)
		},
	}
}

func runProfile(cmd *cobra.Command) error {
	client, store, err := newPortal()
	if err != nil {
		return err
	}

	user, err := requireAccess(cmd.Context(), client, store, guard.RouteProfile)
	if err != nil {
		return err
	}

	if user.ID == "" {
		// Degraded resolution: the identity could not be confirmed
		fmt.Println("Signed in, but the profile could not be loaded right now.")
		return nil
	}

	fmt.Printf("Name:  %s\n", user.Name)
	fmt.Printf("Email: %s\n", user.Email)
	fmt.Printf("Role:  %s\n", user.Role)

	return nil
}
