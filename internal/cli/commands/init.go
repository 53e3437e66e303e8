package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/campus-dev/campus/internal/cli/userconfig"
)

// NewInitCmd creates the init command
func NewInitCmd() *cobra.Command {
	var serverURL string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Point the portal at a Campus server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(serverURL)
		},
	}

	cmd.Flags().StringVar(&serverURL, "server", "", "Campus server URL (e.g. https://campus.example.com)")

	return cmd
}

func runInit(serverURL string) error {
	if serverURL == "" {
		return fmt.Errorf("server URL is required (use --server)")
	}

	if !strings.HasPrefix(serverURL, "http://") && !strings.HasPrefix(serverURL, "https://") {
		serverURL = "https://" + serverURL
	}

	if err := userconfig.SetServerURL(serverURL); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Printf("✓ Campus server set to %s\n", serverURL)
	fmt.Println("\nNext: campus register, or campus login if you already have an account.")

	return nil
}
