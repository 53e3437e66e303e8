package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campus-dev/campus/internal/cli/guard"
)

// NewNoticesCmd creates the notices command
func NewNoticesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "notices",
		Short: "Announcements from the institute",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNotices(cmd)
		},
	}
}

func runNotices(cmd *cobra.Command) error {
	client, store, err := newPortal()
	if err != nil {
		return err
	}

	if _, err := requireAccess(cmd.Context(), client, store, guard.RouteNotices); err != nil {
		return err
	}

	notices, err := client.Notices(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load notices: %w", err)
	}

	if len(notices) == 0 {
		fmt.Println("No announcements.")
		return nil
	}

	for _, notice := range notices {
		fmt.Printf("── %s", notice.Title)
		if notice.CreatedBy != nil && notice.CreatedBy.Name != "" {
			fmt.Printf(" (by %s)", notice.CreatedBy.Name)
		}
		fmt.Printf("\n%s\n\n", notice.Body)
	}

	return nil
}
