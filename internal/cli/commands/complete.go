package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campus-dev/campus/internal/cli/guard"
)

// NewCompleteCmd creates the complete command
func NewCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <lesson-id>",
		Short: "Mark a lesson as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runComplete(cmd, args[0])
		},
	}
}

func runComplete(cmd *cobra.Command, lessonID string) error {
	client, store, err := newPortal()
	if err != nil {
		return err
	}

	if _, err := requireAccess(cmd.Context(), client, store, guard.RouteJourney); err != nil {
		return err
	}

	if err := client.CompleteLesson(cmd.Context(), lessonID); err != nil {
		return fmt.Errorf("failed to record progress: %w", err)
	}

	fmt.Println("✓ Lesson completed.")

	return nil
}
