package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campus-dev/campus/internal/cli/guard"
)

// NewDashboardCmd creates the dashboard command
func NewDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Your course overview",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd)
		},
	}
}

func runDashboard(cmd *cobra.Command) error {
	client, store, err := newPortal()
	if err != nil {
		return err
	}

	user, err := requireAccess(cmd.Context(), client, store, guard.RouteDashboard)
	if err != nil {
		return err
	}

	if user.Name != "" {
		fmt.Printf("Welcome back, %s!\n\n", user.Name)
	}

	journey, err := client.Journey(cmd.Context())
	if err != nil {
		fmt.Println("Your progress is unavailable right now.")
		return nil
	}

	if len(journey) == 0 {
		fmt.Println("You are not enrolled in any course yet.")
		fmt.Println("\nBrowse the catalog with: campus catalog")
		return nil
	}

	var totalCompleted, totalLessons int64
	for _, course := range journey {
		totalCompleted += course.CompletedLessons
		totalLessons += course.TotalLessons
	}

	fmt.Printf("Enrolled courses:  %d\n", len(journey))
	fmt.Printf("Lessons completed: %d / %d\n", totalCompleted, totalLessons)
	fmt.Println("\nSee per-course progress with: campus journey")

	return nil
}
