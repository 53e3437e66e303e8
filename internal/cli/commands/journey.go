package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/campus-dev/campus/internal/cli/guard"
)

// NewJourneyCmd creates the journey command
func NewJourneyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "journey",
		Short: "Your progress per course",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJourney(cmd)
		},
	}
}

func runJourney(cmd *cobra.Command) error {
	client, store, err := newPortal()
	if err != nil {
		return err
	}

	if _, err := requireAccess(cmd.Context(), client, store, guard.RouteJourney); err != nil {
		return err
	}

	journey, err := client.Journey(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load your journey: %w", err)
	}

	if len(journey) == 0 {
		fmt.Println("Nothing to show yet. Enroll in a course first.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COURSE\tCOMPLETED\tPROGRESS")
	fmt.Fprintln(w, "──────\t─────────\t────────")

	for _, course := range journey {
		fmt.Fprintf(w, "%s\t%d/%d\t%.0f%%\n",
			course.CourseTitle,
			course.CompletedLessons,
			course.TotalLessons,
			course.Percent,
		)
	}

	w.Flush()

	return nil
}
