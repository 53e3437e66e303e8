package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/campus-dev/campus/internal/cli/guard"
)

// NewMyCoursesCmd creates the my-courses command
func NewMyCoursesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "my-courses",
		Short: "List courses you are enrolled in",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMyCourses(cmd)
		},
	}
}

func runMyCourses(cmd *cobra.Command) error {
	client, store, err := newPortal()
	if err != nil {
		return err
	}

	if _, err := requireAccess(cmd.Context(), client, store, guard.RouteMyCourses); err != nil {
		return err
	}

	enrollments, err := client.MyCourses(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load your courses: %w", err)
	}

	if len(enrollments) == 0 {
		fmt.Println("You are not enrolled in any course yet.")
		fmt.Println("\nBrowse the catalog with: campus catalog")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COURSE ID\tTITLE")
	fmt.Fprintln(w, "─────────\t─────")

	for _, enrollment := range enrollments {
		fmt.Fprintf(w, "%s\t%s\n", enrollment.CourseID, enrollment.Course.Title)
	}

	w.Flush()

	return nil
}
