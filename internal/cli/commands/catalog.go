package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/campus-dev/campus/internal/cli/guard"
)

// NewCatalogCmd creates the catalog command
func NewCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Browse the course catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalog(cmd)
		},
	}
}

func runCatalog(cmd *cobra.Command) error {
	client, store, err := newPortal()
	if err != nil {
		return err
	}

	if _, err := requireAccess(cmd.Context(), client, store, guard.RouteCatalog); err != nil {
		return err
	}

	courses, err := client.Courses(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load the catalog: %w", err)
	}

	if len(courses) == 0 {
		fmt.Println("No courses available yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSLUG")
	fmt.Fprintln(w, "──\t─────\t────")

	for _, course := range courses {
		fmt.Fprintf(w, "%s\t%s\t%s\n", course.ID, course.Title, course.Slug)
	}

	w.Flush()

	fmt.Println("\nEnroll with: campus enroll <course-id>")

	return nil
}
