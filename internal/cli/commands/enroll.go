package commands

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/campus-dev/campus/internal/cli/guard"
)

// NewEnrollCmd creates the enroll command
func NewEnrollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enroll [course-id]",
		Short: "Enroll in a course (interactive picker when no id is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			courseID := ""
			if len(args) == 1 {
				courseID = args[0]
			}
			return runEnroll(cmd, courseID)
		},
	}
}

func runEnroll(cmd *cobra.Command, courseID string) error {
	client, store, err := newPortal()
	if err != nil {
		return err
	}

	if _, err := requireAccess(cmd.Context(), client, store, guard.RouteCatalog); err != nil {
		return err
	}

	if courseID == "" {
		courses, err := client.Courses(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load the catalog: %w", err)
		}
		if len(courses) == 0 {
			fmt.Println("No courses available yet.")
			return nil
		}

		titles := make([]string, 0, len(courses))
		for _, course := range courses {
			titles = append(titles, course.Title)
		}

		prompt := promptui.Select{
			Label: "Pick a course",
			Items: titles,
		}

		idx, _, err := prompt.Run()
		if err != nil {
			return fmt.Errorf("selection aborted: %w", err)
		}
		courseID = courses[idx].ID
	}

	enrollment, err := client.Enroll(cmd.Context(), courseID)
	if err != nil {
		return fmt.Errorf("failed to enroll: %w", err)
	}

	fmt.Printf("✓ Enrolled in course %s\n", enrollment.CourseID)
	fmt.Println("\nTrack your progress with: campus journey")

	return nil
}
