package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campus-dev/campus/internal/cli/guard"
)

// NewCourseCmd creates the course detail command
func NewCourseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "course <course-id>",
		Short: "Show a course with its modules and lessons",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCourse(cmd, args[0])
		},
	}
}

func runCourse(cmd *cobra.Command, courseID string) error {
	client, store, err := newPortal()
	if err != nil {
		return err
	}

	if _, err := requireAccess(cmd.Context(), client, store, guard.RouteCatalog); err != nil {
		return err
	}

	course, err := client.Course(cmd.Context(), courseID)
	if err != nil {
		return fmt.Errorf("failed to load course: %w", err)
	}

	fmt.Printf("%s (%s)\n", course.Title, course.Slug)
	if course.Description != "" {
		fmt.Printf("%s\n", course.Description)
	}

	for _, module := range course.Modules {
		fmt.Printf("\n%d. %s\n", module.Position+1, module.Title)
		for _, lesson := range module.Lessons {
			fmt.Printf("   %d.%d %s", module.Position+1, lesson.Position+1, lesson.Title)
			if lesson.VideoURL != "" {
				fmt.Printf("  [%s]", lesson.VideoURL)
			}
			fmt.Printf("  (id: %s)\n", lesson.ID)
		}
	}

	return nil
}
