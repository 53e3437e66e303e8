package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/campus-dev/campus/internal/cli/api"
	"github.com/campus-dev/campus/internal/cli/guard"
)

// NewAdminCmd creates the admin command group
func NewAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage courses, content and accounts (admin only)",
	}

	cmd.AddCommand(newAdminCourseCmd())
	cmd.AddCommand(newAdminModuleCmd())
	cmd.AddCommand(newAdminLessonCmd())
	cmd.AddCommand(newAdminNoticeCmd())
	cmd.AddCommand(newAdminUsersCmd())
	cmd.AddCommand(newAdminSystemCmd())

	return cmd
}

// adminAccess runs the guard with the admin route requirement. Non-admins
// are sent to the dashboard by the gate.
func adminAccess(cmd *cobra.Command, route guard.Route) (*api.Client, error) {
	client, store, err := newPortal()
	if err != nil {
		return nil, err
	}

	if _, err := requireAccess(cmd.Context(), client, store, route); err != nil {
		return nil, err
	}

	return client, nil
}

func newAdminCourseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "course",
		Short: "Course management",
	}

	var title, slug, description string
	var published bool

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a course",
		RunE: func(cmd *cobra.Command, args []string) error {
			if title == "" || slug == "" {
				return fmt.Errorf("title and slug are required")
			}

			client, err := adminAccess(cmd, guard.RouteAdminCourses)
			if err != nil {
				return err
			}

			course, err := client.CreateCourse(cmd.Context(), api.CreateCoursePayload{
				Title:       title,
				Slug:        slug,
				Description: description,
				Published:   published,
			})
			if err != nil {
				return fmt.Errorf("failed to create course: %w", err)
			}

			fmt.Printf("✓ Course created: %s (id: %s)\n", course.Title, course.ID)
			return nil
		},
	}
	create.Flags().StringVar(&title, "title", "", "Course title")
	create.Flags().StringVar(&slug, "slug", "", "URL slug (lowercase letters, digits, hyphens)")
	create.Flags().StringVar(&description, "description", "", "Course description")
	create.Flags().BoolVar(&published, "published", false, "Publish immediately")

	var updateTitle, updateDescription string
	var publish, unpublish bool

	update := &cobra.Command{
		Use:   "update <course-id>",
		Short: "Update a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := adminAccess(cmd, guard.RouteAdminCourses)
			if err != nil {
				return err
			}

			payload := api.UpdateCoursePayload{}
			if updateTitle != "" {
				payload.Title = &updateTitle
			}
			if updateDescription != "" {
				payload.Description = &updateDescription
			}
			if publish {
				value := true
				payload.Published = &value
			} else if unpublish {
				value := false
				payload.Published = &value
			}

			course, err := client.UpdateCourse(cmd.Context(), args[0], payload)
			if err != nil {
				return fmt.Errorf("failed to update course: %w", err)
			}

			fmt.Printf("✓ Course updated: %s (published: %v)\n", course.Title, course.Published)
			return nil
		},
	}
	update.Flags().StringVar(&updateTitle, "title", "", "New title")
	update.Flags().StringVar(&updateDescription, "description", "", "New description")
	update.Flags().BoolVar(&publish, "publish", false, "Publish the course")
	update.Flags().BoolVar(&unpublish, "unpublish", false, "Unpublish the course")

	del := &cobra.Command{
		Use:   "delete <course-id>",
		Short: "Delete a course and all its content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := adminAccess(cmd, guard.RouteAdminCourses)
			if err != nil {
				return err
			}

			if err := client.DeleteCourse(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to delete course: %w", err)
			}

			fmt.Println("✓ Course deleted.")
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List all courses, drafts included",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := adminAccess(cmd, guard.RouteAdminCourses)
			if err != nil {
				return err
			}

			courses, err := client.Courses(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list courses: %w", err)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tSLUG\tPUBLISHED")
			for _, course := range courses {
				fmt.Fprintf(w, "%s\t%s\t%s\t%v\n", course.ID, course.Title, course.Slug, course.Published)
			}
			w.Flush()
			return nil
		},
	}

	cmd.AddCommand(create, update, del, list)
	return cmd
}

func newAdminModuleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "module",
		Short: "Module management",
	}

	var title string
	var position int

	add := &cobra.Command{
		Use:   "add <course-id>",
		Short: "Add a module to a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if title == "" {
				return fmt.Errorf("title is required")
			}

			client, err := adminAccess(cmd, guard.RouteAdminModules)
			if err != nil {
				return err
			}

			module, err := client.CreateModule(cmd.Context(), args[0], api.CreateModulePayload{
				Title:    title,
				Position: position,
			})
			if err != nil {
				return fmt.Errorf("failed to add module: %w", err)
			}

			fmt.Printf("✓ Module added: %s (id: %s)\n", module.Title, module.ID)
			return nil
		},
	}
	add.Flags().StringVar(&title, "title", "", "Module title")
	add.Flags().IntVar(&position, "position", 0, "Order within the course")

	del := &cobra.Command{
		Use:   "delete <module-id>",
		Short: "Delete a module and its lessons",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := adminAccess(cmd, guard.RouteAdminModules)
			if err != nil {
				return err
			}

			if err := client.DeleteModule(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to delete module: %w", err)
			}

			fmt.Println("✓ Module deleted.")
			return nil
		},
	}

	cmd.AddCommand(add, del)
	return cmd
}

func newAdminLessonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lesson",
		Short: "Lesson management",
	}

	var title, videoURL, content string
	var position int

	add := &cobra.Command{
		Use:   "add <module-id>",
		Short: "Add a lesson to a module",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if title == "" {
				return fmt.Errorf("title is required")
			}

			client, err := adminAccess(cmd, guard.RouteAdminLessons)
			if err != nil {
				return err
			}

			lesson, err := client.CreateLesson(cmd.Context(), args[0], api.CreateLessonPayload{
				Title:    title,
				VideoURL: videoURL,
				Content:  content,
				Position: position,
			})
			if err != nil {
				return fmt.Errorf("failed to add lesson: %w", err)
			}

			fmt.Printf("✓ Lesson added: %s (id: %s)\n", lesson.Title, lesson.ID)
			return nil
		},
	}
	add.Flags().StringVar(&title, "title", "", "Lesson title")
	add.Flags().StringVar(&videoURL, "video-url", "", "Video URL")
	add.Flags().StringVar(&content, "content", "", "Lesson text content")
	add.Flags().IntVar(&position, "position", 0, "Order within the module")

	del := &cobra.Command{
		Use:   "delete <lesson-id>",
		Short: "Delete a lesson",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := adminAccess(cmd, guard.RouteAdminLessons)
			if err != nil {
				return err
			}

			if err := client.DeleteLesson(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to delete lesson: %w", err)
			}

			fmt.Println("✓ Lesson deleted.")
			return nil
		},
	}

	cmd.AddCommand(add, del)
	return cmd
}

func newAdminNoticeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notice",
		Short: "Announcements",
	}

	var title, body string

	post := &cobra.Command{
		Use:   "post",
		Short: "Post an announcement",
		RunE: func(cmd *cobra.Command, args []string) error {
			if title == "" || body == "" {
				return fmt.Errorf("title and body are required")
			}

			client, err := adminAccess(cmd, guard.RouteAdminCourses)
			if err != nil {
				return err
			}

			notice, err := client.CreateNotice(cmd.Context(), api.CreateNoticePayload{
				Title: title,
				Body:  body,
			})
			if err != nil {
				return fmt.Errorf("failed to post notice: %w", err)
			}

			fmt.Printf("✓ Notice posted: %s\n", notice.Title)
			return nil
		},
	}
	post.Flags().StringVar(&title, "title", "", "Notice title")
	post.Flags().StringVar(&body, "body", "", "Notice body")

	cmd.AddCommand(post)
	return cmd
}

func newAdminSystemCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "system",
		Short: "Show server host metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := adminAccess(cmd, guard.RouteAdminCourses)
			if err != nil {
				return err
			}

			status, err := client.System(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to fetch system status: %w", err)
			}

			m := status.Metrics
			fmt.Printf("Server version: %s\n\n", status.Version)
			fmt.Printf("CPU cores:  %d\n", m.CPUCount)
			fmt.Printf("Memory:     %.1f GB used / %.1f GB total\n", m.MemoryUsedGB, m.MemoryTotalGB)
			fmt.Printf("Disk:       %.1f GB used / %.1f GB total (%.0f%%)\n", m.DiskUsedGB, m.DiskTotalGB, m.DiskUsedPercent)
			return nil
		},
	}
}

func newAdminUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Account management",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List all accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := adminAccess(cmd, guard.RouteAdminCourses)
			if err != nil {
				return err
			}

			users, err := client.Users(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list users: %w", err)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tSUSPENDED")
			for _, user := range users {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%v\n", user.ID, user.Name, user.Email, user.Role, user.Suspended)
			}
			w.Flush()
			return nil
		},
	}

	suspend := &cobra.Command{
		Use:   "suspend <user-id>",
		Short: "Toggle suspension on an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := adminAccess(cmd, guard.RouteAdminCourses)
			if err != nil {
				return err
			}

			user, err := client.SuspendUser(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to update account: %w", err)
			}

			if user.Suspended {
				fmt.Printf("✓ %s is now suspended.\n", user.Email)
			} else {
				fmt.Printf("✓ %s is active again.\n", user.Email)
			}
			return nil
		},
	}

	cmd.AddCommand(list, suspend)
	return cmd
}
