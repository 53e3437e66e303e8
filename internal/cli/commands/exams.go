package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/campus-dev/campus/internal/cli/guard"
)

// NewExamsCmd creates the exams command
func NewExamsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exams",
		Short: "Upcoming exams for your courses",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExams(cmd)
		},
	}
}

func runExams(cmd *cobra.Command) error {
	client, store, err := newPortal()
	if err != nil {
		return err
	}

	if _, err := requireAccess(cmd.Context(), client, store, guard.RouteExams); err != nil {
		return err
	}

	exams, err := client.Exams(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load exams: %w", err)
	}

	if len(exams) == 0 {
		fmt.Println("No exams scheduled.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "EXAM\tCOURSE\tSCHEDULED")
	fmt.Fprintln(w, "────\t──────\t─────────")

	for _, exam := range exams {
		scheduled := "-"
		if exam.ScheduledAt != nil {
			scheduled = *exam.ScheduledAt
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", exam.Title, exam.Course.Title, scheduled)
	}

	w.Flush()

	return nil
}
