package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/campus-dev/campus/internal/cli/commands"
)

var version = "dev" // Will be set during build

var rootCmd = &cobra.Command{
	Use:   "campus",
	Short: "Campus - course platform portal",
	Long: `Campus CLI - The student and admin portal for a Campus server.

Browse the catalog, enroll in courses, track your journey and manage
course content, straight from the terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Add version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("campus version %s\n", version)
		},
	})

	// Add all subcommands
	rootCmd.AddCommand(commands.NewInitCmd())
	rootCmd.AddCommand(commands.NewLoginCmd())
	rootCmd.AddCommand(commands.NewRegisterCmd())
	rootCmd.AddCommand(commands.NewLogoutCmd())
	rootCmd.AddCommand(commands.NewProfileCmd())
	rootCmd.AddCommand(commands.NewDashboardCmd())
	rootCmd.AddCommand(commands.NewCatalogCmd())
	rootCmd.AddCommand(commands.NewCourseCmd())
	rootCmd.AddCommand(commands.NewMyCoursesCmd())
	rootCmd.AddCommand(commands.NewEnrollCmd())
	rootCmd.AddCommand(commands.NewCompleteCmd())
	rootCmd.AddCommand(commands.NewJourneyCmd())
	rootCmd.AddCommand(commands.NewExamsCmd())
	rootCmd.AddCommand(commands.NewNoticesCmd())
	rootCmd.AddCommand(commands.NewAdminCmd())
}

// Execute runs the root command
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
