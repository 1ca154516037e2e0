package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/lacehq/lace/internal"
	"github.com/spf13/cobra"
)

var (
	healthcheckVerbose bool
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check if lace can locate and access thread data",
	Long: `Check the health of lace by verifying:
  • Storage path detection
  • Thread database presence
  • Event schema availability
  • Thread count

This command is useful for debugging storage issues, especially in CI/CD environments.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(sectionStyle.Render("🔍 Lace Health Check"))
		fmt.Println()

		// Step 1: Detect storage paths
		fmt.Println(infoStyle.Render("Step 1: Detecting storage paths..."))
		paths, err := internal.GetStoragePaths(dbPath)
		if err != nil {
			fmt.Println(errStyle.Render("❌ Failed to detect storage paths:"), err)
			os.Exit(1)
		}
		fmt.Println(successStyle.Render("✅ Storage paths detected"))
		if healthcheckVerbose {
			fmt.Printf("   Data dir: %s\n", paths.DataDir)
			fmt.Printf("   Database: %s\n", paths.DatabasePath)
			fmt.Printf("   Cache:    %s\n", paths.CacheDir)
		}
		fmt.Println()

		// Step 2: Check the database file
		fmt.Println(infoStyle.Render("Step 2: Checking thread database..."))
		if !paths.DatabaseExists() {
			fmt.Println(warningStyle.Render("⚠️  Thread database not found"))
			fmt.Printf("   Expected: %s\n", paths.DatabasePath)
			fmt.Println("   The database is created when the Lace agent records its first event.")
			os.Exit(1)
		}
		fmt.Println(successStyle.Render("✅ Thread database found"))
		fmt.Println()

		// Step 3: Open and verify schema
		fmt.Println(infoStyle.Render("Step 3: Opening database..."))
		db, err := internal.OpenDatabase(paths.DatabasePath)
		if err != nil {
			fmt.Println(errStyle.Render("❌ Failed to open database:"), err)
			os.Exit(1)
		}
		defer db.Close()

		hasSchema, err := internal.HasEventSchema(db)
		if err != nil {
			fmt.Println(errStyle.Render("❌ Failed to read schema:"), err)
			os.Exit(1)
		}
		if !hasSchema {
			fmt.Println(warningStyle.Render("⚠️  Database exists but has no events table"))
			os.Exit(1)
		}
		fmt.Println(successStyle.Render("✅ Event schema present"))
		fmt.Println()

		// Step 4: Count threads
		fmt.Println(infoStyle.Render("Step 4: Loading thread data..."))
		store := internal.NewStore(db)
		summaries, err := store.ListThreads()
		if err != nil {
			fmt.Println(errStyle.Render("❌ Failed to list threads:"), err)
			os.Exit(1)
		}

		if len(summaries) > 0 {
			fmt.Println(successStyle.Render(fmt.Sprintf("✅ Found %d thread(s)", len(summaries))))
			if healthcheckVerbose {
				for i, sum := range summaries {
					if i >= 5 {
						fmt.Printf("   ... and %d more\n", len(summaries)-5)
						break
					}
					fmt.Printf("   [%d] %s (%d event(s))\n", i+1, sum.ThreadID, sum.EventCount)
				}
			}
		} else {
			fmt.Println(warningStyle.Render("⚠️  No threads found"))
			fmt.Println("   This could mean:")
			fmt.Println("   • No conversations have been recorded yet")
			fmt.Println("   • The agent is writing to a different database")
		}
		fmt.Println()

		fmt.Println(sectionStyle.Render("📊 Summary"))
		fmt.Println()
		fmt.Printf("Database: %s\n", paths.DatabasePath)
		fmt.Printf("Threads:  %d\n", len(summaries))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
	healthcheckCmd.Flags().BoolVar(&healthcheckVerbose, "detail", false, "Show detailed diagnostic output")
}
