package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lacehq/lace/internal"
	"github.com/spf13/cobra"
)

var (
	listClearCache bool
)

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available threads",
	Long:  `List all conversation threads recorded in the Lace event database.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := internal.GetStoragePaths(dbPath)
		if err != nil {
			return fmt.Errorf("failed to get storage paths: %w", err)
		}

		cacheManager := internal.NewCacheManager(paths.CacheDir)
		if listClearCache {
			if err := cacheManager.ClearCache(); err != nil {
				internal.LogWarn("Failed to clear cache: %v", err)
			} else {
				internal.LogInfo("Cache cleared")
			}
		}

		// Try to list from the cache index first
		valid, err := cacheManager.IsCacheValid(paths.DatabasePath)
		if err == nil && valid {
			index, err := cacheManager.LoadIndex()
			if err == nil && index != nil {
				internal.LogInfo("Loaded %d thread(s) from cache", len(index.Threads))
				displayThreads(index.Threads)
				return nil
			}
			internal.LogWarn("Failed to load cache: %v, reading database...", err)
		}

		db, err := internal.OpenDatabase(paths.DatabasePath)
		if err != nil {
			return fmt.Errorf("failed to open thread database: %w", err)
		}
		defer db.Close()

		store := internal.NewStore(db)
		summaries, err := store.ListThreads()
		if err != nil {
			return fmt.Errorf("failed to list threads: %w", err)
		}

		displayThreads(summaries)
		return nil
	},
}

func displayThreads(summaries []internal.ThreadSummary) {
	if len(summaries) == 0 {
		fmt.Println(headerStyle.Render("📋 No threads found"))
		return
	}

	header := headerStyle.Render(fmt.Sprintf("📋 Found %d thread(s)", len(summaries)))
	fmt.Println(header)
	fmt.Println()

	// Use tabwriter for aligned columns
	w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 3, ' ', tabwriter.AlignRight)

	_, _ = fmt.Fprintln(w, titleStyle.Render("ID")+"\t"+titleStyle.Render("Events")+"\t"+titleStyle.Render("Messages")+"\t"+titleStyle.Render("Last Activity")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 80))

	for _, sum := range summaries {
		// Show short ID (first 8 chars) for readability
		shortID := sum.ThreadID
		if len(shortID) > 8 {
			shortID = shortID[:8]
		}
		id := idStyle.Render(shortID)

		events := countStyle.Render(strconv.Itoa(sum.EventCount))
		messages := countStyle.Render(strconv.Itoa(sum.MessageCount))
		last := dateStyle.Render(formatRelativeDate(sum.LastActivity))

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", id, events, messages, last)
	}

	_ = w.Flush()
	fmt.Println()
	fmt.Println(idStyle.Render("💡 Tip: Use the full ID (e.g., ") +
		lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Render(summaries[0].ThreadID) +
		idStyle.Render(") with `lace show <id>`"))
}

// formatRelativeDate renders recent timestamps compactly.
func formatRelativeDate(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	diff := time.Since(t)
	switch {
	case diff < 24*time.Hour:
		return t.Format("Today 15:04")
	case diff < 7*24*time.Hour:
		return t.Format("Mon 15:04")
	case diff < 365*24*time.Hour:
		return t.Format("Jan 02 15:04")
	default:
		return t.Format("2006-01-02")
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listClearCache, "clear-cache", false, "Clear the cache before running")
}
