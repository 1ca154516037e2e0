package cmd

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lacehq/lace/internal"
	"github.com/spf13/cobra"
)

var (
	limit int
	since string
)

var (
	// Styles for show command
	threadHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212")).
				Padding(0, 1).
				MarginBottom(1)

	threadMetaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			MarginBottom(1)

	userMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39")).
				Bold(true).
				Padding(0, 1)

	agentMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("135")).
				Bold(true).
				Padding(0, 1)

	systemMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("214")).
				Padding(0, 1)

	toolStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true).
			Padding(0, 1)

	itemContentStyle = lipgloss.NewStyle().
				Padding(0, 2).
				MarginBottom(1)

	timestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <thread-id>",
	Short: "Show the projected timeline for a thread",
	Long:  `Project a thread's event history into an ordered timeline and display it.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		threadID := args[0]

		paths, err := internal.GetStoragePaths(dbPath)
		if err != nil {
			return fmt.Errorf("failed to get storage paths: %w", err)
		}

		db, err := internal.OpenDatabase(paths.DatabasePath)
		if err != nil {
			return fmt.Errorf("failed to open thread database: %w", err)
		}
		defer db.Close()

		store := internal.NewStore(db)
		events, err := store.LoadEvents(threadID)
		if err != nil {
			return fmt.Errorf("failed to load events: %w", err)
		}
		if len(events) == 0 {
			return fmt.Errorf("no events found for thread %s", threadID)
		}

		events = internal.NewDeduplicator().Deduplicate(events)
		tt := internal.ProjectThread(threadID, events)

		items := tt.Timeline.Items
		if since != "" {
			cutoff, err := time.Parse(time.RFC3339, since)
			if err != nil {
				return fmt.Errorf("invalid --since value (want RFC3339): %w", err)
			}
			items = filterSince(items, cutoff)
		}
		if limit > 0 && len(items) > limit {
			items = items[len(items)-limit:]
		}

		displayTimeline(threadID, tt.Timeline.Metadata, items)
		return nil
	},
}

func filterSince(items []internal.TimelineItem, cutoff time.Time) []internal.TimelineItem {
	var out []internal.TimelineItem
	for _, item := range items {
		if !item.When().Before(cutoff) {
			out = append(out, item)
		}
	}
	return out
}

func displayTimeline(threadID string, meta internal.TimelineMetadata, items []internal.TimelineItem) {
	fmt.Println(threadHeaderStyle.Render("🧵 Thread " + threadID))
	fmt.Println(threadMetaStyle.Render(fmt.Sprintf(
		"%d event(s) · %d message(s) · last activity %s",
		meta.EventCount, meta.MessageCount, meta.LastActivity.Format("2006-01-02 15:04:05"),
	)))

	for _, item := range items {
		displayItem(item)
	}
}

func displayItem(item internal.TimelineItem) {
	ts := timestampStyle.Render(item.When().Format("15:04:05"))

	switch it := item.(type) {
	case internal.UserMessageItem:
		fmt.Println(userMessageStyle.Render("👤 user") + " " + ts)
		fmt.Println(itemContentStyle.Render(it.Text))
	case internal.AgentMessageItem:
		fmt.Println(agentMessageStyle.Render("🤖 agent") + " " + ts)
		fmt.Println(itemContentStyle.Render(it.Text))
	case internal.SystemMessageItem:
		fmt.Println(systemMessageStyle.Render("⚙ system ["+string(it.Origin)+"]") + " " + ts)
		fmt.Println(itemContentStyle.Render(it.Text))
	case internal.ToolExecutionItem:
		fmt.Println(toolStyle.Render(toolGlyph(it)+" "+it.Call.Name) + " " + ts)
		if it.Result != nil {
			if text := internal.ToolResultText(*it.Result); text != "" {
				fmt.Println(itemContentStyle.Render(text))
			}
		} else {
			fmt.Println(itemContentStyle.Render(timestampStyle.Render("(no result yet)")))
		}
	case internal.EphemeralMessageItem:
		fmt.Println(systemMessageStyle.Render("· "+it.MessageKind) + " " + ts)
		fmt.Println(itemContentStyle.Render(it.Text))
	}
}

// toolGlyph picks a status glyph for a tool execution.
func toolGlyph(it internal.ToolExecutionItem) string {
	if it.Result == nil {
		return "⏳"
	}
	if it.Result.IsError {
		return "❌"
	}
	return "✅"
}


func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().IntVar(&limit, "limit", 0, "Show only the last N items")
	showCmd.Flags().StringVar(&since, "since", "", "Show only items at or after this RFC3339 time")
}
