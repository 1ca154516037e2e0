package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/lacehq/lace/internal"
	"github.com/spf13/cobra"
)

var (
	inspectFormat string
	inspectLimit  int
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <thread-id>",
	Short: "Dump raw events for a thread",
	Long: `Dump the raw, unprojected event log of a thread.

Useful for debugging projection issues: shows event ids, kinds,
timestamps, and payloads exactly as persisted, before any pairing or
ordering is applied.

Examples:
  lace inspect thread-123                    # Table output
  lace inspect thread-123 --format json      # Raw JSON events
  lace inspect thread-123 --limit 20         # Last 20 events only`,
	Args: cobra.ExactArgs(1),
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

		if inspectLimit > 0 && len(events) > inspectLimit {
			events = events[len(events)-inspectLimit:]
		}

		switch inspectFormat {
		case "json":
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(events)
		case "table":
			displayEventTable(events)
			return nil
		default:
			return fmt.Errorf("unsupported format: %s (supported: table, json)", inspectFormat)
		}
	},
}

func displayEventTable(events []internal.ThreadEvent) {
	fmt.Println(headerStyle.Render(fmt.Sprintf("🔍 %d raw event(s)", len(events))))
	fmt.Println()

	w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, titleStyle.Render("ID")+"\t"+titleStyle.Render("Kind")+"\t"+titleStyle.Render("Timestamp")+"\t"+titleStyle.Render("Payload")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 100))

	for _, ev := range events {
		id := ev.ID
		if len(id) > 8 {
			id = id[:8]
		}
		payload := string(ev.Data)
		payload = strings.ReplaceAll(payload, "\n", " ")
		if len(payload) > 60 {
			payload = payload[:57] + "..."
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n",
			idStyle.Render(id),
			string(ev.Type),
			dateStyle.Render(ev.Timestamp.Format("2006-01-02 15:04:05.000")),
			payload,
		)
	}

	_ = w.Flush()
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVar(&inspectFormat, "format", "table", "Output format (table, json)")
	inspectCmd.Flags().IntVar(&inspectLimit, "limit", 0, "Show only the last N events")
}
