package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lacehq/lace/internal"
	"github.com/spf13/cobra"
)

var (
	tailInterval time.Duration
	tailReplay   bool
)

// tailCmd represents the tail command
var tailCmd = &cobra.Command{
	Use:   "tail <thread-id>",
	Short: "Follow a live thread",
	Long: `Follow a thread as new events arrive.

The thread's persisted history is bulk-loaded once, then the database is
polled for newer events which are appended to the projection
incrementally. New timeline items are printed as they become visible.`,
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

		dedup := internal.NewDeduplicator()
		events = dedup.Deduplicate(events)

		projector := internal.NewTimelineProjector()
		changed := make(chan struct{}, 1)
		unsubscribe := projector.Subscribe(func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		})
		defer unsubscribe()

		projector.Load(events)

		var printed int
		var lastSeen time.Time
		for _, ev := range events {
			if ev.Timestamp.After(lastSeen) {
				lastSeen = ev.Timestamp
			}
		}

		if tailReplay {
			printed = drainNewItems(projector, printed)
		} else {
			printed = len(projector.Snapshot().Items)
			fmt.Println(threadMetaStyle.Render(fmt.Sprintf(
				"Watching thread %s (%d existing item(s), poll every %s)",
				threadID, printed, tailInterval,
			)))
		}

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

		ticker := time.NewTicker(tailInterval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				fmt.Println()
				return nil
			case <-ticker.C:
				fresh, err := store.LoadEventsSince(threadID, lastSeen)
				if err != nil {
					internal.LogWarn("Poll failed: %v", err)
					continue
				}
				for _, ev := range fresh {
					projector.Append(ev)
					if ev.Timestamp.After(lastSeen) {
						lastSeen = ev.Timestamp
					}
				}
			case <-changed:
				printed = drainNewItems(projector, printed)
			}
		}
	},
}

// drainNewItems prints items beyond the already-printed count and returns
// the new count. Items may settle into earlier positions when events
// arrive out of order; the tail view only ever prints the suffix.
func drainNewItems(projector *internal.TimelineProjector, printed int) int {
	snapshot := projector.Snapshot()
	items := snapshot.Items
	for i := printed; i < len(items); i++ {
		displayItem(items[i])
	}
	if len(items) > printed {
		return len(items)
	}
	return printed
}

func init() {
	rootCmd.AddCommand(tailCmd)
	tailCmd.Flags().DurationVar(&tailInterval, "interval", 2*time.Second, "Poll interval")
	tailCmd.Flags().BoolVar(&tailReplay, "replay", false, "Print the existing history before following")
}
