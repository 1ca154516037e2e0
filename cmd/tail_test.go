package cmd

import (
	"testing"
	"time"

	"github.com/lacehq/lace/internal"
)

func TestDrainNewItems(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	projector := internal.NewTimelineProjector()
	projector.Append(internal.CreateTestEvent("e1", "thread1", internal.EventUserMessage, "one", base))
	projector.Append(internal.CreateTestEvent("e2", "thread1", internal.EventAgentMessage, "two", base.Add(time.Second)))

	printed := drainNewItems(projector, 0)
	if printed != 2 {
		t.Errorf("drainNewItems() = %d, want 2", printed)
	}

	// Nothing new: the count must not move.
	if printed = drainNewItems(projector, printed); printed != 2 {
		t.Errorf("drainNewItems() = %d with no new items, want 2", printed)
	}

	projector.Append(internal.CreateTestEvent("e3", "thread1", internal.EventUserMessage, "three", base.Add(2*time.Second)))
	if printed = drainNewItems(projector, printed); printed != 3 {
		t.Errorf("drainNewItems() = %d after one more item, want 3", printed)
	}
}

func TestDrainNewItems_CountNeverShrinks(t *testing.T) {
	projector := internal.NewTimelineProjector()

	if printed := drainNewItems(projector, 5); printed != 5 {
		t.Errorf("drainNewItems() = %d on empty projector, want 5 unchanged", printed)
	}
}

func TestTailCommandRegistered(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"tail"})
	if err != nil {
		t.Fatalf("Find(tail) error: %v", err)
	}
	if cmd.Flags().Lookup("interval") == nil {
		t.Error("tail command missing --interval flag")
	}
	if cmd.Flags().Lookup("replay") == nil {
		t.Error("tail command missing --replay flag")
	}
}
