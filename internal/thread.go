package internal

import "time"

// ThreadSummary describes one conversation thread in the store.
type ThreadSummary struct {
	ThreadID      string    `json:"thread_id" yaml:"thread_id"`
	EventCount    int       `json:"event_count" yaml:"event_count"`
	MessageCount  int       `json:"message_count" yaml:"message_count"`
	FirstActivity time.Time `json:"first_activity" yaml:"first_activity"`
	LastActivity  time.Time `json:"last_activity" yaml:"last_activity"`
}

// ThreadTimeline pairs a thread id with its projected timeline; it is the
// unit the exporters and cache operate on.
type ThreadTimeline struct {
	ThreadID string   `json:"thread_id"`
	Timeline Timeline `json:"timeline"`
}

// ProjectThread bulk-loads a thread's history into a fresh projector and
// returns the resulting snapshot.
func ProjectThread(threadID string, events []ThreadEvent) *ThreadTimeline {
	projector := NewTimelineProjector()
	projector.Load(events)
	return &ThreadTimeline{
		ThreadID: threadID,
		Timeline: projector.Snapshot(),
	}
}
