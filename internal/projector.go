package internal

import (
	"sort"
	"sync"
	"time"
)

// TimelineProjector converts a thread's event stream into an ordered,
// renderable timeline. One projector serves one thread; its item list and
// pending-call table are never shared between instances.
//
// Append and Load are expected to be serialized by a single dispatch loop.
// A mutex guards all state so a snapshot can never observe a half-applied
// mutation even when callers are concurrent.
type TimelineProjector struct {
	mu         sync.Mutex
	items      []TimelineItem
	pending    map[string]pendingCall
	eventCount int
	listeners  *listenerSet
}

// NewTimelineProjector creates an empty projector.
func NewTimelineProjector() *TimelineProjector {
	return &TimelineProjector{
		pending:   make(map[string]pendingCall),
		listeners: newListenerSet(),
	}
}

// Subscribe registers a callback invoked after every state-changing
// operation. The returned function removes the registration.
func (p *TimelineProjector) Subscribe(fn func()) func() {
	return p.listeners.Add(fn)
}

// Append feeds one live event. Items land at the tail in O(1) when their
// timestamp is not older than the current last item; older timestamps are
// spliced into position via binary search. Every event counts toward the
// processed total, including ones that produce no visible item.
func (p *TimelineProjector) Append(ev ThreadEvent) {
	p.mu.Lock()
	if !ev.Type.Known() {
		LogWarn("Skipping unknown event kind %q (event %s)", ev.Type, ev.ID)
	}
	items := classifyEvent(ev, p.pending)
	p.eventCount++
	for _, item := range items {
		p.insertOrdered(item)
	}
	p.mu.Unlock()

	// Pending-table changes affect future snapshots too, so every append
	// notifies.
	p.listeners.Notify()
}

// Load replaces all state with the projection of a full event history.
// This is the resume path: O(n log n), run once per session. Calls whose
// results never arrived within the history are materialized as
// absent-result executions.
func (p *TimelineProjector) Load(events []ThreadEvent) {
	p.mu.Lock()
	p.resetLocked()

	sorted := make([]ThreadEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	for _, ev := range sorted {
		if !ev.Type.Known() {
			LogWarn("Skipping unknown event kind %q (event %s)", ev.Type, ev.ID)
		}
		items := classifyEvent(ev, p.pending)
		p.eventCount++
		p.items = append(p.items, items...)
	}

	// Bulk reconciliation: unresolved calls become visible pending
	// executions and leave the table.
	for _, entry := range sortedPending(p.pending) {
		p.items = append(p.items, pendingExecutionItem(entry))
	}
	p.pending = make(map[string]pendingCall)

	// Items arrived via two code paths; one final stable sort guarantees
	// global chronological order.
	sort.SliceStable(p.items, func(i, j int) bool {
		return p.items[i].When().Before(p.items[j].When())
	})
	p.mu.Unlock()

	if len(events) > 0 {
		p.listeners.Notify()
	}
}

// Reset clears all state. Valid in any state; resetting an empty
// projector is a no-op in effect.
func (p *TimelineProjector) Reset() {
	p.mu.Lock()
	p.resetLocked()
	p.mu.Unlock()

	p.listeners.Notify()
}

func (p *TimelineProjector) resetLocked() {
	p.items = nil
	p.pending = make(map[string]pendingCall)
	p.eventCount = 0
}

// Snapshot returns an immutable copy of the projected timeline. Calls
// still pending are read-projected as absent-result executions in their
// chronological position; the pending table itself is untouched, so a
// result arriving moments later still pairs up.
func (p *TimelineProjector) Snapshot() Timeline {
	p.mu.Lock()
	defer p.mu.Unlock()

	items := make([]TimelineItem, len(p.items))
	copy(items, p.items)

	if len(p.pending) > 0 {
		for _, entry := range sortedPending(p.pending) {
			items = append(items, pendingExecutionItem(entry))
		}
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].When().Before(items[j].When())
		})
	}

	meta := TimelineMetadata{EventCount: p.eventCount}
	for _, item := range items {
		switch item.Kind() {
		case ItemUserMessage, ItemAgentMessage:
			meta.MessageCount++
		}
		if item.When().After(meta.LastActivity) {
			meta.LastActivity = item.When()
		}
	}
	if len(items) == 0 {
		meta.LastActivity = time.Now()
	}

	return Timeline{Items: items, Metadata: meta}
}

// sortedPending returns pending entries ordered by call timestamp (ties by
// call id) so map iteration order never leaks into the timeline.
func sortedPending(pending map[string]pendingCall) []pendingCall {
	entries := make([]pendingCall, 0, len(pending))
	for _, entry := range pending {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		ti, tj := entries[i].event.Timestamp, entries[j].event.Timestamp
		if ti.Equal(tj) {
			return entries[i].call.ID < entries[j].call.ID
		}
		return ti.Before(tj)
	})
	return entries
}

// insertOrdered places an item into the ordered list. Caller holds the
// lock. Appending at the tail is the common case; an older timestamp is
// spliced in after any items sharing its timestamp, preserving arrival
// order among ties.
func (p *TimelineProjector) insertOrdered(item TimelineItem) {
	n := len(p.items)
	if n == 0 || !item.When().Before(p.items[n-1].When()) {
		p.items = append(p.items, item)
		return
	}
	i := sort.Search(n, func(j int) bool {
		return p.items[j].When().After(item.When())
	})
	p.items = append(p.items, nil)
	copy(p.items[i+1:], p.items[i:])
	p.items[i] = item
}
