package internal

import (
	"crypto/sha256"
	"encoding/hex"
)

// Deduplicator removes duplicate events from a batch.
type Deduplicator struct{}

// NewDeduplicator creates a new Deduplicator.
func NewDeduplicator() *Deduplicator {
	return &Deduplicator{}
}

// Deduplicate removes events whose identity or content was already seen,
// keeping the first occurrence. Resume-then-tail sessions can receive the
// same event twice; feeding a duplicate to the projector would double the
// timeline entry.
func (d *Deduplicator) Deduplicate(events []ThreadEvent) []ThreadEvent {
	seenID := make(map[string]bool)
	seenContent := make(map[string]bool)
	var unique []ThreadEvent

	for _, ev := range events {
		if ev.ID != "" {
			if seenID[ev.ID] {
				continue
			}
			seenID[ev.ID] = true
		}
		hash := d.hashEventContent(ev)
		if seenContent[hash] {
			continue
		}
		seenContent[hash] = true
		unique = append(unique, ev)
	}

	return unique
}

// hashEventContent creates a content-based hash for an event.
func (d *Deduplicator) hashEventContent(ev ThreadEvent) string {
	h := sha256.New()

	h.Write([]byte(ev.ThreadID))
	h.Write([]byte(ev.Type))
	h.Write([]byte(ev.Timestamp.UTC().Format("2006-01-02T15:04:05.000Z07:00")))
	h.Write(ev.Data)

	return hex.EncodeToString(h.Sum(nil))
}
