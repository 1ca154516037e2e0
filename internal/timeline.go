package internal

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// ItemKind identifies the variant of a timeline item.
type ItemKind string

const (
	ItemUserMessage      ItemKind = "user_message"
	ItemAgentMessage     ItemKind = "agent_message"
	ItemSystemMessage    ItemKind = "system_message"
	ItemToolExecution    ItemKind = "tool_execution"
	ItemEphemeralMessage ItemKind = "ephemeral_message"
)

// TimelineItem is one renderable unit of a projected timeline. The variant
// set is closed: every implementation lives in this package, so consumers
// can switch exhaustively on Kind().
type TimelineItem interface {
	Kind() ItemKind
	// When returns the ordering timestamp. Tool executions order by the
	// originating call's timestamp, not the result's.
	When() time.Time

	timelineItem()
}

// UserMessageItem is a message authored by the user.
type UserMessageItem struct {
	ID        string
	Timestamp time.Time
	Text      string
}

func (UserMessageItem) Kind() ItemKind { return ItemUserMessage }
func (i UserMessageItem) When() time.Time { return i.Timestamp }
func (UserMessageItem) timelineItem() {}

// AgentMessageItem is a message authored by the agent. Text may embed
// structured thinking segments; they are passed through verbatim.
type AgentMessageItem struct {
	ID        string
	Timestamp time.Time
	Text      string
}

func (AgentMessageItem) Kind() ItemKind { return ItemAgentMessage }
func (i AgentMessageItem) When() time.Time { return i.Timestamp }
func (AgentMessageItem) timelineItem() {}

// SystemMessageItem is a system-ish message. Origin records which event
// kind produced it so the renderer can distinguish the three system kinds
// (and synthesized orphan notices, which carry EventToolResult).
type SystemMessageItem struct {
	ID        string
	Timestamp time.Time
	Text      string
	Origin    EventKind
}

func (SystemMessageItem) Kind() ItemKind { return ItemSystemMessage }
func (i SystemMessageItem) When() time.Time { return i.Timestamp }
func (SystemMessageItem) timelineItem() {}

// ToolExecutionItem is a tool call paired with its result. Result is nil
// while the call is still pending.
type ToolExecutionItem struct {
	CallID    string
	Call      ToolCallData
	Result    *ToolResultData
	Timestamp time.Time
}

func (ToolExecutionItem) Kind() ItemKind { return ItemToolExecution }
func (i ToolExecutionItem) When() time.Time { return i.Timestamp }
func (ToolExecutionItem) timelineItem() {}

// Pending reports whether the execution's result has not arrived yet.
func (i ToolExecutionItem) Pending() bool { return i.Result == nil }

// EphemeralMessageItem is a transient, non-persisted message merged in by
// a consumer. The projector never creates these itself.
type EphemeralMessageItem struct {
	MessageKind string
	Text        string
	Timestamp   time.Time
}

func (EphemeralMessageItem) Kind() ItemKind { return ItemEphemeralMessage }
func (i EphemeralMessageItem) When() time.Time { return i.Timestamp }
func (EphemeralMessageItem) timelineItem() {}

// TimelineMetadata summarizes a timeline snapshot.
type TimelineMetadata struct {
	// EventCount is the number of events processed, including events that
	// produced no visible item.
	EventCount int `json:"event_count" yaml:"event_count"`
	// MessageCount counts user and agent message items.
	MessageCount int `json:"message_count" yaml:"message_count"`
	// LastActivity is the newest item timestamp, or the snapshot time for
	// an empty timeline.
	LastActivity time.Time `json:"last_activity" yaml:"last_activity"`
}

// Timeline is an immutable point-in-time snapshot of a projected thread.
// The item slice is owned by the holder; mutating it never affects the
// projector it came from.
type Timeline struct {
	Items    []TimelineItem
	Metadata TimelineMetadata
}

// MergeEphemeral returns a new timeline with the given ephemeral messages
// merged into chronological position. The receiver is not modified.
func (t Timeline) MergeEphemeral(msgs []EphemeralMessageItem) Timeline {
	merged := make([]TimelineItem, 0, len(t.Items)+len(msgs))
	merged = append(merged, t.Items...)
	for _, m := range msgs {
		merged = append(merged, m)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].When().Before(merged[j].When())
	})

	meta := t.Metadata
	for _, m := range msgs {
		if m.Timestamp.After(meta.LastActivity) {
			meta.LastActivity = m.Timestamp
		}
	}
	return Timeline{Items: merged, Metadata: meta}
}

// ItemRecord is the serialized form of a timeline item, used by the cache
// and the exporters. Kind discriminates which of the optional fields are
// meaningful.
type ItemRecord struct {
	Kind        ItemKind        `json:"kind" yaml:"kind"`
	ID          string          `json:"id,omitempty" yaml:"id,omitempty"`
	Timestamp   time.Time       `json:"timestamp" yaml:"timestamp"`
	Text        string          `json:"text,omitempty" yaml:"text,omitempty"`
	Origin      EventKind       `json:"origin,omitempty" yaml:"origin,omitempty"`
	CallID      string          `json:"call_id,omitempty" yaml:"call_id,omitempty"`
	Call        *ToolCallData   `json:"call,omitempty" yaml:"call,omitempty"`
	Result      *ToolResultData `json:"result,omitempty" yaml:"result,omitempty"`
	MessageKind string          `json:"message_kind,omitempty" yaml:"message_kind,omitempty"`
}

// RecordFromItem converts a timeline item to its serialized form.
func RecordFromItem(item TimelineItem) ItemRecord {
	switch it := item.(type) {
	case UserMessageItem:
		return ItemRecord{Kind: ItemUserMessage, ID: it.ID, Timestamp: it.Timestamp, Text: it.Text}
	case AgentMessageItem:
		return ItemRecord{Kind: ItemAgentMessage, ID: it.ID, Timestamp: it.Timestamp, Text: it.Text}
	case SystemMessageItem:
		return ItemRecord{Kind: ItemSystemMessage, ID: it.ID, Timestamp: it.Timestamp, Text: it.Text, Origin: it.Origin}
	case ToolExecutionItem:
		call := it.Call
		return ItemRecord{Kind: ItemToolExecution, Timestamp: it.Timestamp, CallID: it.CallID, Call: &call, Result: it.Result}
	case EphemeralMessageItem:
		return ItemRecord{Kind: ItemEphemeralMessage, Timestamp: it.Timestamp, Text: it.Text, MessageKind: it.MessageKind}
	default:
		// The variant set is closed; reaching this is a bug in this package.
		panic(fmt.Sprintf("unknown timeline item type %T", item))
	}
}

// Item converts a serialized record back to a timeline item.
func (r ItemRecord) Item() (TimelineItem, error) {
	switch r.Kind {
	case ItemUserMessage:
		return UserMessageItem{ID: r.ID, Timestamp: r.Timestamp, Text: r.Text}, nil
	case ItemAgentMessage:
		return AgentMessageItem{ID: r.ID, Timestamp: r.Timestamp, Text: r.Text}, nil
	case ItemSystemMessage:
		return SystemMessageItem{ID: r.ID, Timestamp: r.Timestamp, Text: r.Text, Origin: r.Origin}, nil
	case ItemToolExecution:
		var call ToolCallData
		if r.Call != nil {
			call = *r.Call
		}
		return ToolExecutionItem{CallID: r.CallID, Call: call, Result: r.Result, Timestamp: r.Timestamp}, nil
	case ItemEphemeralMessage:
		return EphemeralMessageItem{MessageKind: r.MessageKind, Text: r.Text, Timestamp: r.Timestamp}, nil
	default:
		return nil, fmt.Errorf("unknown timeline item kind: %q", r.Kind)
	}
}

// timelineDocument is the serialized form of a Timeline.
type timelineDocument struct {
	Items    []ItemRecord     `json:"items"`
	Metadata TimelineMetadata `json:"metadata"`
}

// MarshalJSON serializes the timeline with kind-discriminated item records.
func (t Timeline) MarshalJSON() ([]byte, error) {
	doc := timelineDocument{
		Items:    make([]ItemRecord, 0, len(t.Items)),
		Metadata: t.Metadata,
	}
	for _, item := range t.Items {
		doc.Items = append(doc.Items, RecordFromItem(item))
	}
	return json.Marshal(doc)
}

// UnmarshalJSON restores a timeline serialized by MarshalJSON.
func (t *Timeline) UnmarshalJSON(data []byte) error {
	var doc timelineDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	items := make([]TimelineItem, 0, len(doc.Items))
	for _, rec := range doc.Items {
		item, err := rec.Item()
		if err != nil {
			return err
		}
		items = append(items, item)
	}
	t.Items = items
	t.Metadata = doc.Metadata
	return nil
}
