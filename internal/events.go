package internal

import (
	"encoding/json"
	"time"
)

// EventKind identifies the type of a thread event.
type EventKind string

const (
	EventUserMessage        EventKind = "user_message"
	EventAgentMessage       EventKind = "agent_message"
	EventLocalSystemMessage EventKind = "local_system_message"
	EventSystemPrompt       EventKind = "system_prompt"
	EventUserSystemPrompt   EventKind = "user_system_prompt"
	EventToolCall           EventKind = "tool_call"
	EventToolResult         EventKind = "tool_result"
)

// Known reports whether the kind is one the projector understands.
// Unknown kinds are skipped with a warning rather than rejected, so
// newer event producers don't break older readers.
func (k EventKind) Known() bool {
	switch k {
	case EventUserMessage, EventAgentMessage, EventLocalSystemMessage,
		EventSystemPrompt, EventUserSystemPrompt, EventToolCall, EventToolResult:
		return true
	}
	return false
}

// IsSystemish reports whether the kind maps to a system message item.
func (k EventKind) IsSystemish() bool {
	switch k {
	case EventLocalSystemMessage, EventSystemPrompt, EventUserSystemPrompt:
		return true
	}
	return false
}

// ThreadEvent is one immutable record from a thread's append-only log.
// The projector treats events as read-only; they are created and owned
// by the store (or a live event source).
type ThreadEvent struct {
	ID        string          `json:"id"`
	ThreadID  string          `json:"threadId"`
	Type      EventKind       `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// ToolCallData is the payload of a tool_call event.
type ToolCallData struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Input map[string]any `json:"input,omitempty"`
}

// ContentBlock is one block of tool result output. Only text blocks carry
// a textual representation; other block types are opaque to the timeline.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// ToolResultData is the payload of a tool_result event. ID must match the
// originating tool call's ID. Metadata carries auxiliary correlation data
// for collaborators (e.g. a delegate child thread id).
type ToolResultData struct {
	ID       string            `json:"id"`
	IsError  bool              `json:"isError,omitempty"`
	Content  []ContentBlock    `json:"content,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// messageData is the payload shape of message-ish events.
type messageData struct {
	Text string `json:"text"`
}

// DecodeMessageText extracts the text of a message-ish event payload.
// Accepts either a bare JSON string or an object with a "text" field.
// Malformed payloads decode to the empty string rather than failing.
func DecodeMessageText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var msg messageData
	if err := json.Unmarshal(raw, &msg); err != nil {
		LogDebug("Failed to decode message payload: %v", err)
		return ""
	}
	return msg.Text
}

// DecodeToolCall decodes a tool_call payload. Missing or malformed fields
// decode to zero values; the error is informational only.
func DecodeToolCall(raw json.RawMessage) (ToolCallData, error) {
	var call ToolCallData
	if len(raw) == 0 {
		return call, nil
	}
	if err := json.Unmarshal(raw, &call); err != nil {
		return ToolCallData{}, &ParseError{Source: "tool_call", Err: err}
	}
	return call, nil
}

// DecodeToolResult decodes a tool_result payload. Missing or malformed
// fields decode to zero values; the error is informational only.
func DecodeToolResult(raw json.RawMessage) (ToolResultData, error) {
	var result ToolResultData
	if len(raw) == 0 {
		return result, nil
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return ToolResultData{}, &ParseError{Source: "tool_result", Err: err}
	}
	return result, nil
}

// MessageEventData encodes a message payload for storage.
func MessageEventData(text string) json.RawMessage {
	data, _ := json.Marshal(messageData{Text: text})
	return data
}

// ToolCallEventData encodes a tool call payload for storage.
func ToolCallEventData(call ToolCallData) json.RawMessage {
	data, _ := json.Marshal(call)
	return data
}

// ToolResultEventData encodes a tool result payload for storage.
func ToolResultEventData(result ToolResultData) json.RawMessage {
	data, _ := json.Marshal(result)
	return data
}
