package internal

import (
	"time"
)

// CreateTestEvent creates a message-ish test event.
func CreateTestEvent(id, threadID string, kind EventKind, text string, ts time.Time) ThreadEvent {
	return ThreadEvent{
		ID:        id,
		ThreadID:  threadID,
		Type:      kind,
		Timestamp: ts,
		Data:      MessageEventData(text),
	}
}

// CreateTestToolCall creates a tool_call test event.
func CreateTestToolCall(id, threadID, callID, tool string, ts time.Time) ThreadEvent {
	return ThreadEvent{
		ID:        id,
		ThreadID:  threadID,
		Type:      EventToolCall,
		Timestamp: ts,
		Data: ToolCallEventData(ToolCallData{
			ID:    callID,
			Name:  tool,
			Input: map[string]any{"command": "echo hi"},
		}),
	}
}

// CreateTestToolResult creates a tool_result test event with a single
// text content block.
func CreateTestToolResult(id, threadID, callID, text string, isError bool, ts time.Time) ThreadEvent {
	return ThreadEvent{
		ID:        id,
		ThreadID:  threadID,
		Type:      EventToolResult,
		Timestamp: ts,
		Data: ToolResultEventData(ToolResultData{
			ID:      callID,
			IsError: isError,
			Content: []ContentBlock{{Type: "text", Text: text}},
		}),
	}
}
