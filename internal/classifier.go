package internal

import "fmt"

// orphanTextLimit bounds how much result text is echoed into an orphaned
// tool result notice.
const orphanTextLimit = 200

// pendingCall is a tool call seen but not yet matched by a result.
type pendingCall struct {
	event ThreadEvent
	call  ToolCallData
}

// classifyEvent maps one thread event to zero or more timeline items,
// registering and resolving pending tool calls in the given table as a
// side effect. The table has a single writer: the projector that owns it.
//
// Data-quality problems (unknown kinds, orphaned results, malformed
// payloads) never surface as errors; they degrade to zero items or to a
// visible system message.
func classifyEvent(ev ThreadEvent, pending map[string]pendingCall) []TimelineItem {
	switch ev.Type {
	case EventUserMessage:
		return []TimelineItem{UserMessageItem{
			ID:        ev.ID,
			Timestamp: ev.Timestamp,
			Text:      DecodeMessageText(ev.Data),
		}}

	case EventAgentMessage:
		// Thinking markers embedded in agent text pass through unmodified.
		return []TimelineItem{AgentMessageItem{
			ID:        ev.ID,
			Timestamp: ev.Timestamp,
			Text:      DecodeMessageText(ev.Data),
		}}

	case EventLocalSystemMessage, EventSystemPrompt, EventUserSystemPrompt:
		return []TimelineItem{SystemMessageItem{
			ID:        ev.ID,
			Timestamp: ev.Timestamp,
			Text:      DecodeMessageText(ev.Data),
			Origin:    ev.Type,
		}}

	case EventToolCall:
		call, err := DecodeToolCall(ev.Data)
		if err != nil {
			LogDebug("Malformed tool call payload in event %s: %v", ev.ID, err)
		}
		// A call alone is not a completed execution; it waits for its
		// result, or for read-time/bulk reconciliation.
		pending[call.ID] = pendingCall{event: ev, call: call}
		return nil

	case EventToolResult:
		result, err := DecodeToolResult(ev.Data)
		if err != nil {
			LogDebug("Malformed tool result payload in event %s: %v", ev.ID, err)
		}
		entry, ok := pending[result.ID]
		if !ok {
			// Orphaned result: the call was never seen (e.g. truncated
			// history). Expected and recoverable; surface it inline.
			return []TimelineItem{orphanedResultItem(ev, result)}
		}
		delete(pending, result.ID)
		res := result
		return []TimelineItem{ToolExecutionItem{
			CallID:    entry.call.ID,
			Call:      entry.call,
			Result:    &res,
			Timestamp: entry.event.Timestamp,
		}}

	default:
		// Forward compatibility: unknown kinds produce nothing. The caller
		// logs the skip.
		return nil
	}
}

// orphanedResultItem synthesizes a visible notice for a tool result with
// no matching pending call.
func orphanedResultItem(ev ThreadEvent, result ToolResultData) SystemMessageItem {
	text := truncateText(ToolResultText(result), orphanTextLimit)
	notice := fmt.Sprintf("Orphaned tool result (no matching call, id=%s)", result.ID)
	if text != "" {
		notice = fmt.Sprintf("%s: %s", notice, text)
	}
	return SystemMessageItem{
		ID:        ev.ID,
		Timestamp: ev.Timestamp,
		Text:      notice,
		Origin:    EventToolResult,
	}
}

// pendingExecutionItem materializes a pending call as an absent-result
// execution, stamped with the call's timestamp.
func pendingExecutionItem(entry pendingCall) ToolExecutionItem {
	return ToolExecutionItem{
		CallID:    entry.call.ID,
		Call:      entry.call,
		Result:    nil,
		Timestamp: entry.event.Timestamp,
	}
}
