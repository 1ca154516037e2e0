package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/lacehq/lace/internal"
)

// MarkdownExporter exports timelines in Markdown format
type MarkdownExporter struct{}

// Export exports a thread timeline to Markdown format
func (e *MarkdownExporter) Export(timeline *internal.ThreadTimeline, w io.Writer) error {
	// Header
	_, _ = fmt.Fprintf(w, "# Thread %s\n\n", timeline.ThreadID)

	meta := timeline.Timeline.Metadata
	_, _ = fmt.Fprintf(w, "**Events:** %d  \n", meta.EventCount)
	_, _ = fmt.Fprintf(w, "**Messages:** %d  \n", meta.MessageCount)
	_, _ = fmt.Fprintf(w, "**Last activity:** %s\n\n", meta.LastActivity.Format("2006-01-02 15:04:05"))

	_, _ = fmt.Fprintf(w, "---\n\n")
	_, _ = fmt.Fprintf(w, "## Timeline\n\n")

	items := timeline.Timeline.Items
	for i, item := range items {
		e.writeItem(w, item)

		// Horizontal rule after each item (except the last one)
		if i < len(items)-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}

	return nil
}

func (e *MarkdownExporter) writeItem(w io.Writer, item internal.TimelineItem) {
	timestamp := fmt.Sprintf(" (%s)", item.When().Format("2006-01-02 15:04:05"))

	switch it := item.(type) {
	case internal.UserMessageItem:
		_, _ = fmt.Fprintf(w, "**user:**%s\n\n%s\n\n", timestamp, escapeMarkdown(it.Text))
	case internal.AgentMessageItem:
		_, _ = fmt.Fprintf(w, "**agent:**%s\n\n%s\n\n", timestamp, escapeMarkdown(it.Text))
	case internal.SystemMessageItem:
		_, _ = fmt.Fprintf(w, "**system [%s]:**%s\n\n%s\n\n", it.Origin, timestamp, escapeMarkdown(it.Text))
	case internal.ToolExecutionItem:
		status := "pending"
		if it.Result != nil {
			if it.Result.IsError {
				status = "error"
			} else {
				status = "ok"
			}
		}
		_, _ = fmt.Fprintf(w, "**tool %s [%s]:**%s\n\n", it.Call.Name, status, timestamp)
		if it.Result != nil {
			if text := internal.ToolResultText(*it.Result); text != "" {
				_, _ = fmt.Fprintf(w, "```\n%s\n```\n\n", text)
			}
		}
	case internal.EphemeralMessageItem:
		_, _ = fmt.Fprintf(w, "**%s:**%s\n\n%s\n\n", it.MessageKind, timestamp, escapeMarkdown(it.Text))
	}
}

// escapeMarkdown escapes markdown special characters
func escapeMarkdown(text string) string {
	// Basic escaping - preserve code blocks
	lines := strings.Split(text, "\n")
	var result []string
	inCodeBlock := false

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			inCodeBlock = !inCodeBlock
			result = append(result, line)
		} else if inCodeBlock {
			result = append(result, line)
		} else {
			// Escape markdown syntax outside code blocks
			line = strings.ReplaceAll(line, "**", "\\*\\*")
			line = strings.ReplaceAll(line, "__", "\\_\\_")
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
