package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/lacehq/lace/internal"
)

// JSONLExporter exports timelines in JSONL format (one item per line)
type JSONLExporter struct{}

// Export exports a thread timeline to JSONL format
func (e *JSONLExporter) Export(timeline *internal.ThreadTimeline, w io.Writer) error {
	enc := json.NewEncoder(w)

	for _, item := range timeline.Timeline.Items {
		record := internal.RecordFromItem(item)

		// Encode to single line
		if err := enc.Encode(record); err != nil {
			return fmt.Errorf("failed to encode item: %w", err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
