package export

import (
	"io"

	"github.com/lacehq/lace/internal"
	"gopkg.in/yaml.v3"
)

// YAMLExporter exports timelines in YAML format
type YAMLExporter struct{}

// yamlDocument mirrors ThreadTimeline with serializable item records,
// since yaml cannot encode the TimelineItem interface directly.
type yamlDocument struct {
	ThreadID string                    `yaml:"thread_id"`
	Items    []internal.ItemRecord     `yaml:"items"`
	Metadata internal.TimelineMetadata `yaml:"metadata"`
}

// Export exports a thread timeline to YAML format
func (e *YAMLExporter) Export(timeline *internal.ThreadTimeline, w io.Writer) error {
	doc := yamlDocument{
		ThreadID: timeline.ThreadID,
		Items:    make([]internal.ItemRecord, 0, len(timeline.Timeline.Items)),
		Metadata: timeline.Timeline.Metadata,
	}
	for _, item := range timeline.Timeline.Items {
		doc.Items = append(doc.Items, internal.RecordFromItem(item))
	}

	enc := yaml.NewEncoder(w)
	defer func() { _ = enc.Close() }()

	return enc.Encode(doc)
}

// Extension returns the file extension for this format
func (e *YAMLExporter) Extension() string {
	return "yaml"
}
