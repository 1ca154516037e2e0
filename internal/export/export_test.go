package export

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/lacehq/lace/internal"
	"gopkg.in/yaml.v3"
)

func fixtureTimeline() *internal.ThreadTimeline {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	result := internal.ToolResultData{
		ID:      "c1",
		Content: []internal.ContentBlock{{Type: "text", Text: "README.md"}},
	}
	return &internal.ThreadTimeline{
		ThreadID: "thread1",
		Timeline: internal.Timeline{
			Items: []internal.TimelineItem{
				internal.UserMessageItem{ID: "e1", Timestamp: base, Text: "list files"},
				internal.ToolExecutionItem{
					CallID:    "c1",
					Call:      internal.ToolCallData{ID: "c1", Name: "bash"},
					Result:    &result,
					Timestamp: base.Add(time.Second),
				},
				internal.AgentMessageItem{ID: "e4", Timestamp: base.Add(2 * time.Second), Text: "There is a README."},
			},
			Metadata: internal.TimelineMetadata{
				EventCount:   4,
				MessageCount: 2,
				LastActivity: base.Add(2 * time.Second),
			},
		},
	}
}

func TestNewExporter(t *testing.T) {
	tests := []struct {
		format  string
		wantExt string
	}{
		{"json", "json"},
		{"jsonl", "jsonl"},
		{"yaml", "yaml"},
		{"md", "md"},
		{"markdown", "md"},
	}
	for _, tt := range tests {
		exp, err := NewExporter(tt.format)
		if err != nil {
			t.Errorf("NewExporter(%q) error: %v", tt.format, err)
			continue
		}
		if exp.Extension() != tt.wantExt {
			t.Errorf("Extension() = %q for format %q, want %q", exp.Extension(), tt.format, tt.wantExt)
		}
	}

	if _, err := NewExporter("xml"); err == nil {
		t.Error("NewExporter(xml) error = nil, want unsupported format error")
	}
}

func TestJSONExporter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONExporter{}).Export(fixtureTimeline(), &buf); err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	var restored internal.ThreadTimeline
	if err := json.Unmarshal(buf.Bytes(), &restored); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if restored.ThreadID != "thread1" {
		t.Errorf("ThreadID = %q, want thread1", restored.ThreadID)
	}
	if len(restored.Timeline.Items) != 3 {
		t.Errorf("restored %d items, want 3", len(restored.Timeline.Items))
	}
}

func TestJSONLExporter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONLExporter{}).Export(fixtureTimeline(), &buf); err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	scanner := bufio.NewScanner(&buf)
	var kinds []internal.ItemKind
	for scanner.Scan() {
		var rec internal.ItemRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			t.Fatalf("line is not valid JSON: %v\n%s", err, scanner.Text())
		}
		kinds = append(kinds, rec.Kind)
	}
	want := []internal.ItemKind{internal.ItemUserMessage, internal.ItemToolExecution, internal.ItemAgentMessage}
	if len(kinds) != len(want) {
		t.Fatalf("got %d lines, want %d", len(kinds), len(want))
	}
	for i, k := range want {
		if kinds[i] != k {
			t.Errorf("line %d kind = %q, want %q", i, kinds[i], k)
		}
	}
}

func TestYAMLExporter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&YAMLExporter{}).Export(fixtureTimeline(), &buf); err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	var doc struct {
		ThreadID string                `yaml:"thread_id"`
		Items    []internal.ItemRecord `yaml:"items"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if doc.ThreadID != "thread1" {
		t.Errorf("thread_id = %q, want thread1", doc.ThreadID)
	}
	if len(doc.Items) != 3 {
		t.Fatalf("got %d items, want 3", len(doc.Items))
	}
	if doc.Items[1].CallID != "c1" {
		t.Errorf("Items[1].CallID = %q, want c1", doc.Items[1].CallID)
	}
}

func TestMarkdownExporter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&MarkdownExporter{}).Export(fixtureTimeline(), &buf); err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"# Thread thread1",
		"**Events:** 4",
		"**user:**",
		"list files",
		"**tool bash [ok]:**",
		"README.md",
		"**agent:**",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q:\n%s", want, out)
		}
	}
}

func TestMarkdownExporter_PendingAndError(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	failed := internal.ToolResultData{
		ID:      "c2",
		IsError: true,
		Content: []internal.ContentBlock{{Type: "text", Text: "command not found"}},
	}
	tt := &internal.ThreadTimeline{
		ThreadID: "thread1",
		Timeline: internal.Timeline{Items: []internal.TimelineItem{
			internal.ToolExecutionItem{CallID: "c1", Call: internal.ToolCallData{ID: "c1", Name: "read"}, Timestamp: base},
			internal.ToolExecutionItem{CallID: "c2", Call: internal.ToolCallData{ID: "c2", Name: "bash"}, Result: &failed, Timestamp: base.Add(time.Second)},
		}},
	}

	var buf bytes.Buffer
	if err := (&MarkdownExporter{}).Export(tt, &buf); err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "**tool read [pending]:**") {
		t.Errorf("markdown missing pending marker:\n%s", out)
	}
	if !strings.Contains(out, "**tool bash [error]:**") {
		t.Errorf("markdown missing error marker:\n%s", out)
	}
	if !strings.Contains(out, "command not found") {
		t.Errorf("markdown missing error output:\n%s", out)
	}
}

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bold escaped", "this is **bold**", `this is \*\*bold\*\*`},
		{"underscores escaped", "an __emphasis__", `an \_\_emphasis\_\_`},
		{"code block preserved", "```\n**not escaped**\n```", "```\n**not escaped**\n```"},
		{"plain text untouched", "nothing special", "nothing special"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := escapeMarkdown(tt.in); got != tt.want {
				t.Errorf("escapeMarkdown(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
