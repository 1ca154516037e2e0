package testutil

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

// CreateSQLiteFixture creates a SQLite database fixture with a small
// conversation: user message, agent message, and a completed tool call.
func CreateSQLiteFixture(t *testing.T, dbPath string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		t.Fatalf("Failed to create fixture directory: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	if _, err := db.Exec(eventsSchema); err != nil {
		t.Fatalf("Failed to create table: %v", err)
	}

	base := time.Now().Add(-time.Hour)
	SeedThreadFixture(t, db, "thread1", base)
}

// SeedThreadFixture inserts a four-event conversation into the given
// thread, starting at the given time.
func SeedThreadFixture(t *testing.T, db *sql.DB, threadID string, start time.Time) {
	t.Helper()

	userData, _ := json.Marshal(map[string]string{"text": "Hello"})
	agentData, _ := json.Marshal(map[string]string{"text": "Hi! Let me check."})
	callData, _ := json.Marshal(map[string]interface{}{
		"id":    threadID + "-call1",
		"name":  "bash",
		"input": map[string]string{"command": "ls"},
	})
	resultData, _ := json.Marshal(map[string]interface{}{
		"id":      threadID + "-call1",
		"isError": false,
		"content": []map[string]string{{"type": "text", "text": "README.md"}},
	})

	insert := func(id, kind string, at time.Time, data []byte) {
		t.Helper()
		_, err := db.Exec(
			"INSERT INTO events (id, thread_id, type, timestamp, data) VALUES (?, ?, ?, ?, ?)",
			id, threadID, kind, at.UnixMilli(), string(data),
		)
		if err != nil {
			t.Fatalf("Failed to insert fixture event %s: %v", id, err)
		}
	}

	insert(threadID+"-e1", "user_message", start, userData)
	insert(threadID+"-e2", "agent_message", start.Add(time.Second), agentData)
	insert(threadID+"-e3", "tool_call", start.Add(2*time.Second), callData)
	insert(threadID+"-e4", "tool_result", start.Add(3*time.Second), resultData)
}
