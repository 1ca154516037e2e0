package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// eventsSchema mirrors the production event log schema.
const eventsSchema = `
	CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		thread_id TEXT NOT NULL,
		type TEXT NOT NULL,
		timestamp INTEGER NOT NULL,
		data TEXT
	)`

// CreateInMemoryDB creates an in-memory SQLite event database for testing
func CreateInMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create in-memory database: %v", err)
	}
	// Each connection to :memory: gets its own database; keep one.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(eventsSchema); err != nil {
		db.Close()
		t.Fatalf("Failed to create events table: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}

// InsertEvent inserts one raw event row
func InsertEvent(t *testing.T, db *sql.DB, id, threadID, kind string, timestampMillis int64, data string) {
	t.Helper()
	_, err := db.Exec(
		"INSERT INTO events (id, thread_id, type, timestamp, data) VALUES (?, ?, ?, ?, ?)",
		id, threadID, kind, timestampMillis, data,
	)
	if err != nil {
		t.Fatalf("Failed to insert event %s: %v", id, err)
	}
}
