package internal

import (
	"database/sql"

	_ "modernc.org/sqlite"
)

// schemaSQL defines the append-only event log. Timestamps are stored as
// Unix milliseconds; payloads as kind-specific JSON.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS events (
	id TEXT PRIMARY KEY,
	thread_id TEXT NOT NULL,
	type TEXT NOT NULL,
	timestamp INTEGER NOT NULL,
	data TEXT
);
CREATE INDEX IF NOT EXISTS idx_events_thread_time ON events(thread_id, timestamp);
`

// OpenDatabase opens a thread database in read-only mode.
func OpenDatabase(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return nil, &StorageError{Path: path, Op: "open", Err: err}
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &StorageError{Path: path, Op: "open", Err: err}
	}

	return db, nil
}

// OpenDatabaseRW opens (creating if necessary) a thread database for
// writing and ensures the event schema exists.
func OpenDatabaseRW(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &StorageError{Path: path, Op: "open", Err: err}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &StorageError{Path: path, Op: "open", Err: err}
	}

	if err := InitSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// InitSchema creates the event tables if they do not exist.
func InitSchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return &StorageError{Op: "init", Err: err}
	}
	return nil
}

// HasEventSchema reports whether the events table exists, for diagnostics.
func HasEventSchema(db *sql.DB) (bool, error) {
	row := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='events'")
	var count int
	if err := row.Scan(&count); err != nil {
		return false, &StorageError{Op: "query", Err: err}
	}
	return count > 0, nil
}
