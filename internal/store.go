package internal

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Store reads and appends thread events in a SQLite database. It is the
// durable source the projector consumes; projection itself never touches
// SQL.
type Store struct {
	db *sql.DB
}

// NewStore creates a new Store over an open database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// LoadEvents loads a thread's full history ordered by timestamp. Rows
// that fail to decode are skipped, not fatal.
func (s *Store) LoadEvents(threadID string) ([]ThreadEvent, error) {
	rows, err := s.db.Query(
		"SELECT id, thread_id, type, timestamp, data FROM events WHERE thread_id = ? ORDER BY timestamp, id",
		threadID,
	)
	if err != nil {
		return nil, &StorageError{Op: "query", Err: err}
	}
	defer rows.Close()

	return scanEvents(rows)
}

// LoadEventsSince loads a thread's events strictly newer than the given
// instant, for live tailing.
func (s *Store) LoadEventsSince(threadID string, after time.Time) ([]ThreadEvent, error) {
	rows, err := s.db.Query(
		"SELECT id, thread_id, type, timestamp, data FROM events WHERE thread_id = ? AND timestamp > ? ORDER BY timestamp, id",
		threadID, after.UnixMilli(),
	)
	if err != nil {
		return nil, &StorageError{Op: "query", Err: err}
	}
	defer rows.Close()

	return scanEvents(rows)
}

// ListThreads summarizes every thread in the store, most recent first.
func (s *Store) ListThreads() ([]ThreadSummary, error) {
	rows, err := s.db.Query(`
		SELECT thread_id,
		       COUNT(*),
		       SUM(CASE WHEN type IN (?, ?) THEN 1 ELSE 0 END),
		       MIN(timestamp),
		       MAX(timestamp)
		FROM events
		GROUP BY thread_id
		ORDER BY MAX(timestamp) DESC`,
		string(EventUserMessage), string(EventAgentMessage),
	)
	if err != nil {
		return nil, &StorageError{Op: "query", Err: err}
	}
	defer rows.Close()

	var summaries []ThreadSummary
	for rows.Next() {
		var sum ThreadSummary
		var first, last int64
		if err := rows.Scan(&sum.ThreadID, &sum.EventCount, &sum.MessageCount, &first, &last); err != nil {
			return nil, &StorageError{Op: "query", Err: err}
		}
		sum.FirstActivity = time.UnixMilli(first)
		sum.LastActivity = time.UnixMilli(last)
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "query", Err: err}
	}

	return summaries, nil
}

// AppendEvent persists one event, assigning an id when the event carries
// none. The stored event is returned.
func (s *Store) AppendEvent(ev ThreadEvent) (ThreadEvent, error) {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}

	_, err := s.db.Exec(
		"INSERT INTO events (id, thread_id, type, timestamp, data) VALUES (?, ?, ?, ?, ?)",
		ev.ID, ev.ThreadID, string(ev.Type), ev.Timestamp.UnixMilli(), string(ev.Data),
	)
	if err != nil {
		return ThreadEvent{}, &StorageError{Op: "append", Err: err}
	}

	return ev, nil
}

// scanEvents decodes event rows, skipping rows that cannot be read.
func scanEvents(rows *sql.Rows) ([]ThreadEvent, error) {
	var events []ThreadEvent
	for rows.Next() {
		var ev ThreadEvent
		var kind string
		var millis int64
		var data sql.NullString
		if err := rows.Scan(&ev.ID, &ev.ThreadID, &kind, &millis, &data); err != nil {
			LogWarn("Skipping unreadable event row: %v", err)
			continue
		}
		ev.Type = EventKind(kind)
		ev.Timestamp = time.UnixMilli(millis)
		if data.Valid && data.String != "" {
			ev.Data = json.RawMessage(data.String)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "query", Err: err}
	}
	return events, nil
}
