package internal

import "fmt"

// StorageError represents errors accessing the thread database.
type StorageError struct {
	Path string
	Op   string // "open", "query", "append"
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ParseError represents errors decoding persisted event payloads.
type ParseError struct {
	Source string // event kind or storage key
	Key    string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("parse error [%s] %s: %v", e.Source, e.Key, e.Err)
	}
	return fmt.Sprintf("parse error [%s]: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ProjectionError represents errors while projecting a thread's timeline.
type ProjectionError struct {
	ThreadID string
	Err      error
}

func (e *ProjectionError) Error() string {
	return fmt.Sprintf("projection error [%s]: %v", e.ThreadID, e.Err)
}

func (e *ProjectionError) Unwrap() error {
	return e.Err
}

// ExportError represents errors during timeline export.
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
