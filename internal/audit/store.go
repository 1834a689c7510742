package audit

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteSink mirrors trail entries into an insert-only SQLite table.
// Hosts that want a queryable durable log use this instead of (or
// alongside) the JSONL chain.
type SQLiteSink struct {
	db *sql.DB
}

// OpenSQLite creates or opens a SQLite-backed sink at the given path.
func OpenSQLite(path string) (*SQLiteSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("audit: create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("audit: open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("audit: ping database: %w", err)
	}

	s := &SQLiteSink{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("audit: migrate: %w", err)
	}
	return s, nil
}

// OpenSQLiteMemory creates an in-memory sink (useful for testing).
func OpenSQLiteMemory() (*SQLiteSink, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("audit: open in-memory database: %w", err)
	}
	s := &SQLiteSink{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteSink) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS audit_entries (
			id       INTEGER PRIMARY KEY,
			ts       TEXT NOT NULL,
			event    TEXT NOT NULL,
			payload  TEXT NOT NULL,
			digest   TEXT NOT NULL
		)`)
	return err
}

// Record inserts one entry. Duplicate ids are rejected by the primary
// key, which keeps the table append-only from the sink's perspective.
func (s *SQLiteSink) Record(entry Entry) error {
	payload, err := json.Marshal(entry.Payload)
	if err != nil {
		return fmt.Errorf("audit: marshal payload: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO audit_entries (id, ts, event, payload, digest)
		VALUES (?, ?, ?, ?, ?)`,
		entry.ID,
		entry.Timestamp.Format(TimestampFormat),
		entry.Event,
		string(payload),
		entry.Digest,
	)
	if err != nil {
		return fmt.Errorf("audit: insert entry: %w", err)
	}
	return nil
}

// Count returns the number of mirrored entries.
func (s *SQLiteSink) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM audit_entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("audit: count entries: %w", err)
	}
	return n, nil
}

// Close closes the underlying database.
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}
