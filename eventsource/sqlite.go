package eventsource

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS events (
	stream    TEXT    NOT NULL,
	version   INTEGER NOT NULL,
	id        TEXT    NOT NULL,
	type      TEXT    NOT NULL,
	timestamp TEXT    NOT NULL,
	data      BLOB,
	PRIMARY KEY (stream, version)
);
`

// SQLiteStore is a Store backed by a SQLite database file.
// Use ":memory:" for an ephemeral database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and if necessary initializes) a SQLite store.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	// The journal is accessed through a single connection so that
	// in-memory databases keep their state across calls.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init sqlite schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Append adds events to a stream inside a single transaction.
func (s *SQLiteStore) Append(ctx context.Context, stream string, expectedVersion int, events []*Event) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return -1, err
	}
	defer tx.Rollback()

	var current int
	row := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), -1) FROM events WHERE stream = ?`, stream)
	if err := row.Scan(&current); err != nil {
		return -1, err
	}
	if current != expectedVersion {
		return current, ErrVersionConflict
	}

	version := current
	for _, e := range events {
		version++
		_, err := tx.ExecContext(ctx,
			`INSERT INTO events (stream, version, id, type, timestamp, data) VALUES (?, ?, ?, ?, ?, ?)`,
			stream, version, e.ID, e.Type, e.Timestamp.Format(time.RFC3339Nano), []byte(e.Data))
		if err != nil {
			return -1, err
		}
		e.Stream = stream
		e.Version = version
	}

	if err := tx.Commit(); err != nil {
		return -1, err
	}
	return version, nil
}

// Read returns events with Version >= fromVersion in version order.
func (s *SQLiteStore) Read(ctx context.Context, stream string, fromVersion int) ([]*Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT version, id, type, timestamp, data FROM events
		 WHERE stream = ? AND version >= ? ORDER BY version`,
		stream, fromVersion)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Event
	for rows.Next() {
		e := &Event{Stream: stream}
		var ts string
		var data []byte
		if err := rows.Scan(&e.Version, &e.ID, &e.Type, &ts, &data); err != nil {
			return nil, err
		}
		e.Timestamp, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("parse event timestamp: %w", err)
		}
		if len(data) > 0 {
			e.Data = data
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Streams lists all stream identifiers in sorted order.
func (s *SQLiteStore) Streams(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT stream FROM events ORDER BY stream`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
		return err
	}
	return nil
}

var _ Store = (*SQLiteStore)(nil)
