// Package eventsource provides an append-only event journal with
// optimistic concurrency control. Streams are totally ordered by version;
// appending with a stale expected version fails with ErrVersionConflict.
//
// Two stores are provided: an in-memory store for tests and ephemeral use,
// and a SQLite-backed store for durable journals.
package eventsource

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrVersionConflict = errors.New("eventsource: version conflict")
	ErrStreamNotFound  = errors.New("eventsource: stream not found")
)

// Event is a single journal entry.
type Event struct {
	// ID is a globally unique event identifier.
	ID string `json:"id"`

	// Stream identifies the aggregate this event belongs to.
	Stream string `json:"stream"`

	// Type is the event type name.
	Type string `json:"type"`

	// Version is the position within the stream, starting at 0.
	// Assigned by the store on append.
	Version int `json:"version"`

	// Timestamp records when the event was created.
	Timestamp time.Time `json:"timestamp"`

	// Data is the JSON-encoded payload.
	Data json.RawMessage `json:"data,omitempty"`
}

// NewEvent creates an event with a fresh ID and an encoded payload.
// A nil payload produces an event with no data.
func NewEvent(stream, eventType string, payload any) (*Event, error) {
	e := &Event{
		ID:        uuid.New().String(),
		Stream:    stream,
		Type:      eventType,
		Version:   -1,
		Timestamp: time.Now().UTC(),
	}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		e.Data = data
	}
	return e, nil
}

// Decode unmarshals the payload into v.
func (e *Event) Decode(v any) error {
	if len(e.Data) == 0 {
		return nil
	}
	return json.Unmarshal(e.Data, v)
}

// Store is an append-only event journal.
type Store interface {
	// Append adds events to a stream. expectedVersion is the version of
	// the last event already in the stream, or -1 for a new stream; a
	// mismatch fails with ErrVersionConflict. Returns the version of the
	// last appended event.
	Append(ctx context.Context, stream string, expectedVersion int, events []*Event) (int, error)

	// Read returns events of a stream with Version >= fromVersion, in
	// version order. An unknown stream yields no events.
	Read(ctx context.Context, stream string, fromVersion int) ([]*Event, error)

	// Streams lists all stream identifiers in the store.
	Streams(ctx context.Context) ([]string, error)

	// Close releases store resources.
	Close() error
}
