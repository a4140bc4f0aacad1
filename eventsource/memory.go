package eventsource

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-memory Store. Safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	streams map[string][]*Event
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{streams: make(map[string][]*Event)}
}

// Append adds events to a stream with optimistic version checking.
func (s *MemoryStore) Append(ctx context.Context, stream string, expectedVersion int, events []*Event) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := len(s.streams[stream]) - 1
	if current != expectedVersion {
		return current, ErrVersionConflict
	}

	version := current
	for _, e := range events {
		version++
		stored := *e
		stored.Stream = stream
		stored.Version = version
		s.streams[stream] = append(s.streams[stream], &stored)
		e.Version = version
	}
	return version, nil
}

// Read returns events with Version >= fromVersion.
func (s *MemoryStore) Read(ctx context.Context, stream string, fromVersion int) ([]*Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Event
	for _, e := range s.streams[stream] {
		if e.Version >= fromVersion {
			copied := *e
			out = append(out, &copied)
		}
	}
	return out, nil
}

// Streams lists all stream identifiers in sorted order.
func (s *MemoryStore) Streams(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.streams))
	for name := range s.streams {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}

var _ Store = (*MemoryStore)(nil)
