package eventsource

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// Common store errors.
var (
	ErrConcurrencyConflict = errors.New("eventsource: expected version does not match stream version")
	ErrStoreClosed         = errors.New("eventsource: store is closed")
)

// EventFilter selects events for ReadAll.
type EventFilter struct {
	// StreamID restricts results to a single stream. Empty matches all.
	StreamID string

	// Types restricts results to the given event types. Empty matches all.
	Types []string
}

// Store persists event streams.
type Store interface {
	// Append adds events to a stream. expectedVersion must equal the
	// stream's current version (-1 for a new stream) or the append fails
	// with ErrConcurrencyConflict. Returns the stream's new version.
	Append(ctx context.Context, streamID string, expectedVersion int, events []*Event) (int, error)

	// Read returns a stream's events starting at fromVersion, in order.
	Read(ctx context.Context, streamID string, fromVersion int) ([]*Event, error)

	// ReadAll returns events across streams matching the filter, ordered
	// by timestamp then stream position.
	ReadAll(ctx context.Context, filter EventFilter) ([]*Event, error)

	// StreamVersion returns the current version of a stream, or -1 if the
	// stream does not exist.
	StreamVersion(ctx context.Context, streamID string) (int, error)

	// Streams returns the IDs of all streams in the store.
	Streams(ctx context.Context) ([]string, error)

	// DeleteStream removes a stream and all its events.
	DeleteStream(ctx context.Context, streamID string) error

	// Close releases store resources.
	Close() error
}

// MemoryStore is an in-memory Store, useful for tests and ephemeral runs.
type MemoryStore struct {
	mu      sync.RWMutex
	streams map[string][]*Event
	closed  bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		streams: make(map[string][]*Event),
	}
}

// Append adds events to a stream with optimistic concurrency control.
func (s *MemoryStore) Append(ctx context.Context, streamID string, expectedVersion int, events []*Event) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrStoreClosed
	}

	stream := s.streams[streamID]
	current := len(stream) - 1
	if expectedVersion != current {
		return 0, ErrConcurrencyConflict
	}

	for _, event := range events {
		copied := *event
		copied.StreamID = streamID
		copied.Version = len(stream)
		stream = append(stream, &copied)
	}
	s.streams[streamID] = stream

	return len(stream) - 1, nil
}

// Read returns a stream's events starting at fromVersion.
func (s *MemoryStore) Read(ctx context.Context, streamID string, fromVersion int) ([]*Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	stream := s.streams[streamID]
	if fromVersion < 0 {
		fromVersion = 0
	}
	if fromVersion >= len(stream) {
		return nil, nil
	}

	// Callers get copies so mutating a result cannot corrupt history.
	result := make([]*Event, 0, len(stream)-fromVersion)
	for _, event := range stream[fromVersion:] {
		copied := *event
		result = append(result, &copied)
	}
	return result, nil
}

// ReadAll returns events across streams matching the filter.
func (s *MemoryStore) ReadAll(ctx context.Context, filter EventFilter) ([]*Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	var result []*Event
	for id, stream := range s.streams {
		if filter.StreamID != "" && filter.StreamID != id {
			continue
		}
		for _, event := range stream {
			if !filter.matchesType(event.Type) {
				continue
			}
			copied := *event
			result = append(result, &copied)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Timestamp.Equal(result[j].Timestamp) {
			return result[i].Version < result[j].Version
		}
		return result[i].Timestamp.Before(result[j].Timestamp)
	})

	return result, nil
}

// StreamVersion returns the current version of a stream, or -1 if absent.
func (s *MemoryStore) StreamVersion(ctx context.Context, streamID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0, ErrStoreClosed
	}

	return len(s.streams[streamID]) - 1, nil
}

// Streams returns the IDs of all streams in the store.
func (s *MemoryStore) Streams(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	ids := make([]string, 0, len(s.streams))
	for id := range s.streams {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// DeleteStream removes a stream and all its events.
func (s *MemoryStore) DeleteStream(ctx context.Context, streamID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	delete(s.streams, streamID)
	return nil
}

// Close marks the store closed. Further operations fail with ErrStoreClosed.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (f EventFilter) matchesType(eventType string) bool {
	if len(f.Types) == 0 {
		return true
	}
	for _, t := range f.Types {
		if t == eventType {
			return true
		}
	}
	return false
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
