// Package eventsource provides durable, append-only event streams with
// optimistic concurrency control. A stream records every state change of a
// token instance; replaying the stream rebuilds the instance.
package eventsource

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event is a single durable record in a stream.
type Event struct {
	// ID is the globally unique event identifier.
	ID string `json:"id"`

	// StreamID identifies the stream this event belongs to.
	StreamID string `json:"stream_id"`

	// Type is the event type name, e.g. "minted" or "price_changed".
	Type string `json:"type"`

	// Version is the event's position in its stream, starting at 0.
	// Assigned by the store on append.
	Version int `json:"version"`

	// Timestamp records when the event was created.
	Timestamp time.Time `json:"timestamp"`

	// Data is the JSON-encoded event payload.
	Data json.RawMessage `json:"data,omitempty"`
}

// NewEvent creates an event for a stream, encoding data as JSON.
// The version is assigned later, when the event is appended to a store.
func NewEvent(streamID, eventType string, data any) (*Event, error) {
	var raw json.RawMessage
	if data != nil {
		encoded, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		raw = encoded
	}

	return &Event{
		ID:        uuid.New().String(),
		StreamID:  streamID,
		Type:      eventType,
		Version:   -1,
		Timestamp: time.Now().UTC(),
		Data:      raw,
	}, nil
}

// Decode unmarshals the event payload into v.
func (e *Event) Decode(v any) error {
	if len(e.Data) == 0 {
		return nil
	}
	return json.Unmarshal(e.Data, v)
}
