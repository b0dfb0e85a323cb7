package eventsource_test

import (
	"context"
	"errors"
	"testing"

	"github.com/pflow-xyz/go-mintgate/eventsource"
)

func TestMemoryStore(t *testing.T) {
	runStoreTests(t, func() eventsource.Store {
		return eventsource.NewMemoryStore()
	})
}

func TestSQLiteStore(t *testing.T) {
	runStoreTests(t, func() eventsource.Store {
		store, err := eventsource.NewSQLiteStore(":memory:")
		if err != nil {
			t.Fatalf("failed to create sqlite store: %v", err)
		}
		return store
	})
}

func runStoreTests(t *testing.T, newStore func() eventsource.Store) {
	t.Run("AppendAndRead", func(t *testing.T) {
		store := newStore()
		defer store.Close()
		ctx := context.Background()

		event1, _ := eventsource.NewEvent("token-1", "created", map[string]string{"symbol": "MGT"})
		event2, _ := eventsource.NewEvent("token-1", "minted", map[string]any{"wallet": "alice", "amount_whole": 5})

		version, err := store.Append(ctx, "token-1", -1, []*eventsource.Event{event1})
		if err != nil {
			t.Fatalf("append failed: %v", err)
		}
		if version != 0 {
			t.Errorf("expected version 0, got %d", version)
		}

		version, err = store.Append(ctx, "token-1", 0, []*eventsource.Event{event2})
		if err != nil {
			t.Fatalf("append failed: %v", err)
		}
		if version != 1 {
			t.Errorf("expected version 1, got %d", version)
		}

		events, err := store.Read(ctx, "token-1", 0)
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if len(events) != 2 {
			t.Fatalf("expected 2 events, got %d", len(events))
		}

		if events[0].Type != "created" {
			t.Errorf("expected type created, got %s", events[0].Type)
		}
		if events[1].Type != "minted" {
			t.Errorf("expected type minted, got %s", events[1].Type)
		}

		var payload map[string]string
		if err := events[0].Decode(&payload); err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if payload["symbol"] != "MGT" {
			t.Errorf("expected symbol MGT, got %q", payload["symbol"])
		}
	})

	t.Run("ConcurrencyConflict", func(t *testing.T) {
		store := newStore()
		defer store.Close()
		ctx := context.Background()

		event1, _ := eventsource.NewEvent("token-1", "created", nil)
		event2, _ := eventsource.NewEvent("token-1", "minted", nil)

		_, err := store.Append(ctx, "token-1", -1, []*eventsource.Event{event1})
		if err != nil {
			t.Fatalf("append failed: %v", err)
		}

		// Wrong expected version must be rejected without writing.
		_, err = store.Append(ctx, "token-1", 5, []*eventsource.Event{event2})
		if !errors.Is(err, eventsource.ErrConcurrencyConflict) {
			t.Errorf("expected concurrency conflict, got: %v", err)
		}

		_, err = store.Append(ctx, "token-1", 0, []*eventsource.Event{event2})
		if err != nil {
			t.Errorf("append with correct version failed: %v", err)
		}
	})

	t.Run("StreamVersion", func(t *testing.T) {
		store := newStore()
		defer store.Close()
		ctx := context.Background()

		version, err := store.StreamVersion(ctx, "token-1")
		if err != nil {
			t.Fatalf("stream version failed: %v", err)
		}
		if version != -1 {
			t.Errorf("expected version -1 for non-existent stream, got %d", version)
		}

		event, _ := eventsource.NewEvent("token-1", "created", nil)
		if _, err := store.Append(ctx, "token-1", -1, []*eventsource.Event{event}); err != nil {
			t.Fatalf("append failed: %v", err)
		}

		version, err = store.StreamVersion(ctx, "token-1")
		if err != nil {
			t.Fatalf("stream version failed: %v", err)
		}
		if version != 0 {
			t.Errorf("expected version 0, got %d", version)
		}
	})

	t.Run("ReadFromVersion", func(t *testing.T) {
		store := newStore()
		defer store.Close()
		ctx := context.Background()

		for i := 0; i < 3; i++ {
			event, _ := eventsource.NewEvent("token-1", "minted", i)
			if _, err := store.Append(ctx, "token-1", i-1, []*eventsource.Event{event}); err != nil {
				t.Fatalf("append failed: %v", err)
			}
		}

		events, err := store.Read(ctx, "token-1", 1)
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if len(events) != 2 {
			t.Fatalf("expected 2 events, got %d", len(events))
		}
		if events[0].Version != 1 {
			t.Errorf("expected first event version 1, got %d", events[0].Version)
		}
	})

	t.Run("ReadAllWithFilter", func(t *testing.T) {
		store := newStore()
		defer store.Close()
		ctx := context.Background()

		event1, _ := eventsource.NewEvent("token-1", "minted", nil)
		event2, _ := eventsource.NewEvent("token-1", "price_changed", nil)
		event3, _ := eventsource.NewEvent("token-2", "minted", nil)

		store.Append(ctx, "token-1", -1, []*eventsource.Event{event1, event2})
		store.Append(ctx, "token-2", -1, []*eventsource.Event{event3})

		events, err := store.ReadAll(ctx, eventsource.EventFilter{
			Types: []string{"minted"},
		})
		if err != nil {
			t.Fatalf("read all failed: %v", err)
		}
		if len(events) != 2 {
			t.Errorf("expected 2 minted events, got %d", len(events))
		}

		events, err = store.ReadAll(ctx, eventsource.EventFilter{
			StreamID: "token-1",
		})
		if err != nil {
			t.Fatalf("read all failed: %v", err)
		}
		if len(events) != 2 {
			t.Errorf("expected 2 events in token-1, got %d", len(events))
		}
	})

	t.Run("Streams", func(t *testing.T) {
		store := newStore()
		defer store.Close()
		ctx := context.Background()

		event1, _ := eventsource.NewEvent("token-1", "created", nil)
		event2, _ := eventsource.NewEvent("token-2", "created", nil)
		store.Append(ctx, "token-1", -1, []*eventsource.Event{event1})
		store.Append(ctx, "token-2", -1, []*eventsource.Event{event2})

		ids, err := store.Streams(ctx)
		if err != nil {
			t.Fatalf("streams failed: %v", err)
		}
		if len(ids) != 2 || ids[0] != "token-1" || ids[1] != "token-2" {
			t.Errorf("unexpected stream ids: %v", ids)
		}
	})

	t.Run("DeleteStream", func(t *testing.T) {
		store := newStore()
		defer store.Close()
		ctx := context.Background()

		event, _ := eventsource.NewEvent("token-1", "created", nil)
		if _, err := store.Append(ctx, "token-1", -1, []*eventsource.Event{event}); err != nil {
			t.Fatalf("append failed: %v", err)
		}

		version, _ := store.StreamVersion(ctx, "token-1")
		if version != 0 {
			t.Errorf("expected version 0, got %d", version)
		}

		if err := store.DeleteStream(ctx, "token-1"); err != nil {
			t.Fatalf("delete stream failed: %v", err)
		}

		version, _ = store.StreamVersion(ctx, "token-1")
		if version != -1 {
			t.Errorf("expected version -1 after delete, got %d", version)
		}
	})

	t.Run("ReadsReturnCopies", func(t *testing.T) {
		store := newStore()
		defer store.Close()
		ctx := context.Background()

		event, _ := eventsource.NewEvent("token-1", "created", map[string]string{"symbol": "MGT"})
		if _, err := store.Append(ctx, "token-1", -1, []*eventsource.Event{event}); err != nil {
			t.Fatalf("append failed: %v", err)
		}

		events, err := store.Read(ctx, "token-1", 0)
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		events[0].Type = "mutated"
		events[0].Data = nil

		all, err := store.ReadAll(ctx, eventsource.EventFilter{StreamID: "token-1"})
		if err != nil {
			t.Fatalf("read all failed: %v", err)
		}
		all[0].Type = "mutated-again"

		events, err = store.Read(ctx, "token-1", 0)
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if events[0].Type != "created" {
			t.Errorf("stored event mutated through a read result: type %q", events[0].Type)
		}
		if len(events[0].Data) == 0 {
			t.Error("stored event payload lost through a read result")
		}
	})
}
