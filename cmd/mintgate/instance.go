package main

import (
	"context"
	"fmt"

	"github.com/pflow-xyz/go-mintgate/eventsource"
	"github.com/pflow-xyz/go-mintgate/token"
)

// recorder appends controller events to the instance's stream. Append
// failures are logged, not propagated: the controller treats event
// recording as non-failing, and the next command rebuilds from whatever
// was durably written.
type recorder struct {
	store   eventsource.Store
	stream  string
	version int
}

func (r *recorder) Record(eventType string, data any) {
	event, err := eventsource.NewEvent(r.stream, eventType, data)
	if err != nil {
		logger.Error().Err(err).Str("type", eventType).Msg("event not encoded")
		return
	}
	version, err := r.store.Append(context.Background(), r.stream, r.version, []*eventsource.Event{event})
	if err != nil {
		logger.Error().Err(err).Str("type", eventType).Msg("event not recorded")
		return
	}
	r.version = version
}

// resolveStream picks the instance ID from the -id flag or the environment.
func resolveStream(cfg settings, flagID string) (string, error) {
	if flagID != "" {
		return flagID, nil
	}
	if cfg.Stream != "" {
		return cfg.Stream, nil
	}
	return "", fmt.Errorf("token instance required: pass -id or set MINTGATE_STREAM")
}

// loadInstance rebuilds a controller from its stream and attaches a
// recorder for new events.
func loadInstance(ctx context.Context, store eventsource.Store, stream string) (*token.Controller, *recorder, error) {
	events, err := store.Read(ctx, stream, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("read stream: %w", err)
	}
	if len(events) == 0 {
		return nil, nil, fmt.Errorf("unknown token instance %q", stream)
	}
	if events[0].Type != token.EventCreated {
		return nil, nil, fmt.Errorf("stream %q does not start with a created event", stream)
	}

	var cfg token.Config
	if err := events[0].Decode(&cfg); err != nil {
		return nil, nil, fmt.Errorf("decode configuration: %w", err)
	}

	controller, err := token.Replay(cfg, events[1:])
	if err != nil {
		return nil, nil, err
	}

	rec := &recorder{store: store, stream: stream, version: len(events) - 1}
	controller.SetSink(rec)
	return controller, rec, nil
}

func openStore(cfg settings) (*eventsource.SQLiteStore, error) {
	store, err := eventsource.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", cfg.DBPath, err)
	}
	return store, nil
}
