package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pflow-xyz/go-mintgate/eventsource"
)

func events(cfg settings, args []string) error {
	fs := flag.NewFlagSet("events", flag.ExitOnError)
	id := fs.String("id", "", "Token instance ID")
	typeFilter := fs.String("type", "", "Filter by event type")
	format := fs.String("format", "text", "Output format: text, jsonl, csv")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: mintgate events [options]

Display a token instance's event stream.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Show all events
  mintgate events -id <token>

  # Export mints as JSON Lines
  mintgate events -id <token> -type minted -format jsonl
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	stream, err := resolveStream(cfg, *id)
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	filter := eventsource.EventFilter{StreamID: stream}
	if *typeFilter != "" {
		filter.Types = []string{*typeFilter}
	}

	list, err := store.ReadAll(context.Background(), filter)
	if err != nil {
		return fmt.Errorf("read events: %w", err)
	}
	if len(list) == 0 {
		fmt.Println("No events recorded")
		return nil
	}

	switch *format {
	case "jsonl":
		return eventsource.WriteJSONL(os.Stdout, list)
	case "csv":
		return eventsource.WriteCSV(os.Stdout, list)
	case "text":
		for _, event := range list {
			fmt.Printf("%4d  %-26s  %s  %s\n",
				event.Version, event.Type,
				event.Timestamp.Format("2006-01-02 15:04:05"),
				string(event.Data))
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", *format)
	}
}
