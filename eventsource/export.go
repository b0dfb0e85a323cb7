package eventsource

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// WriteJSONL writes events as JSON Lines, one event object per line.
func WriteJSONL(w io.Writer, events []*Event) error {
	buf := bufio.NewWriter(w)
	enc := json.NewEncoder(buf)
	for _, event := range events {
		if err := enc.Encode(event); err != nil {
			return fmt.Errorf("encode event %s: %w", event.ID, err)
		}
	}
	return buf.Flush()
}

// WriteCSV writes events as CSV with a header row. The payload is kept as
// raw JSON in the data column.
func WriteCSV(w io.Writer, events []*Event) error {
	cw := csv.NewWriter(w)

	header := []string{"stream_id", "version", "id", "type", "timestamp", "data"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, event := range events {
		record := []string{
			event.StreamID,
			fmt.Sprintf("%d", event.Version),
			event.ID,
			event.Type,
			event.Timestamp.UTC().Format(time.RFC3339Nano),
			string(event.Data),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write event %s: %w", event.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
