package commands

import (
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ngc-ami/cosem-go/pkg/trace"
)

// record is the flat export form of an event.
type record struct {
	Timestamp   string `json:"timestamp"`
	SessionID   string `json:"session_id"`
	Request     string `json:"request"`
	ClassID     uint16 `json:"class_id"`
	LogicalName string `json:"logical_name"`
	ID          int8   `json:"id"`
	Result      string `json:"result"`
	Value       string `json:"value,omitempty"`
	Error       string `json:"error,omitempty"`
	DurationUS  int64  `json:"duration_us,omitempty"`
}

func newRecord(event trace.Event) record {
	return record{
		Timestamp:   event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
		SessionID:   event.SessionID,
		Request:     event.Request.String(),
		ClassID:     event.ClassID,
		LogicalName: event.LogicalName,
		ID:          event.ID,
		Result:      resultName(event),
		Value:       hex.EncodeToString(event.Value),
		Error:       event.Error,
		DurationUS:  event.Duration.Microseconds(),
	}
}

// RunExport exports the trace file to the specified format. An empty output
// writes to stdout.
func RunExport(path, format, output string) error {
	reader, err := trace.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	// Determine output writer
	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "jsonl":
		return exportJSONL(reader, w)
	case "csv":
		return exportCSV(reader, w)
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}
}

func exportJSONL(reader *trace.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(newRecord(event)); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
	return nil
}

func exportCSV(reader *trace.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"timestamp", "session_id", "request", "class_id", "logical_name", "id", "result", "value", "error", "duration_us"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		r := newRecord(event)
		row := []string{
			r.Timestamp,
			r.SessionID,
			r.Request,
			strconv.Itoa(int(r.ClassID)),
			r.LogicalName,
			strconv.Itoa(int(r.ID)),
			r.Result,
			r.Value,
			r.Error,
			strconv.FormatInt(r.DurationUS, 10),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return nil
}
