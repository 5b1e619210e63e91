package trace

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"
)

func logJSON(t *testing.T, event Event) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	NewSlogAdapter(slog.New(handler)).Log(event)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output %q: %v", buf.String(), err)
	}
	return entry
}

func TestSlogAdapterLogsRequest(t *testing.T) {
	entry := logJSON(t, Event{
		Timestamp:   time.Now(),
		SessionID:   "s-1",
		Request:     RequestGet,
		ClassID:     1,
		LogicalName: "1-65:0.129.0*255",
		ID:          2,
		Value:       []byte{0x11, 0x05},
		Duration:    time.Millisecond,
	})

	checks := map[string]any{
		"msg":     "cosem",
		"level":   "DEBUG",
		"session": "s-1",
		"request": "GET",
		"class":   float64(1),
		"ln":      "1-65:0.129.0*255",
		"id":      float64(2),
		"value":   "1105",
	}
	for key, want := range checks {
		if entry[key] != want {
			t.Errorf("%s: got %v, want %v", key, entry[key], want)
		}
	}
}

func TestSlogAdapterWarnsOnError(t *testing.T) {
	entry := logJSON(t, Event{Request: RequestSet, Error: "type-unmatched"})

	if entry["level"] != "WARN" {
		t.Errorf("level: got %v, want WARN", entry["level"])
	}
	if entry["error"] != "type-unmatched" {
		t.Errorf("error: got %v", entry["error"])
	}
	if _, ok := entry["value"]; ok {
		t.Error("empty value should not be logged")
	}
}

func TestSlogAdapterNilLogger(t *testing.T) {
	if NewSlogAdapter(nil).logger == nil {
		t.Error("nil logger should fall back to slog.Default")
	}
}
