package trace

import (
	"io"
	"path/filepath"
	"testing"
	"time"
)

func createTestTraceFile(t *testing.T, events []Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.ctrace")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create test trace: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

func readFiltered(t *testing.T, path string, filter Filter) []Event {
	t.Helper()
	reader, err := NewFilteredReader(path, filter)
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader.Close()

	events, err := reader.All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	return events
}

func TestReaderHandlesEmptyFile(t *testing.T) {
	path := createTestTraceFile(t, nil)

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	if event, err := reader.Next(); err != io.EOF {
		t.Errorf("expected io.EOF, got err=%v, event=%+v", err, event)
	}
}

func TestReaderMissingFile(t *testing.T) {
	if _, err := NewReader(filepath.Join(t.TempDir(), "missing.ctrace")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReaderFilters(t *testing.T) {
	base := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)
	events := []Event{
		{Timestamp: base.Add(-time.Hour), SessionID: "a", Request: RequestGet, ClassID: 1, LogicalName: "1-65:0.129.0*255"},
		{Timestamp: base, SessionID: "b", Request: RequestSet, ClassID: 1, LogicalName: "1-65:0.129.0*255", Result: 3},
		{Timestamp: base.Add(time.Hour), SessionID: "a", Request: RequestGet, ClassID: 8, LogicalName: "0-0:1.0.0*255"},
		{Timestamp: base.Add(2 * time.Hour), SessionID: "a", Request: RequestAction, ClassID: 1, LogicalName: "1-66:0.1.0*255", Error: "timeout"},
	}
	path := createTestTraceFile(t, events)

	get := RequestGet
	clock := uint16(8)
	start, end := base, base.Add(2*time.Hour)

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"none", Filter{}, 4},
		{"session", Filter{SessionID: "a"}, 3},
		{"request", Filter{Request: &get}, 2},
		{"class", Filter{ClassID: &clock}, 1},
		{"logical name", Filter{LogicalName: "1-65:0.129.0*255"}, 2},
		{"failed only", Filter{FailedOnly: true}, 2},
		{"time range", Filter{TimeStart: &start, TimeEnd: &end}, 2},
		{"combined", Filter{SessionID: "a", Request: &get, ClassID: &clock}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := readFiltered(t, path, tt.filter)
			if len(got) != tt.want {
				t.Errorf("got %d events, want %d", len(got), tt.want)
			}
			for _, e := range got {
				if !tt.filter.Matches(e) {
					t.Errorf("event %+v does not match filter", e)
				}
			}
		})
	}
}
