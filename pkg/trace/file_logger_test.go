package trace

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestFileLoggerCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.ctrace")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	defer logger.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("trace file was not created")
	}
}

func TestFileLoggerAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.ctrace")

	for i := 0; i < 2; i++ {
		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("NewFileLogger failed: %v", err)
		}
		logger.Log(Event{Timestamp: time.Now(), SessionID: "s", ID: int8(i + 1)})
		logger.Close()
	}

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	events, err := reader.All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].ID != 1 || events[1].ID != 2 {
		t.Errorf("events out of order: %d, %d", events[0].ID, events[1].ID)
	}
}

func TestFileLoggerIgnoresLogAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.ctrace")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	logger.Log(Event{Timestamp: time.Now()})

	if err := logger.Close(); err != nil {
		t.Errorf("second Close returned %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("file size = %d, want 0", info.Size())
	}
}

func TestFileLoggerConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.ctrace")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	const writers, perWriter = 8, 25
	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				logger.Log(Event{Timestamp: time.Now(), Request: RequestGet, ClassID: 1})
			}
		}()
	}
	wg.Wait()
	logger.Close()

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	events, err := reader.All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(events) != writers*perWriter {
		t.Errorf("got %d events, want %d", len(events), writers*perWriter)
	}
}

func TestFileLoggerCounts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.ctrace")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	defer logger.Close()

	logger.Log(Event{Timestamp: time.Now(), Request: RequestGet})
	logger.Log(Event{Timestamp: time.Now(), Request: RequestGet})
	logger.Log(Event{Timestamp: time.Now(), Request: RequestAction})

	counts := logger.Counts()
	if counts[RequestGet] != 2 || counts[RequestSet] != 0 || counts[RequestAction] != 1 {
		t.Errorf("counts = %v", counts)
	}

	counts[RequestGet] = 99
	if logger.Counts()[RequestGet] != 2 {
		t.Error("Counts must return a copy")
	}
	if err := logger.Err(); err != nil {
		t.Errorf("Err() = %v", err)
	}
}

func TestFileLoggerKeepsFirstWriteError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.ctrace")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	logger.Log(Event{Timestamp: time.Now(), Request: RequestSet})

	// Closing the file underneath the logger makes the next write fail.
	logger.file.Close()
	logger.Log(Event{Timestamp: time.Now(), Request: RequestSet})
	logger.Log(Event{Timestamp: time.Now(), Request: RequestGet})

	werr := logger.Err()
	if !errors.Is(werr, os.ErrClosed) {
		t.Fatalf("Err() = %v, want os.ErrClosed", werr)
	}
	if counts := logger.Counts(); counts[RequestSet] != 1 || counts[RequestGet] != 0 {
		t.Errorf("counts = %v, want only the first event", counts)
	}
	if err := logger.Close(); !errors.Is(err, os.ErrClosed) {
		t.Errorf("Close() = %v, want the write error", err)
	}
}
