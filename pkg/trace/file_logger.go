package trace

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

// FileLogger appends events to a .ctrace file. It is safe for concurrent use.
//
// Log never reports failure to the caller, since a broken trace must not
// disturb meter access. The first write error is kept instead and returned
// by Err and Close.
type FileLogger struct {
	mu     sync.Mutex
	file   *os.File
	enc    *cbor.Encoder
	counts map[Request]int
	err    error
	closed bool
}

// NewFileLogger opens path for appending, creating it with permissions 0644.
func NewFileLogger(path string) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return &FileLogger{
		file:   f,
		enc:    encMode.NewEncoder(f),
		counts: make(map[Request]int),
	}, nil
}

// Log appends an event. Events after Close or after a write error are
// dropped.
func (l *FileLogger) Log(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || l.err != nil {
		return
	}
	if err := l.enc.Encode(event); err != nil {
		l.err = fmt.Errorf("trace %s: %w", l.file.Name(), err)
		return
	}
	l.counts[event.Request]++
}

// Counts returns the number of events written per request kind.
func (l *FileLogger) Counts() map[Request]int {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make(map[Request]int, len(l.counts))
	for r, n := range l.counts {
		out[r] = n
	}
	return out
}

// Err returns the first write error.
func (l *FileLogger) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Close closes the file and returns the first write error, if any. Later
// calls return nil.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true
	return errors.Join(l.err, l.file.Close())
}

var _ Logger = (*FileLogger)(nil)
