package trace

import (
	"context"
	"encoding/hex"
	"log/slog"
)

// SlogAdapter writes events to an slog.Logger at debug level.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{logger: logger}
}

// Log writes the event.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session", event.SessionID),
		slog.String("request", event.Request.String()),
		slog.Uint64("class", uint64(event.ClassID)),
		slog.String("ln", event.LogicalName),
		slog.Int("id", int(event.ID)),
		slog.Uint64("result", uint64(event.Result)),
	}
	if len(event.Value) > 0 {
		attrs = append(attrs, slog.String("value", hex.EncodeToString(event.Value)))
	}
	if event.Duration > 0 {
		attrs = append(attrs, slog.Duration("duration", event.Duration))
	}

	level := slog.LevelDebug
	if event.Error != "" {
		attrs = append(attrs, slog.String("error", event.Error))
		level = slog.LevelWarn
	}

	a.logger.LogAttrs(context.Background(), level, "cosem", attrs...)
}

var _ Logger = (*SlogAdapter)(nil)
