package ic

import (
	"log/slog"

	"github.com/ngc-ami/cosem-go/pkg/trace"
)

type config struct {
	logger    *slog.Logger
	tracer    trace.Logger
	sessionID string
}

// Option configures a wrapper.
type Option func(*config)

// WithLogger sets the operational logger. Default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTracer records every request to t.
func WithTracer(t trace.Logger) Option {
	return func(c *config) {
		if t != nil {
			c.tracer = t
		}
	}
}

// WithSessionID tags trace events with id. Without it every wrapper gets a
// fresh session ID.
func WithSessionID(id string) Option {
	return func(c *config) {
		c.sessionID = id
	}
}

func newConfig(opts []Option) config {
	c := config{
		logger: slog.Default(),
		tracer: trace.NoopLogger{},
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.sessionID == "" {
		c.sessionID = trace.NewSessionID()
	}
	return c
}
