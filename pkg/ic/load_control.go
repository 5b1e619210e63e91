package ic

import (
	"context"

	"github.com/ngc-ami/cosem-go/pkg/obis"
	"github.com/ngc-ami/cosem-go/pkg/settings"
)

// LoadControl holds the relay configuration.
type LoadControl struct {
	structured[settings.LoadControlSettings, *settings.LoadControlSettings]
}

// NewLoadControl returns the load control wrapper for ln.
func NewLoadControl(ln obis.LogicalName, t Transport, opts ...Option) *LoadControl {
	return &LoadControl{structured[settings.LoadControlSettings, *settings.LoadControlSettings]{
		Data:    NewData(ln, t, opts...),
		parse:   settings.ParseLoadControlSettings,
		initial: settings.LoadControlSettingsDefinition,
	}}
}

// Settings reads the relay configuration. It returns nil if the meter holds
// no structure.
func (l *LoadControl) Settings(ctx context.Context) (*settings.LoadControlSettings, error) {
	return l.get(ctx)
}

// SetSettings writes the relay configuration.
func (l *LoadControl) SetSettings(ctx context.Context, s *settings.LoadControlSettings) error {
	return l.set(ctx, s)
}

// LoadControlStatus reports the relay state.
type LoadControlStatus struct {
	structured[settings.LoadControlStatus, *settings.LoadControlStatus]
}

// NewLoadControlStatus returns the relay status wrapper for ln.
func NewLoadControlStatus(ln obis.LogicalName, t Transport, opts ...Option) *LoadControlStatus {
	return &LoadControlStatus{structured[settings.LoadControlStatus, *settings.LoadControlStatus]{
		Data:    NewData(ln, t, opts...),
		parse:   settings.ParseLoadControlStatus,
		initial: settings.LoadControlStatusDefinition,
	}}
}

// Status reads the relay state.
func (l *LoadControlStatus) Status(ctx context.Context) (*settings.LoadControlStatus, error) {
	return l.get(ctx)
}
