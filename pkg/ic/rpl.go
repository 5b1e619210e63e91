package ic

import (
	"context"

	"github.com/ngc-ami/cosem-go/pkg/obis"
	"github.com/ngc-ami/cosem-go/pkg/settings"
)

// RPLConfig holds the mesh routing parameters.
type RPLConfig struct {
	structured[settings.RPLConfig, *settings.RPLConfig]
}

// NewRPLConfig returns the wrapper for ln.
func NewRPLConfig(ln obis.LogicalName, t Transport, opts ...Option) *RPLConfig {
	return &RPLConfig{structured[settings.RPLConfig, *settings.RPLConfig]{
		Data:    NewData(ln, t, opts...),
		parse:   settings.ParseRPLConfig,
		initial: settings.RPLConfigDefinition,
	}}
}

// Config reads the routing parameters.
func (r *RPLConfig) Config(ctx context.Context) (*settings.RPLConfig, error) {
	return r.get(ctx)
}

// SetConfig writes the routing parameters.
func (r *RPLConfig) SetConfig(ctx context.Context, c *settings.RPLConfig) error {
	return r.set(ctx, c)
}

// RPLStats holds the routing counters.
type RPLStats struct {
	structured[settings.RPLStats, *settings.RPLStats]
}

// NewRPLStats returns the wrapper for ln.
func NewRPLStats(ln obis.LogicalName, t Transport, opts ...Option) *RPLStats {
	return &RPLStats{structured[settings.RPLStats, *settings.RPLStats]{
		Data:    NewData(ln, t, opts...),
		parse:   settings.ParseRPLStats,
		initial: settings.RPLStatsDefinition,
	}}
}

// Stats reads the counters.
func (r *RPLStats) Stats(ctx context.Context) (*settings.RPLStats, error) {
	return r.get(ctx)
}

// RPLWarmStart holds the state restored after a reboot.
type RPLWarmStart struct {
	structured[settings.RPLWarmStart, *settings.RPLWarmStart]
}

// NewRPLWarmStart returns the wrapper for ln.
func NewRPLWarmStart(ln obis.LogicalName, t Transport, opts ...Option) *RPLWarmStart {
	return &RPLWarmStart{structured[settings.RPLWarmStart, *settings.RPLWarmStart]{
		Data:    NewData(ln, t, opts...),
		parse:   settings.ParseRPLWarmStart,
		initial: settings.RPLWarmStartDefinition,
	}}
}

// WarmStart reads the warm start state.
func (r *RPLWarmStart) WarmStart(ctx context.Context) (*settings.RPLWarmStart, error) {
	return r.get(ctx)
}

// SetWarmStart writes the warm start state.
func (r *RPLWarmStart) SetWarmStart(ctx context.Context, w *settings.RPLWarmStart) error {
	return r.set(ctx, w)
}

// RPLInstances lists the joined RPL instances.
type RPLInstances struct {
	listed[settings.RPLInstance, *settings.RPLInstance]
}

// NewRPLInstances returns the wrapper for ln.
func NewRPLInstances(ln obis.LogicalName, t Transport, opts ...Option) *RPLInstances {
	return &RPLInstances{listed[settings.RPLInstance, *settings.RPLInstance]{
		Data:    NewData(ln, t, opts...),
		attr:    ValueAttribute,
		name:    "RPLInstances",
		parse:   settings.ParseRPLInstance,
		initial: settings.RPLInstanceDefinition,
	}}
}

// Instances reads the instance table.
func (r *RPLInstances) Instances(ctx context.Context) ([]settings.RPLInstance, error) {
	return r.get(ctx)
}

// RPLParents lists the candidate parents.
type RPLParents struct {
	listed[settings.RPLParent, *settings.RPLParent]
}

// NewRPLParents returns the wrapper for ln.
func NewRPLParents(ln obis.LogicalName, t Transport, opts ...Option) *RPLParents {
	return &RPLParents{listed[settings.RPLParent, *settings.RPLParent]{
		Data:    NewData(ln, t, opts...),
		attr:    ValueAttribute,
		name:    "RPLParents",
		parse:   settings.ParseRPLParent,
		initial: settings.RPLParentDefinition,
	}}
}

// Parents reads the parent table.
func (r *RPLParents) Parents(ctx context.Context) ([]settings.RPLParent, error) {
	return r.get(ctx)
}

// RPLNeighbors lists the mesh neighbors.
type RPLNeighbors struct {
	listed[settings.RPLNeighbor, *settings.RPLNeighbor]
}

// NewRPLNeighbors returns the wrapper for ln.
func NewRPLNeighbors(ln obis.LogicalName, t Transport, opts ...Option) *RPLNeighbors {
	return &RPLNeighbors{listed[settings.RPLNeighbor, *settings.RPLNeighbor]{
		Data:    NewData(ln, t, opts...),
		attr:    ValueAttribute,
		name:    "RPLNeighbors",
		parse:   settings.ParseRPLNeighbor,
		initial: settings.RPLNeighborDefinition,
	}}
}

// Neighbors reads the neighbor table.
func (r *RPLNeighbors) Neighbors(ctx context.Context) ([]settings.RPLNeighbor, error) {
	return r.get(ctx)
}
