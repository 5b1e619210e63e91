package settings

import (
	"github.com/ngc-ami/cosem-go/pkg/cosem"
	"github.com/ngc-ami/cosem-go/pkg/definition"
	"github.com/ngc-ami/cosem-go/pkg/schema"
)

// RPLConfigSchema is the wire layout of RPLConfig.
var RPLConfigSchema = &schema.Structure{
	Name: "RPLConfig",
	Fields: []schema.Field{
		{Name: "DIOIntervalMin", Type: cosem.TypeUnsigned},
		{Name: "DIOIntervalDoublings", Type: cosem.TypeUnsigned},
		{Name: "DIORedundancyConstant", Type: cosem.TypeUnsigned},
		{Name: "MaxRankIncrease", Type: cosem.TypeLongUnsigned},
		{Name: "MinHopRankIncrease", Type: cosem.TypeLongUnsigned},
		{Name: "DefaultLifetime", Type: cosem.TypeUnsigned},
		{Name: "LifetimeUnit", Type: cosem.TypeLongUnsigned},
		{Name: "DAODelay", Type: cosem.TypeLongUnsigned},
		{Name: "DAOAckTimeout", Type: cosem.TypeLongUnsigned},
		{Name: "DAORetries", Type: cosem.TypeUnsigned},
		{Name: "DISInterval", Type: cosem.TypeLongUnsigned},
		{Name: "ParentSwitchThreshold", Type: cosem.TypeLongUnsigned},
		{Name: "MaxParents", Type: cosem.TypeUnsigned},
		{Name: "MaxNeighbors", Type: cosem.TypeLongUnsigned},
		{Name: "MaxInstances", Type: cosem.TypeUnsigned},
		{Name: "ObjectiveCodePoint", Type: cosem.TypeLongUnsigned},
		{Name: "PathControlSize", Type: cosem.TypeUnsigned},
		{Name: "DTSNIncrementInterval", Type: cosem.TypeDoubleLongUnsigned},
		{Name: "LinkMetricThreshold", Type: cosem.TypeLongUnsigned},
		{Name: "RouteLifetime", Type: cosem.TypeDoubleLongUnsigned},
		{Name: "LocalRepairDelay", Type: cosem.TypeLongUnsigned},
		{Name: "GlobalRepairInterval", Type: cosem.TypeDoubleLongUnsigned},
	},
}

// RPLConfig holds the RPL routing parameters of the mesh interface.
type RPLConfig struct {
	DIOIntervalMin        uint8
	DIOIntervalDoublings  uint8
	DIORedundancyConstant uint8
	MaxRankIncrease       uint16
	MinHopRankIncrease    uint16
	DefaultLifetime       uint8
	LifetimeUnit          uint16
	DAODelay              uint16
	DAOAckTimeout         uint16
	DAORetries            uint8
	DISInterval           uint16
	ParentSwitchThreshold uint16
	MaxParents            uint8
	MaxNeighbors          uint16
	MaxInstances          uint8
	ObjectiveCodePoint    uint16
	PathControlSize       uint8
	DTSNIncrementInterval uint32
	LinkMetricThreshold   uint16
	RouteLifetime         uint32
	LocalRepairDelay      uint16
	GlobalRepairInterval  uint32
}

// ParseRPLConfig parses an RPLConfig structure.
func ParseRPLConfig(d *cosem.Data) (*RPLConfig, error) {
	r, err := RPLConfigSchema.Unpack(d)
	if err != nil {
		return nil, err
	}
	return &RPLConfig{
		DIOIntervalMin:        r.Uint8(0),
		DIOIntervalDoublings:  r.Uint8(1),
		DIORedundancyConstant: r.Uint8(2),
		MaxRankIncrease:       r.Uint16(3),
		MinHopRankIncrease:    r.Uint16(4),
		DefaultLifetime:       r.Uint8(5),
		LifetimeUnit:          r.Uint16(6),
		DAODelay:              r.Uint16(7),
		DAOAckTimeout:         r.Uint16(8),
		DAORetries:            r.Uint8(9),
		DISInterval:           r.Uint16(10),
		ParentSwitchThreshold: r.Uint16(11),
		MaxParents:            r.Uint8(12),
		MaxNeighbors:          r.Uint16(13),
		MaxInstances:          r.Uint8(14),
		ObjectiveCodePoint:    r.Uint16(15),
		PathControlSize:       r.Uint8(16),
		DTSNIncrementInterval: r.Uint32(17),
		LinkMetricThreshold:   r.Uint16(18),
		RouteLifetime:         r.Uint32(19),
		LocalRepairDelay:      r.Uint16(20),
		GlobalRepairInterval:  r.Uint32(21),
	}, nil
}

func (c *RPLConfig) fields() []cosem.Data {
	return []cosem.Data{
		cosem.NewUnsigned(c.DIOIntervalMin),
		cosem.NewUnsigned(c.DIOIntervalDoublings),
		cosem.NewUnsigned(c.DIORedundancyConstant),
		cosem.NewLongUnsigned(c.MaxRankIncrease),
		cosem.NewLongUnsigned(c.MinHopRankIncrease),
		cosem.NewUnsigned(c.DefaultLifetime),
		cosem.NewLongUnsigned(c.LifetimeUnit),
		cosem.NewLongUnsigned(c.DAODelay),
		cosem.NewLongUnsigned(c.DAOAckTimeout),
		cosem.NewUnsigned(c.DAORetries),
		cosem.NewLongUnsigned(c.DISInterval),
		cosem.NewLongUnsigned(c.ParentSwitchThreshold),
		cosem.NewUnsigned(c.MaxParents),
		cosem.NewLongUnsigned(c.MaxNeighbors),
		cosem.NewUnsigned(c.MaxInstances),
		cosem.NewLongUnsigned(c.ObjectiveCodePoint),
		cosem.NewUnsigned(c.PathControlSize),
		cosem.NewDoubleLongUnsigned(c.DTSNIncrementInterval),
		cosem.NewLongUnsigned(c.LinkMetricThreshold),
		cosem.NewDoubleLongUnsigned(c.RouteLifetime),
		cosem.NewLongUnsigned(c.LocalRepairDelay),
		cosem.NewDoubleLongUnsigned(c.GlobalRepairInterval),
	}
}

// ToData serializes the configuration.
func (c *RPLConfig) ToData() (cosem.Data, error) {
	return RPLConfigSchema.Pack(c.fields()...)
}

// ToDefinition returns the configuration as a display definition.
func (c *RPLConfig) ToDefinition() *definition.Structure {
	return RPLConfigSchema.Definition(c.fields()...)
}

// RPLConfigDefinition returns the default-valued definition.
func RPLConfigDefinition() *definition.Structure {
	return RPLConfigSchema.Definition()
}

// RPLStatsSchema is the wire layout of RPLStats.
var RPLStatsSchema = &schema.Structure{
	Name: "RPLStats",
	Fields: []schema.Field{
		{Name: "DIOSent", Type: cosem.TypeDoubleLongUnsigned},
		{Name: "DIOReceived", Type: cosem.TypeDoubleLongUnsigned},
		{Name: "DISSent", Type: cosem.TypeDoubleLongUnsigned},
		{Name: "DISReceived", Type: cosem.TypeDoubleLongUnsigned},
		{Name: "DAOSent", Type: cosem.TypeDoubleLongUnsigned},
		{Name: "DAOReceived", Type: cosem.TypeDoubleLongUnsigned},
		{Name: "DAOAckSent", Type: cosem.TypeDoubleLongUnsigned},
		{Name: "DAOAckReceived", Type: cosem.TypeDoubleLongUnsigned},
		{Name: "ParentChanges", Type: cosem.TypeDoubleLongUnsigned},
		{Name: "LocalRepairs", Type: cosem.TypeDoubleLongUnsigned},
		{Name: "GlobalRepairs", Type: cosem.TypeDoubleLongUnsigned},
		{Name: "MalformedMessages", Type: cosem.TypeDoubleLongUnsigned},
		{Name: "CurrentRank", Type: cosem.TypeLongUnsigned},
	},
}

// RPLStats are the RPL message counters of the mesh interface.
type RPLStats struct {
	DIOSent           uint32
	DIOReceived       uint32
	DISSent           uint32
	DISReceived       uint32
	DAOSent           uint32
	DAOReceived       uint32
	DAOAckSent        uint32
	DAOAckReceived    uint32
	ParentChanges     uint32
	LocalRepairs      uint32
	GlobalRepairs     uint32
	MalformedMessages uint32
	CurrentRank       uint16
}

// ParseRPLStats parses an RPLStats structure.
func ParseRPLStats(d *cosem.Data) (*RPLStats, error) {
	r, err := RPLStatsSchema.Unpack(d)
	if err != nil {
		return nil, err
	}
	return &RPLStats{
		DIOSent:           r.Uint32(0),
		DIOReceived:       r.Uint32(1),
		DISSent:           r.Uint32(2),
		DISReceived:       r.Uint32(3),
		DAOSent:           r.Uint32(4),
		DAOReceived:       r.Uint32(5),
		DAOAckSent:        r.Uint32(6),
		DAOAckReceived:    r.Uint32(7),
		ParentChanges:     r.Uint32(8),
		LocalRepairs:      r.Uint32(9),
		GlobalRepairs:     r.Uint32(10),
		MalformedMessages: r.Uint32(11),
		CurrentRank:       r.Uint16(12),
	}, nil
}

func (s *RPLStats) fields() []cosem.Data {
	return []cosem.Data{
		cosem.NewDoubleLongUnsigned(s.DIOSent),
		cosem.NewDoubleLongUnsigned(s.DIOReceived),
		cosem.NewDoubleLongUnsigned(s.DISSent),
		cosem.NewDoubleLongUnsigned(s.DISReceived),
		cosem.NewDoubleLongUnsigned(s.DAOSent),
		cosem.NewDoubleLongUnsigned(s.DAOReceived),
		cosem.NewDoubleLongUnsigned(s.DAOAckSent),
		cosem.NewDoubleLongUnsigned(s.DAOAckReceived),
		cosem.NewDoubleLongUnsigned(s.ParentChanges),
		cosem.NewDoubleLongUnsigned(s.LocalRepairs),
		cosem.NewDoubleLongUnsigned(s.GlobalRepairs),
		cosem.NewDoubleLongUnsigned(s.MalformedMessages),
		cosem.NewLongUnsigned(s.CurrentRank),
	}
}

// ToData serializes the counters.
func (s *RPLStats) ToData() (cosem.Data, error) {
	return RPLStatsSchema.Pack(s.fields()...)
}

// ToDefinition returns the counters as a display definition.
func (s *RPLStats) ToDefinition() *definition.Structure {
	return RPLStatsSchema.Definition(s.fields()...)
}

// RPLStatsDefinition returns the default-valued definition.
func RPLStatsDefinition() *definition.Structure {
	return RPLStatsSchema.Definition()
}

// RPLInstanceSchema is the wire layout of RPLInstance.
//
// Rank, LocalRepairs and GlobalRepairs are read from position 3, the same
// position as DodagLastChanged. Deployed meters are parsed this way and the
// intended layout is unconfirmed, so ToData still writes positions 0..6 and
// a parse of ToData's output does not restore those three fields.
var RPLInstanceSchema = &schema.Structure{
	Name: "RPLInstance",
	Fields: []schema.Field{
		{Name: "InstanceID", Type: cosem.TypeUnsigned},
		{Name: "DodagID", Type: cosem.TypeOctetString},
		{Name: "DodagVersion", Type: cosem.TypeUnsigned},
		{Name: "DodagLastChanged", Type: cosem.TypeDoubleLongUnsigned},
		{Name: "Rank", Type: cosem.TypeDoubleLongUnsigned, Source: 3},
		{Name: "LocalRepairs", Type: cosem.TypeDoubleLongUnsigned, Source: 3},
		{Name: "GlobalRepairs", Type: cosem.TypeDoubleLongUnsigned, Source: 3},
	},
}

// RPLInstance describes one RPL instance the node participates in.
type RPLInstance struct {
	InstanceID       uint8
	DodagID          []byte
	DodagVersion     uint8
	DodagLastChanged uint32
	Rank             uint32
	LocalRepairs     uint32
	GlobalRepairs    uint32
}

// ParseRPLInstance parses an RPLInstance structure.
func ParseRPLInstance(d *cosem.Data) (*RPLInstance, error) {
	r, err := RPLInstanceSchema.Unpack(d)
	if err != nil {
		return nil, err
	}
	return &RPLInstance{
		InstanceID:       r.Uint8(0),
		DodagID:          r.Bytes(1),
		DodagVersion:     r.Uint8(2),
		DodagLastChanged: r.Uint32(3),
		Rank:             r.Uint32(4),
		LocalRepairs:     r.Uint32(5),
		GlobalRepairs:    r.Uint32(6),
	}, nil
}

func (i *RPLInstance) fields() []cosem.Data {
	return []cosem.Data{
		cosem.NewUnsigned(i.InstanceID),
		cosem.NewOctetString(orEmpty(i.DodagID)),
		cosem.NewUnsigned(i.DodagVersion),
		cosem.NewDoubleLongUnsigned(i.DodagLastChanged),
		cosem.NewDoubleLongUnsigned(i.Rank),
		cosem.NewDoubleLongUnsigned(i.LocalRepairs),
		cosem.NewDoubleLongUnsigned(i.GlobalRepairs),
	}
}

// ToData serializes the instance.
func (i *RPLInstance) ToData() (cosem.Data, error) {
	return RPLInstanceSchema.Pack(i.fields()...)
}

// ToDefinition returns the instance as a display definition.
func (i *RPLInstance) ToDefinition() *definition.Structure {
	return RPLInstanceSchema.Definition(i.fields()...)
}

// RPLInstanceDefinition returns the default-valued definition.
func RPLInstanceDefinition() *definition.Structure {
	return RPLInstanceSchema.Definition()
}

// RPLWarmStartSchema is the wire layout of RPLWarmStart.
var RPLWarmStartSchema = &schema.Structure{
	Name: "RPLWarmStart",
	Fields: []schema.Field{
		{Name: "InstanceID", Type: cosem.TypeUnsigned},
		{Name: "DodagVersion", Type: cosem.TypeUnsigned},
		{Name: "BestParents", Type: cosem.TypeArray, Element: &schema.Field{
			Name: "ParentID",
			Type: cosem.TypeOctetString,
		}},
		{Name: "Rank", Type: cosem.TypeLongUnsigned},
		{Name: "DTSN", Type: cosem.TypeUnsigned},
		{Name: "SavedAt", Type: cosem.TypeDateTime, Fallback: true},
	},
}

// RPLWarmStart is the routing state saved for a fast rejoin after restart.
type RPLWarmStart struct {
	InstanceID   uint8
	DodagVersion uint8
	BestParents  [][]byte
	Rank         uint16
	DTSN         uint8
	SavedAt      cosem.DateTime
}

// ParseRPLWarmStart parses an RPLWarmStart structure.
func ParseRPLWarmStart(d *cosem.Data) (*RPLWarmStart, error) {
	r, err := RPLWarmStartSchema.Unpack(d)
	if err != nil {
		return nil, err
	}

	w := &RPLWarmStart{
		InstanceID:   r.Uint8(0),
		DodagVersion: r.Uint8(1),
		Rank:         r.Uint16(3),
		DTSN:         r.Uint8(4),
		SavedAt:      r.DateTime(5),
	}
	for _, e := range r.Elements(2) {
		id, _ := e.Value.([]byte)
		w.BestParents = append(w.BestParents, id)
	}
	return w, nil
}

func (w *RPLWarmStart) fields() []cosem.Data {
	parents := make([]cosem.Data, len(w.BestParents))
	for i, id := range w.BestParents {
		parents[i] = cosem.NewOctetString(orEmpty(id))
	}
	return []cosem.Data{
		cosem.NewUnsigned(w.InstanceID),
		cosem.NewUnsigned(w.DodagVersion),
		cosem.NewArray(parents...),
		cosem.NewLongUnsigned(w.Rank),
		cosem.NewUnsigned(w.DTSN),
		cosem.NewDateTime(w.SavedAt),
	}
}

// ToData serializes the warm start state.
func (w *RPLWarmStart) ToData() (cosem.Data, error) {
	return RPLWarmStartSchema.Pack(w.fields()...)
}

// ToDefinition returns the warm start state as a display definition.
func (w *RPLWarmStart) ToDefinition() *definition.Structure {
	return RPLWarmStartSchema.Definition(w.fields()...)
}

// RPLWarmStartDefinition returns the default-valued definition.
func RPLWarmStartDefinition() *definition.Structure {
	return RPLWarmStartSchema.Definition()
}

// RPLParentSchema is the wire layout of RPLParent.
var RPLParentSchema = &schema.Structure{
	Name: "RPLParent",
	Fields: []schema.Field{
		{Name: "Address", Type: cosem.TypeOctetString},
		{Name: "Rank", Type: cosem.TypeLongUnsigned},
		{Name: "LinkMetric", Type: cosem.TypeLongUnsigned},
		{Name: "Preferred", Type: cosem.TypeBoolean},
		{Name: "LastHeard", Type: cosem.TypeDateTime, Fallback: true},
	},
}

// RPLParent is an entry of the RPL parent set.
type RPLParent struct {
	Address    []byte
	Rank       uint16
	LinkMetric uint16
	Preferred  bool
	LastHeard  cosem.DateTime
}

// ParseRPLParent parses an RPLParent structure.
func ParseRPLParent(d *cosem.Data) (*RPLParent, error) {
	r, err := RPLParentSchema.Unpack(d)
	if err != nil {
		return nil, err
	}
	return &RPLParent{
		Address:    r.Bytes(0),
		Rank:       r.Uint16(1),
		LinkMetric: r.Uint16(2),
		Preferred:  r.Bool(3),
		LastHeard:  r.DateTime(4),
	}, nil
}

func (p *RPLParent) fields() []cosem.Data {
	return []cosem.Data{
		cosem.NewOctetString(orEmpty(p.Address)),
		cosem.NewLongUnsigned(p.Rank),
		cosem.NewLongUnsigned(p.LinkMetric),
		cosem.NewBoolean(p.Preferred),
		cosem.NewDateTime(p.LastHeard),
	}
}

// ToData serializes the parent entry.
func (p *RPLParent) ToData() (cosem.Data, error) {
	return RPLParentSchema.Pack(p.fields()...)
}

// ToDefinition returns the parent entry as a display definition.
func (p *RPLParent) ToDefinition() *definition.Structure {
	return RPLParentSchema.Definition(p.fields()...)
}

// RPLParentDefinition returns the default-valued definition.
func RPLParentDefinition() *definition.Structure {
	return RPLParentSchema.Definition()
}

// RPLNeighborSchema is the wire layout of RPLNeighbor.
var RPLNeighborSchema = &schema.Structure{
	Name: "RPLNeighbor",
	Fields: []schema.Field{
		{Name: "Address", Type: cosem.TypeOctetString},
		{Name: "LinkQuality", Type: cosem.TypeUnsigned},
		{Name: "RSSI", Type: cosem.TypeInteger},
		{Name: "ETX", Type: cosem.TypeLongUnsigned},
	},
}

// RPLNeighbor is an entry of the neighbor table.
type RPLNeighbor struct {
	Address     []byte
	LinkQuality uint8

	// RSSI is the received signal strength in dBm.
	RSSI int8

	ETX uint16
}

// ParseRPLNeighbor parses an RPLNeighbor structure.
func ParseRPLNeighbor(d *cosem.Data) (*RPLNeighbor, error) {
	r, err := RPLNeighborSchema.Unpack(d)
	if err != nil {
		return nil, err
	}
	return &RPLNeighbor{
		Address:     r.Bytes(0),
		LinkQuality: r.Uint8(1),
		RSSI:        r.Int8(2),
		ETX:         r.Uint16(3),
	}, nil
}

func (n *RPLNeighbor) fields() []cosem.Data {
	return []cosem.Data{
		cosem.NewOctetString(orEmpty(n.Address)),
		cosem.NewUnsigned(n.LinkQuality),
		cosem.NewInteger(n.RSSI),
		cosem.NewLongUnsigned(n.ETX),
	}
}

// ToData serializes the neighbor entry.
func (n *RPLNeighbor) ToData() (cosem.Data, error) {
	return RPLNeighborSchema.Pack(n.fields()...)
}

// ToDefinition returns the neighbor entry as a display definition.
func (n *RPLNeighbor) ToDefinition() *definition.Structure {
	return RPLNeighborSchema.Definition(n.fields()...)
}

// RPLNeighborDefinition returns the default-valued definition.
func RPLNeighborDefinition() *definition.Structure {
	return RPLNeighborSchema.Definition()
}
