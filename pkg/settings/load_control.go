package settings

import (
	"github.com/ngc-ami/cosem-go/pkg/cosem"
	"github.com/ngc-ami/cosem-go/pkg/definition"
	"github.com/ngc-ami/cosem-go/pkg/schema"
)

// LoadControlSettingsSchema is the wire layout of LoadControlSettings.
var LoadControlSettingsSchema = &schema.Structure{
	Name: "LoadControlSettings",
	Fields: []schema.Field{
		{Name: "Name", Type: cosem.TypeVisibleString},
		{Name: "ControlMode", Type: cosem.TypeUnsigned},
		{Name: "RandomizationWindow", Type: cosem.TypeLongUnsigned},
		{Name: "NormalState", Type: cosem.TypeUnsigned},
		{Name: "ReconnectMode", Type: cosem.TypeUnsigned},
	},
}

// LoadControlSettings configures the load relay.
type LoadControlSettings struct {
	Name string

	// ControlMode selects which disconnect sources are honored.
	ControlMode uint8

	// RandomizationWindow spreads reconnections, in seconds.
	RandomizationWindow uint16

	NormalState   uint8
	ReconnectMode uint8
}

// ParseLoadControlSettings parses a LoadControlSettings structure.
func ParseLoadControlSettings(d *cosem.Data) (*LoadControlSettings, error) {
	r, err := LoadControlSettingsSchema.Unpack(d)
	if err != nil {
		return nil, err
	}
	return &LoadControlSettings{
		Name:                r.Text(0),
		ControlMode:         r.Uint8(1),
		RandomizationWindow: r.Uint16(2),
		NormalState:         r.Uint8(3),
		ReconnectMode:       r.Uint8(4),
	}, nil
}

func (s *LoadControlSettings) fields() []cosem.Data {
	return []cosem.Data{
		cosem.NewVisibleString(s.Name),
		cosem.NewUnsigned(s.ControlMode),
		cosem.NewLongUnsigned(s.RandomizationWindow),
		cosem.NewUnsigned(s.NormalState),
		cosem.NewUnsigned(s.ReconnectMode),
	}
}

// ToData serializes the settings.
func (s *LoadControlSettings) ToData() (cosem.Data, error) {
	return LoadControlSettingsSchema.Pack(s.fields()...)
}

// ToDefinition returns the settings as a display definition.
func (s *LoadControlSettings) ToDefinition() *definition.Structure {
	return LoadControlSettingsSchema.Definition(s.fields()...)
}

// LoadControlSettingsDefinition returns the default-valued definition.
func LoadControlSettingsDefinition() *definition.Structure {
	return LoadControlSettingsSchema.Definition()
}

// LoadControlStatusSchema is the wire layout of LoadControlStatus.
var LoadControlStatusSchema = &schema.Structure{
	Name: "LoadControlStatus",
	Fields: []schema.Field{
		{Name: "RelayState", Type: cosem.TypeEnum, Domain: RelayStateDomain},
		{Name: "LastChange", Type: cosem.TypeDateTime, Fallback: true},
		{Name: "Reason", Type: cosem.TypeEnum, Domain: LoadControlReasonDomain},
		{Name: "RemainingDelay", Type: cosem.TypeLongUnsigned},
	},
}

// LoadControlStatus reports the current relay state.
type LoadControlStatus struct {
	RelayState RelayState
	LastChange cosem.DateTime
	Reason     LoadControlReason

	// RemainingDelay is the time left before a pending reconnection, in seconds.
	RemainingDelay uint16
}

// ParseLoadControlStatus parses a LoadControlStatus structure.
func ParseLoadControlStatus(d *cosem.Data) (*LoadControlStatus, error) {
	r, err := LoadControlStatusSchema.Unpack(d)
	if err != nil {
		return nil, err
	}
	return &LoadControlStatus{
		RelayState:     RelayState(r.Uint8(0)),
		LastChange:     r.DateTime(1),
		Reason:         LoadControlReason(r.Uint8(2)),
		RemainingDelay: r.Uint16(3),
	}, nil
}

func (s *LoadControlStatus) fields() []cosem.Data {
	return []cosem.Data{
		cosem.NewEnum(uint8(s.RelayState)),
		cosem.NewDateTime(s.LastChange),
		cosem.NewEnum(uint8(s.Reason)),
		cosem.NewLongUnsigned(s.RemainingDelay),
	}
}

// ToData serializes the status.
func (s *LoadControlStatus) ToData() (cosem.Data, error) {
	return LoadControlStatusSchema.Pack(s.fields()...)
}

// ToDefinition returns the status as a display definition.
func (s *LoadControlStatus) ToDefinition() *definition.Structure {
	return LoadControlStatusSchema.Definition(s.fields()...)
}

// LoadControlStatusDefinition returns the default-valued definition.
func LoadControlStatusDefinition() *definition.Structure {
	return LoadControlStatusSchema.Definition()
}
