package settings

import (
	"github.com/ngc-ami/cosem-go/pkg/cosem"
	"github.com/ngc-ami/cosem-go/pkg/definition"
	"github.com/ngc-ami/cosem-go/pkg/schema"
)

// EnergizationStartTimeSettingSchema is the wire layout of
// EnergizationStartTimeSetting.
var EnergizationStartTimeSettingSchema = &schema.Structure{
	Name: "EnergizationStartTimeSetting",
	Fields: []schema.Field{
		{Name: "Enabled", Type: cosem.TypeBoolean},
		{Name: "Mode", Type: cosem.TypeEnum, Domain: EnergizationModeDomain},
		{Name: "StartTime", Type: cosem.TypeTime, Fallback: true},
	},
}

// EnergizationStartTimeSetting schedules the daily energization time.
type EnergizationStartTimeSetting struct {
	Enabled   bool
	Mode      EnergizationMode
	StartTime cosem.Time
}

// ParseEnergizationStartTimeSetting parses an EnergizationStartTimeSetting.
func ParseEnergizationStartTimeSetting(d *cosem.Data) (*EnergizationStartTimeSetting, error) {
	r, err := EnergizationStartTimeSettingSchema.Unpack(d)
	if err != nil {
		return nil, err
	}
	return &EnergizationStartTimeSetting{
		Enabled:   r.Bool(0),
		Mode:      EnergizationMode(r.Uint8(1)),
		StartTime: r.Time(2),
	}, nil
}

func (s *EnergizationStartTimeSetting) fields() []cosem.Data {
	return []cosem.Data{
		cosem.NewBoolean(s.Enabled),
		cosem.NewEnum(uint8(s.Mode)),
		cosem.NewTime(s.StartTime),
	}
}

// ToData serializes the setting.
func (s *EnergizationStartTimeSetting) ToData() (cosem.Data, error) {
	return EnergizationStartTimeSettingSchema.Pack(s.fields()...)
}

// ToDefinition returns the setting as a display definition.
func (s *EnergizationStartTimeSetting) ToDefinition() *definition.Structure {
	return EnergizationStartTimeSettingSchema.Definition(s.fields()...)
}

// EnergizationStartTimeSettingDefinition returns the default-valued definition.
func EnergizationStartTimeSettingDefinition() *definition.Structure {
	return EnergizationStartTimeSettingSchema.Definition()
}

// IndividualEnergizationSettingSchema is the wire layout of
// IndividualEnergizationSetting.
var IndividualEnergizationSettingSchema = &schema.Structure{
	Name: "IndividualEnergizationSetting",
	Fields: []schema.Field{
		{Name: "StartDate", Type: cosem.TypeDate, Fallback: true},
		{Name: "StartTime", Type: cosem.TypeTime, Fallback: true},
	},
}

// IndividualEnergizationSetting energizes once at a given date and time.
// Either may contain wildcards.
type IndividualEnergizationSetting struct {
	StartDate cosem.Date
	StartTime cosem.Time
}

// ParseIndividualEnergizationSetting parses an IndividualEnergizationSetting.
func ParseIndividualEnergizationSetting(d *cosem.Data) (*IndividualEnergizationSetting, error) {
	r, err := IndividualEnergizationSettingSchema.Unpack(d)
	if err != nil {
		return nil, err
	}
	return &IndividualEnergizationSetting{
		StartDate: r.Date(0),
		StartTime: r.Time(1),
	}, nil
}

func (s *IndividualEnergizationSetting) fields() []cosem.Data {
	return []cosem.Data{
		cosem.NewDate(s.StartDate),
		cosem.NewTime(s.StartTime),
	}
}

// ToData serializes the setting.
func (s *IndividualEnergizationSetting) ToData() (cosem.Data, error) {
	return IndividualEnergizationSettingSchema.Pack(s.fields()...)
}

// ToDefinition returns the setting as a display definition.
func (s *IndividualEnergizationSetting) ToDefinition() *definition.Structure {
	return IndividualEnergizationSettingSchema.Definition(s.fields()...)
}

// IndividualEnergizationSettingDefinition returns the default-valued definition.
func IndividualEnergizationSettingDefinition() *definition.Structure {
	return IndividualEnergizationSettingSchema.Definition()
}

// MultiStageEnergizationTimesSchema is the wire layout of
// MultiStageEnergizationTimes.
var MultiStageEnergizationTimesSchema = &schema.Structure{
	Name: "MultiStageEnergizationTimes",
	Fields: []schema.Field{
		{Name: "StartTime", Type: cosem.TypeTime, Fallback: true},
		{Name: "EndTime", Type: cosem.TypeTime, Fallback: true},
	},
}

// MultiStageEnergizationTimes is the window of one energization stage.
type MultiStageEnergizationTimes struct {
	StartTime cosem.Time
	EndTime   cosem.Time
}

// ParseMultiStageEnergizationTimes parses a MultiStageEnergizationTimes.
func ParseMultiStageEnergizationTimes(d *cosem.Data) (*MultiStageEnergizationTimes, error) {
	r, err := MultiStageEnergizationTimesSchema.Unpack(d)
	if err != nil {
		return nil, err
	}
	return &MultiStageEnergizationTimes{
		StartTime: r.Time(0),
		EndTime:   r.Time(1),
	}, nil
}

func (s *MultiStageEnergizationTimes) fields() []cosem.Data {
	return []cosem.Data{
		cosem.NewTime(s.StartTime),
		cosem.NewTime(s.EndTime),
	}
}

// ToData serializes the stage window.
func (s *MultiStageEnergizationTimes) ToData() (cosem.Data, error) {
	return MultiStageEnergizationTimesSchema.Pack(s.fields()...)
}

// ToDefinition returns the stage window as a display definition.
func (s *MultiStageEnergizationTimes) ToDefinition() *definition.Structure {
	return MultiStageEnergizationTimesSchema.Definition(s.fields()...)
}

// MultiStageEnergizationTimesDefinition returns the default-valued definition.
func MultiStageEnergizationTimesDefinition() *definition.Structure {
	return MultiStageEnergizationTimesSchema.Definition()
}

// MultiStageEnergizationSettingSchema is the wire layout of
// MultiStageEnergizationSetting.
var MultiStageEnergizationSettingSchema = &schema.Structure{
	Name: "MultiStageEnergizationSetting",
	Fields: []schema.Field{
		{Name: "Enabled", Type: cosem.TypeBoolean},
		{Name: "StageCount", Type: cosem.TypeUnsigned},
		{Name: "StageDelay", Type: cosem.TypeLongUnsigned},
		{Name: "Stages", Type: cosem.TypeArray, Element: &schema.Field{
			Name:   "Stage",
			Type:   cosem.TypeStructure,
			Struct: MultiStageEnergizationTimesSchema,
		}},
	},
}

// MultiStageEnergizationSetting re-energizes in several timed stages.
type MultiStageEnergizationSetting struct {
	Enabled    bool
	StageCount uint8

	// StageDelay is the pause between stages, in seconds.
	StageDelay uint16

	Stages []MultiStageEnergizationTimes
}

// ParseMultiStageEnergizationSetting parses a MultiStageEnergizationSetting.
func ParseMultiStageEnergizationSetting(d *cosem.Data) (*MultiStageEnergizationSetting, error) {
	r, err := MultiStageEnergizationSettingSchema.Unpack(d)
	if err != nil {
		return nil, err
	}

	s := &MultiStageEnergizationSetting{
		Enabled:    r.Bool(0),
		StageCount: r.Uint8(1),
		StageDelay: r.Uint16(2),
	}
	for _, e := range r.Elements(3) {
		stage, err := ParseMultiStageEnergizationTimes(&e)
		if err != nil {
			return nil, MultiStageEnergizationSettingSchema.FieldError(3, err)
		}
		s.Stages = append(s.Stages, *stage)
	}
	return s, nil
}

func (s *MultiStageEnergizationSetting) fields() []cosem.Data {
	stages := make([]cosem.Data, len(s.Stages))
	for i := range s.Stages {
		stages[i] = cosem.NewStructure(s.Stages[i].fields()...)
	}
	return []cosem.Data{
		cosem.NewBoolean(s.Enabled),
		cosem.NewUnsigned(s.StageCount),
		cosem.NewLongUnsigned(s.StageDelay),
		cosem.NewArray(stages...),
	}
}

// ToData serializes the setting.
func (s *MultiStageEnergizationSetting) ToData() (cosem.Data, error) {
	return MultiStageEnergizationSettingSchema.Pack(s.fields()...)
}

// ToDefinition returns the setting as a display definition.
func (s *MultiStageEnergizationSetting) ToDefinition() *definition.Structure {
	return MultiStageEnergizationSettingSchema.Definition(s.fields()...)
}

// MultiStageEnergizationSettingDefinition returns the default-valued definition.
func MultiStageEnergizationSettingDefinition() *definition.Structure {
	return MultiStageEnergizationSettingSchema.Definition()
}
