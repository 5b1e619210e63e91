package simmeter

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/validator.v2"
	"gopkg.in/yaml.v3"

	"github.com/ngc-ami/cosem-go/pkg/cosem"
	"github.com/ngc-ami/cosem-go/pkg/ic"
	"github.com/ngc-ami/cosem-go/pkg/obis"
)

// Fixture describes the object table of a simulated meter.
type Fixture struct {
	// Disconnected starts the meter in the disconnected state.
	Disconnected bool `yaml:"disconnected"`

	Objects []ObjectFixture `yaml:"objects" validate:"min=1"`
}

// ObjectFixture describes one object. Attribute values are hex encoded
// A-XDR; whitespace inside the hex is ignored.
type ObjectFixture struct {
	LogicalName  string          `yaml:"ln" validate:"nonzero"`
	Class        uint16          `yaml:"class" validate:"nonzero"`
	Attributes   map[int8]string `yaml:"attributes"`
	GetResult    uint8           `yaml:"get_result"`
	SetResult    uint8           `yaml:"set_result"`
	ActionResult uint8           `yaml:"action_result"`
}

// ParseFixture parses and validates a fixture from YAML bytes.
func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, &LoadError{
			Message: "failed to parse YAML",
			Cause:   err,
		}
	}

	if err := validator.Validate(f); err != nil {
		return nil, &LoadError{
			Message: "fixture validation failed",
			Cause:   fmt.Errorf("%w: %v", ErrInvalidFixture, err),
		}
	}
	for i, o := range f.Objects {
		if err := validator.Validate(o); err != nil {
			return nil, &LoadError{
				Message: fmt.Sprintf("object %d validation failed", i),
				Cause:   fmt.Errorf("%w: %v", ErrInvalidFixture, err),
			}
		}
	}

	return &f, nil
}

// LoadFixture loads a fixture from a file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			File:    path,
			Message: "failed to read file",
			Cause:   err,
		}
	}

	f, err := ParseFixture(data)
	if err != nil {
		if le, ok := err.(*LoadError); ok {
			le.File = path
			return nil, le
		}
		return nil, &LoadError{File: path, Message: err.Error()}
	}
	return f, nil
}

// Apply installs the fixture objects into m. Values are decoded before
// anything is stored, so a failing fixture leaves m unchanged.
func (f *Fixture) Apply(m *Meter) error {
	type entry struct {
		key   Key
		attr  int8
		value cosem.Data
	}

	var entries []entry
	keys := make([]Key, len(f.Objects))
	for i, o := range f.Objects {
		ln, err := obis.Parse(o.LogicalName)
		if err != nil {
			return &LoadError{
				Message: fmt.Sprintf("object %d", i),
				Cause:   fmt.Errorf("%w: %v", ErrInvalidFixture, err),
			}
		}
		keys[i] = Key{ClassID: o.Class, LogicalName: ln}

		for attr, s := range o.Attributes {
			v, err := decodeHex(s)
			if err != nil {
				return &LoadError{
					Message: fmt.Sprintf("%s attribute %d", o.LogicalName, attr),
					Cause:   fmt.Errorf("%w: %v", ErrInvalidFixture, err),
				}
			}
			entries = append(entries, entry{key: keys[i], attr: attr, value: v})
		}
	}

	for _, e := range entries {
		m.Put(e.key.ClassID, e.key.LogicalName, e.attr, e.value)
	}
	for i, o := range f.Objects {
		k := keys[i]
		if len(o.Attributes) == 0 {
			m.Define(k.ClassID, k.LogicalName)
		}
		if o.GetResult != 0 {
			m.InjectGetResult(k.ClassID, k.LogicalName, ic.AccessResult(o.GetResult))
		}
		if o.SetResult != 0 {
			m.InjectSetResult(k.ClassID, k.LogicalName, ic.AccessResult(o.SetResult))
		}
		if o.ActionResult != 0 {
			m.InjectActionResult(k.ClassID, k.LogicalName, ic.ActionResult(o.ActionResult))
		}
	}

	if f.Disconnected {
		m.Disconnect()
	}
	return nil
}

// Load creates a meter from a fixture file.
func Load(path string, logger *slog.Logger) (*Meter, error) {
	f, err := LoadFixture(path)
	if err != nil {
		return nil, err
	}

	m := New(logger)
	if err := f.Apply(m); err != nil {
		if le, ok := err.(*LoadError); ok {
			le.File = path
		}
		return nil, err
	}
	m.logger.Debug("fixture loaded", "file", path, "objects", len(f.Objects))
	return m, nil
}

func decodeHex(s string) (cosem.Data, error) {
	b, err := hex.DecodeString(strings.Join(strings.Fields(s), ""))
	if err != nil {
		return cosem.Data{}, err
	}
	return cosem.Decode(b)
}
