package schema

import (
	"errors"
	"fmt"

	"github.com/ngc-ami/cosem-go/pkg/cosem"
	"github.com/ngc-ami/cosem-go/pkg/definition"
)

// Schema errors.
var (
	ErrNilData      = errors.New("data is nil")
	ErrNotStructure = errors.New("data is not a structure")
	ErrFieldCount   = errors.New("wrong field count")
	ErrFieldType    = errors.New("wrong field type")
	ErrNilPayload   = errors.New("fallback payload is nil")
)

// Field describes one position of a structure.
type Field struct {
	// Name is the display name.
	Name string

	// Type is the canonical tag.
	Type cosem.DataType

	// Fallback accepts an octet string holding the encoded bytes of a
	// date, time or date-time field.
	Fallback bool

	// Nullable accepts null-data in place of Type.
	Nullable bool

	// Source, when positive, is the index Unpack reads this field from
	// instead of its own position.
	Source int

	// Default is the display value when no data is given.
	Default any

	// Element is the schema of array entries.
	Element *Field

	// Struct is the schema of a nested structure.
	Struct *Structure

	// Domain is the enum domain of enum fields.
	Domain *definition.EnumDomain
}

// Structure is an ordered list of fields.
type Structure struct {
	Name   string
	Fields []Field
}

// Arity returns the number of fields.
func (s *Structure) Arity() int {
	return len(s.Fields)
}

// Index returns the position of the named field or -1.
func (s *Structure) Index(name string) int {
	for i, f := range s.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// ParseError reports a structure that does not match its schema.
// Index is -1 for errors that concern the whole structure.
type ParseError struct {
	Structure string
	Field     string
	Index     int
	Err       error
}

func (e *ParseError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %v", e.Structure, e.Err)
	}
	return fmt.Sprintf("%s field %d (%s): %v", e.Structure, e.Index, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// FieldError wraps err as a ParseError for field i.
func (s *Structure) FieldError(i int, err error) error {
	name := ""
	if i >= 0 && i < len(s.Fields) {
		name = s.Fields[i].Name
	}
	return &ParseError{Structure: s.Name, Field: name, Index: i, Err: err}
}

func (s *Structure) structError(err error) error {
	return &ParseError{Structure: s.Name, Index: -1, Err: err}
}

// Unpack validates d against the schema and returns its fields in schema
// order. Fallback octet strings are decoded to their native type.
func (s *Structure) Unpack(d *cosem.Data) (Record, error) {
	if d == nil {
		return Record{}, s.structError(ErrNilData)
	}
	if d.Type != cosem.TypeStructure {
		return Record{}, s.structError(fmt.Errorf("%w: got %s", ErrNotStructure, d.Type))
	}
	if err := d.Validate(); err != nil {
		return Record{}, s.structError(err)
	}

	elems, _ := d.Elements()
	if len(elems) != len(s.Fields) {
		return Record{}, s.structError(fmt.Errorf("%w: expected %d, got %d", ErrFieldCount, len(s.Fields), len(elems)))
	}

	values := make([]cosem.Data, len(s.Fields))
	for i, f := range s.Fields {
		src := i
		if f.Source > 0 {
			src = f.Source
		}
		if src >= len(elems) {
			return Record{}, s.FieldError(i, fmt.Errorf("%w: source index %d", ErrFieldCount, src))
		}

		v, err := f.accept(elems[src])
		if err != nil {
			return Record{}, s.FieldError(i, err)
		}
		values[i] = v
	}
	return Record{schema: s, values: values}, nil
}

// accept checks one value against the field and normalizes fallbacks,
// descending into nested structures and array entries.
func (f *Field) accept(v cosem.Data) (cosem.Data, error) {
	switch {
	case v.Type == f.Type && f.Struct != nil:
		r, err := f.Struct.Unpack(&v)
		if err != nil {
			return cosem.Data{}, err
		}
		return cosem.NewStructure(r.values...), nil

	case v.Type == f.Type && f.Element != nil:
		return f.acceptElements(v)

	case v.Type == f.Type:
		return v, nil

	case f.Nullable && v.IsNull():
		return v, nil

	case f.Fallback && v.Type == cosem.TypeOctetString:
		return decodeFallback(f.Type, v)

	default:
		return cosem.Data{}, fmt.Errorf("%w: expected %s, got %s", ErrFieldType, f.Type, v.Type)
	}
}

func (f *Field) acceptElements(v cosem.Data) (cosem.Data, error) {
	elems, _ := v.Elements()
	out := make([]cosem.Data, len(elems))
	for i, e := range elems {
		n, err := f.Element.accept(e)
		if err != nil {
			return cosem.Data{}, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = n
	}
	return cosem.Data{Type: v.Type, Value: out}, nil
}

func decodeFallback(t cosem.DataType, v cosem.Data) (cosem.Data, error) {
	b, _ := v.Value.([]byte)
	if b == nil {
		return cosem.Data{}, ErrNilPayload
	}

	switch t {
	case cosem.TypeDate:
		date, err := cosem.DateFromBytes(b)
		if err != nil {
			return cosem.Data{}, err
		}
		return cosem.NewDate(date), nil
	case cosem.TypeTime:
		tod, err := cosem.TimeFromBytes(b)
		if err != nil {
			return cosem.Data{}, err
		}
		return cosem.NewTime(tod), nil
	case cosem.TypeDateTime:
		dt, err := cosem.DateTimeFromBytes(b)
		if err != nil {
			return cosem.Data{}, err
		}
		return cosem.NewDateTime(dt), nil
	default:
		return cosem.Data{}, fmt.Errorf("%w: no octet-string fallback for %s", ErrFieldType, t)
	}
}

// Pack builds a structure from values given in schema order. Every value
// must carry the canonical tag of its field (or null-data where allowed).
func (s *Structure) Pack(values ...cosem.Data) (cosem.Data, error) {
	if len(values) != len(s.Fields) {
		return cosem.Data{}, s.structError(fmt.Errorf("%w: expected %d, got %d", ErrFieldCount, len(s.Fields), len(values)))
	}

	for i, f := range s.Fields {
		v := values[i]
		if v.Type != f.Type && !(f.Nullable && v.IsNull()) {
			return cosem.Data{}, s.FieldError(i, fmt.Errorf("%w: expected %s, got %s", ErrFieldType, f.Type, v.Type))
		}
		if err := v.Validate(); err != nil {
			return cosem.Data{}, s.FieldError(i, err)
		}
	}
	return cosem.NewStructure(values...), nil
}
