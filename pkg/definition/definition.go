package definition

import (
	"errors"
	"fmt"

	"github.com/ngc-ami/cosem-go/pkg/cosem"
)

// Definition errors.
var (
	ErrEmptyName           = errors.New("definition name is empty")
	ErrNilElement          = errors.New("array element definition is nil")
	ErrIncompatibleElement = errors.New("array element incompatible with element definition")
	ErrValueType           = errors.New("value cannot be represented as data type")
	ErrNilData             = errors.New("nil data")
)

// UnknownName names the placeholder element definition of an empty array.
const UnknownName = "Unknown"

// Definition is a node of an object definition tree.
// The set of implementations is closed: *Scalar, *Array, *Structure and *Enum.
type Definition interface {
	// Name returns the item name.
	Name() string

	// Type returns the data type the node serializes as.
	Type() cosem.DataType

	// ToData serializes the node. A nil result without error signals absence.
	ToData() (*cosem.Data, error)

	definition()
}

// Scalar is a single tagged value.
type Scalar struct {
	ItemName string
	DataType cosem.DataType
	Value    any
}

// Array is a homogeneous list. Every entry of Elements must be structurally
// equal to Element before it can be serialized.
type Array struct {
	ItemName string
	Element  Definition
	Elements []Definition

	// Absent marks an optional array sent as null-data. ToData emits
	// null-data and the array stays structurally equal to a present one.
	Absent bool
}

// Structure is an ordered list of fields. Position is the field identity on
// the wire.
type Structure struct {
	ItemName string
	Fields   []Definition
}

// Enum is a byte value from a named domain.
type Enum struct {
	ItemName string
	Domain   *EnumDomain
	Value    any
}

// NewScalar creates a scalar definition.
func NewScalar(name string, t cosem.DataType, value any) (*Scalar, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Scalar{ItemName: name, DataType: t, Value: value}, nil
}

// NewArray creates an array definition with the given element schema.
func NewArray(name string, element Definition, elements ...Definition) (*Array, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if element == nil {
		return nil, ErrNilElement
	}
	return &Array{ItemName: name, Element: element, Elements: elements}, nil
}

// NewStructure creates a structure definition.
func NewStructure(name string, fields ...Definition) (*Structure, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Structure{ItemName: name, Fields: fields}, nil
}

// NewEnum creates an enum definition. A nil domain means ByteDomain.
func NewEnum(name string, domain *EnumDomain, value any) (*Enum, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if domain == nil {
		domain = ByteDomain
	}
	return &Enum{ItemName: name, Domain: domain, Value: value}, nil
}

// Unknown returns the placeholder element definition used for arrays whose
// element schema could not be inferred. It only equals another placeholder.
func Unknown() *Scalar {
	return &Scalar{ItemName: UnknownName, DataType: cosem.TypeDontCare}
}

// IsUnknown reports whether d is the placeholder returned by Unknown.
func IsUnknown(d Definition) bool {
	s, ok := d.(*Scalar)
	return ok && s.DataType == cosem.TypeDontCare && s.ItemName == UnknownName
}

func (*Scalar) definition()    {}
func (*Array) definition()     {}
func (*Structure) definition() {}
func (*Enum) definition()      {}

// Name returns the item name.
func (s *Scalar) Name() string { return s.ItemName }

// Name returns the item name.
func (a *Array) Name() string { return a.ItemName }

// Name returns the item name.
func (s *Structure) Name() string { return s.ItemName }

// Name returns the item name.
func (e *Enum) Name() string { return e.ItemName }

// Type returns the declared data type.
func (s *Scalar) Type() cosem.DataType { return s.DataType }

// Type returns TypeArray.
func (*Array) Type() cosem.DataType { return cosem.TypeArray }

// Type returns TypeStructure.
func (*Structure) Type() cosem.DataType { return cosem.TypeStructure }

// Type returns TypeEnum.
func (*Enum) Type() cosem.DataType { return cosem.TypeEnum }

// ToData serializes the scalar. It returns nil when no value is set, unless
// the declared type is null-data. Date, time and date-time values are
// emitted as octet strings holding their encoded bytes.
func (s *Scalar) ToData() (*cosem.Data, error) {
	if s.DataType == cosem.TypeNull {
		d := cosem.NewNull()
		return &d, nil
	}
	if s.Value == nil {
		return nil, nil
	}

	d, err := coerce(s.DataType, s.Value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.ItemName, err)
	}
	return &d, nil
}

// ToData serializes every element after checking it against the element
// definition.
func (a *Array) ToData() (*cosem.Data, error) {
	if a.Element == nil {
		return nil, fmt.Errorf("%s: %w", a.ItemName, ErrNilElement)
	}
	if a.Absent {
		d := cosem.NewNull()
		return &d, nil
	}

	elems := make([]cosem.Data, 0, len(a.Elements))
	for i, e := range a.Elements {
		if !Equal(a.Element, e) {
			return nil, fmt.Errorf("%s element %d: %w", a.ItemName, i, ErrIncompatibleElement)
		}
		d, err := e.ToData()
		if err != nil {
			return nil, fmt.Errorf("%s element %d: %w", a.ItemName, i, err)
		}
		elems = append(elems, orNull(d))
	}

	d := cosem.NewArray(elems...)
	return &d, nil
}

// Append adds elements to the array. When the element definition is still
// the Unknown placeholder it is replaced by the first appended element.
func (a *Array) Append(elems ...Definition) {
	for _, e := range elems {
		if e == nil {
			continue
		}
		if a.Element == nil || IsUnknown(a.Element) {
			a.Element = e
		}
		a.Elements = append(a.Elements, e)
	}
}

// ToData serializes the fields in order. An empty structure yields nil.
// Fields without a value are emitted as null-data so positions are kept.
func (s *Structure) ToData() (*cosem.Data, error) {
	if len(s.Fields) == 0 {
		return nil, nil
	}

	fields := make([]cosem.Data, len(s.Fields))
	for i, f := range s.Fields {
		if f == nil {
			fields[i] = cosem.NewNull()
			continue
		}
		d, err := f.ToData()
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", s.ItemName, f.Name(), err)
		}
		fields[i] = orNull(d)
	}

	d := cosem.NewStructure(fields...)
	return &d, nil
}

// Field returns the first field with the given name.
func (s *Structure) Field(name string) (Definition, bool) {
	for _, f := range s.Fields {
		if f != nil && f.Name() == name {
			return f, true
		}
	}
	return nil, false
}

// ToData serializes the enum value as a byte. String values are parsed
// through the domain.
func (e *Enum) ToData() (*cosem.Data, error) {
	if e.Value == nil {
		return nil, nil
	}

	if s, ok := e.Value.(string); ok {
		v, err := e.domain().Parse(s)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.ItemName, err)
		}
		d := cosem.NewEnum(v)
		return &d, nil
	}

	d, err := coerce(cosem.TypeEnum, e.Value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.ItemName, err)
	}
	return &d, nil
}

// Byte returns the enum value as a byte.
func (e *Enum) Byte() (uint8, bool) {
	d, err := e.ToData()
	if err != nil || d == nil {
		return 0, false
	}
	return d.Value.(uint8), true
}

func (e *Enum) domain() *EnumDomain {
	if e.Domain == nil {
		return ByteDomain
	}
	return e.Domain
}

// Equal reports whether two definitions are structurally compatible.
// Values are never compared. A null-data scalar only equals another
// null-data scalar.
func Equal(a, b Definition) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch x := a.(type) {
	case *Scalar:
		y, ok := b.(*Scalar)
		return ok && x.DataType == y.DataType
	case *Array:
		y, ok := b.(*Array)
		return ok && Equal(x.Element, y.Element)
	case *Structure:
		y, ok := b.(*Structure)
		if !ok || len(x.Fields) != len(y.Fields) {
			return false
		}
		for i := range x.Fields {
			if !Equal(x.Fields[i], y.Fields[i]) {
				return false
			}
		}
		return true
	case *Enum:
		y, ok := b.(*Enum)
		return ok && x.domain().Name == y.domain().Name
	default:
		return false
	}
}

func orNull(d *cosem.Data) cosem.Data {
	if d == nil {
		return cosem.NewNull()
	}
	return *d
}
