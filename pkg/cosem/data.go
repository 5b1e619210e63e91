package cosem

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Data errors.
var (
	ErrShapeMismatch = errors.New("value shape does not match data type")
	ErrUnknownType   = errors.New("unknown data type")
)

// Data is a self-describing COSEM value.
// Value must hold the Go shape documented in the package overview for Type.
type Data struct {
	Type  DataType
	Value any
}

// NewNull returns a null-data value.
func NewNull() Data { return Data{Type: TypeNull} }

// NewBoolean returns a boolean value.
func NewBoolean(v bool) Data { return Data{Type: TypeBoolean, Value: v} }

// NewInteger returns an integer (int8) value.
func NewInteger(v int8) Data { return Data{Type: TypeInteger, Value: v} }

// NewLong returns a long (int16) value.
func NewLong(v int16) Data { return Data{Type: TypeLong, Value: v} }

// NewDoubleLong returns a double-long (int32) value.
func NewDoubleLong(v int32) Data { return Data{Type: TypeDoubleLong, Value: v} }

// NewLong64 returns a long64 value.
func NewLong64(v int64) Data { return Data{Type: TypeLong64, Value: v} }

// NewUnsigned returns an unsigned (uint8) value.
func NewUnsigned(v uint8) Data { return Data{Type: TypeUnsigned, Value: v} }

// NewLongUnsigned returns a long-unsigned (uint16) value.
func NewLongUnsigned(v uint16) Data { return Data{Type: TypeLongUnsigned, Value: v} }

// NewDoubleLongUnsigned returns a double-long-unsigned (uint32) value.
func NewDoubleLongUnsigned(v uint32) Data { return Data{Type: TypeDoubleLongUnsigned, Value: v} }

// NewLong64Unsigned returns a long64-unsigned value.
func NewLong64Unsigned(v uint64) Data { return Data{Type: TypeLong64Unsigned, Value: v} }

// NewFloat32 returns a float32 value.
func NewFloat32(v float32) Data { return Data{Type: TypeFloat32, Value: v} }

// NewFloat64 returns a float64 value.
func NewFloat64(v float64) Data { return Data{Type: TypeFloat64, Value: v} }

// NewEnum returns an enum value.
func NewEnum(v uint8) Data { return Data{Type: TypeEnum, Value: v} }

// NewVisibleString returns a visible-string value.
func NewVisibleString(v string) Data { return Data{Type: TypeVisibleString, Value: v} }

// NewUTF8String returns a utf8-string value.
func NewUTF8String(v string) Data { return Data{Type: TypeUTF8String, Value: v} }

// NewOctetString returns an octet-string value.
func NewOctetString(v []byte) Data { return Data{Type: TypeOctetString, Value: v} }

// NewBitString returns a bit-string value.
func NewBitString(v []bool) Data { return Data{Type: TypeBitString, Value: v} }

// NewDate returns a date value.
func NewDate(v Date) Data { return Data{Type: TypeDate, Value: v} }

// NewTime returns a time value.
func NewTime(v Time) Data { return Data{Type: TypeTime, Value: v} }

// NewDateTime returns a date-time value.
func NewDateTime(v DateTime) Data { return Data{Type: TypeDateTime, Value: v} }

// NewArray returns an array of the given elements.
func NewArray(elems ...Data) Data {
	if elems == nil {
		elems = []Data{}
	}
	return Data{Type: TypeArray, Value: elems}
}

// NewStructure returns a structure of the given fields.
func NewStructure(fields ...Data) Data {
	if fields == nil {
		fields = []Data{}
	}
	return Data{Type: TypeStructure, Value: fields}
}

// IsNull returns true for null-data.
func (d Data) IsNull() bool {
	return d.Type == TypeNull
}

// Elements returns the children of an array or structure.
// The second result is false for every other type.
func (d Data) Elements() ([]Data, bool) {
	if !d.Type.IsContainer() {
		return nil, false
	}
	elems, ok := d.Value.([]Data)
	return elems, ok
}

// Validate checks that Value has the shape required by Type, recursively.
func (d Data) Validate() error {
	if !d.Type.Known() {
		return fmt.Errorf("%w: %d", ErrUnknownType, d.Type)
	}

	ok := true
	switch d.Type {
	case TypeNull, TypeDontCare:
		ok = d.Value == nil
	case TypeBoolean:
		_, ok = d.Value.(bool)
	case TypeInteger, TypeBCD:
		_, ok = d.Value.(int8)
	case TypeLong:
		_, ok = d.Value.(int16)
	case TypeDoubleLong:
		_, ok = d.Value.(int32)
	case TypeLong64:
		_, ok = d.Value.(int64)
	case TypeUnsigned, TypeEnum:
		_, ok = d.Value.(uint8)
	case TypeLongUnsigned:
		_, ok = d.Value.(uint16)
	case TypeDoubleLongUnsigned:
		_, ok = d.Value.(uint32)
	case TypeLong64Unsigned:
		_, ok = d.Value.(uint64)
	case TypeFloat32:
		_, ok = d.Value.(float32)
	case TypeFloat64:
		_, ok = d.Value.(float64)
	case TypeVisibleString, TypeUTF8String:
		_, ok = d.Value.(string)
	case TypeOctetString:
		_, ok = d.Value.([]byte)
	case TypeBitString:
		_, ok = d.Value.([]bool)
	case TypeDate:
		_, ok = d.Value.(Date)
	case TypeTime:
		_, ok = d.Value.(Time)
	case TypeDateTime:
		_, ok = d.Value.(DateTime)
	case TypeArray, TypeStructure:
		elems, isSlice := d.Value.([]Data)
		if !isSlice {
			ok = false
			break
		}
		for i, e := range elems {
			if err := e.Validate(); err != nil {
				return fmt.Errorf("%s element %d: %w", d.Type, i, err)
			}
		}
	}

	if !ok {
		return fmt.Errorf("%w: %s holds %T", ErrShapeMismatch, d.Type, d.Value)
	}
	return nil
}

// Equal reports whether two values have the same type and content.
func (d Data) Equal(other Data) bool {
	if d.Type != other.Type {
		return false
	}

	switch a := d.Value.(type) {
	case []Data:
		b, ok := other.Value.([]Data)
		if !ok || len(a) != len(b) {
			return false
		}
		for i := range a {
			if !a[i].Equal(b[i]) {
				return false
			}
		}
		return true
	case []byte:
		b, ok := other.Value.([]byte)
		return ok && bytes.Equal(a, b)
	case []bool:
		b, ok := other.Value.([]bool)
		return ok && slices.Equal(a, b)
	default:
		return d.Value == other.Value
	}
}

// String renders the value as type(value), recursing into containers.
func (d Data) String() string {
	switch v := d.Value.(type) {
	case nil:
		return d.Type.String()
	case []Data:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = e.String()
		}
		return fmt.Sprintf("%s{%s}", d.Type, strings.Join(parts, ", "))
	case []byte:
		return fmt.Sprintf("%s(%x)", d.Type, v)
	case string:
		return fmt.Sprintf("%s(%q)", d.Type, v)
	case []bool:
		var sb strings.Builder
		for _, b := range v {
			if b {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
		return fmt.Sprintf("%s(%s)", d.Type, sb.String())
	default:
		return fmt.Sprintf("%s(%v)", d.Type, v)
	}
}
