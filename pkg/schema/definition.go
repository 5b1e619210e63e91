package schema

import (
	"github.com/ngc-ami/cosem-go/pkg/cosem"
	"github.com/ngc-ami/cosem-go/pkg/definition"
)

// Definition builds the display definition of the structure. Values are
// given in schema order; missing values fall back to field defaults, so a
// call without values yields the default-valued schema.
func (s *Structure) Definition(values ...cosem.Data) *definition.Structure {
	out := &definition.Structure{
		ItemName: s.Name,
		Fields:   make([]definition.Definition, len(s.Fields)),
	}
	for i := range s.Fields {
		var v *cosem.Data
		if i < len(values) {
			v = &values[i]
		}
		out.Fields[i] = s.Fields[i].definition(v)
	}
	return out
}

func (f *Field) definition(v *cosem.Data) definition.Definition {
	absent := v != nil && f.Nullable && v.IsNull()

	switch {
	case absent && f.Type != cosem.TypeArray:
		return &definition.Scalar{ItemName: f.Name, DataType: cosem.TypeNull}

	case f.Type == cosem.TypeEnum:
		domain := f.Domain
		if domain == nil {
			domain = definition.ByteDomain
		}
		return &definition.Enum{ItemName: f.Name, Domain: domain, Value: f.value(v)}

	case f.Type == cosem.TypeArray:
		arr := &definition.Array{ItemName: f.Name, Element: f.elementDefinition(nil), Absent: absent}
		if v != nil && !absent {
			elems, _ := v.Elements()
			for i := range elems {
				arr.Elements = append(arr.Elements, f.elementDefinition(&elems[i]))
			}
		}
		return arr

	case f.Struct != nil:
		var elems []cosem.Data
		if v != nil {
			elems, _ = v.Elements()
		}
		st := f.Struct.Definition(elems...)
		st.ItemName = f.Name
		return st

	default:
		return &definition.Scalar{ItemName: f.Name, DataType: f.Type, Value: f.value(v)}
	}
}

func (f *Field) elementDefinition(v *cosem.Data) definition.Definition {
	if f.Element == nil {
		return definition.Unknown()
	}
	return f.Element.definition(v)
}

func (f *Field) value(v *cosem.Data) any {
	if v != nil {
		return v.Value
	}
	if f.Default != nil {
		return f.Default
	}
	return zeroValue(f.Type)
}

// zeroValue is the display placeholder of a type; calendar types use
// their wildcard form.
func zeroValue(t cosem.DataType) any {
	switch t {
	case cosem.TypeBoolean:
		return false
	case cosem.TypeInteger, cosem.TypeBCD:
		return int8(0)
	case cosem.TypeLong:
		return int16(0)
	case cosem.TypeDoubleLong:
		return int32(0)
	case cosem.TypeLong64:
		return int64(0)
	case cosem.TypeUnsigned, cosem.TypeEnum:
		return uint8(0)
	case cosem.TypeLongUnsigned:
		return uint16(0)
	case cosem.TypeDoubleLongUnsigned:
		return uint32(0)
	case cosem.TypeLong64Unsigned:
		return uint64(0)
	case cosem.TypeFloat32:
		return float32(0)
	case cosem.TypeFloat64:
		return float64(0)
	case cosem.TypeVisibleString, cosem.TypeUTF8String:
		return ""
	case cosem.TypeOctetString:
		return []byte{}
	case cosem.TypeBitString:
		return []bool{}
	case cosem.TypeDate:
		return cosem.AnyDate
	case cosem.TypeTime:
		return cosem.AnyTime
	case cosem.TypeDateTime:
		return cosem.AnyDateTime
	default:
		return nil
	}
}
