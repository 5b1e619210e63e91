package cosem

// DataType is the DLMS data tag of a value.
type DataType uint8

const (
	TypeNull               DataType = 0
	TypeArray              DataType = 1
	TypeStructure          DataType = 2
	TypeBoolean            DataType = 3
	TypeBitString          DataType = 4
	TypeDoubleLong         DataType = 5
	TypeDoubleLongUnsigned DataType = 6
	TypeOctetString        DataType = 9
	TypeVisibleString      DataType = 10
	TypeUTF8String         DataType = 12
	TypeBCD                DataType = 13
	TypeInteger            DataType = 15
	TypeLong               DataType = 16
	TypeUnsigned           DataType = 17
	TypeLongUnsigned       DataType = 18
	TypeLong64             DataType = 20
	TypeLong64Unsigned     DataType = 21
	TypeEnum               DataType = 22
	TypeFloat32            DataType = 23
	TypeFloat64            DataType = 24
	TypeDateTime           DataType = 25
	TypeDate               DataType = 26
	TypeTime               DataType = 27
	TypeDontCare           DataType = 255
)

// String returns the DLMS type name.
func (t DataType) String() string {
	switch t {
	case TypeNull:
		return "null-data"
	case TypeArray:
		return "array"
	case TypeStructure:
		return "structure"
	case TypeBoolean:
		return "boolean"
	case TypeBitString:
		return "bit-string"
	case TypeDoubleLong:
		return "double-long"
	case TypeDoubleLongUnsigned:
		return "double-long-unsigned"
	case TypeOctetString:
		return "octet-string"
	case TypeVisibleString:
		return "visible-string"
	case TypeUTF8String:
		return "utf8-string"
	case TypeBCD:
		return "bcd"
	case TypeInteger:
		return "integer"
	case TypeLong:
		return "long"
	case TypeUnsigned:
		return "unsigned"
	case TypeLongUnsigned:
		return "long-unsigned"
	case TypeLong64:
		return "long64"
	case TypeLong64Unsigned:
		return "long64-unsigned"
	case TypeEnum:
		return "enum"
	case TypeFloat32:
		return "float32"
	case TypeFloat64:
		return "float64"
	case TypeDateTime:
		return "date-time"
	case TypeDate:
		return "date"
	case TypeTime:
		return "time"
	case TypeDontCare:
		return "dont-care"
	default:
		return "unknown"
	}
}

// IsContainer returns true for array and structure.
func (t DataType) IsContainer() bool {
	return t == TypeArray || t == TypeStructure
}

// IsCalendar returns true for date, time and date-time.
// These travel as octet strings on most meters.
func (t DataType) IsCalendar() bool {
	return t == TypeDate || t == TypeTime || t == TypeDateTime
}

// IsNumeric returns true for the integer, unsigned, float and enum tags.
func (t DataType) IsNumeric() bool {
	switch t {
	case TypeInteger, TypeLong, TypeDoubleLong, TypeLong64,
		TypeUnsigned, TypeLongUnsigned, TypeDoubleLongUnsigned, TypeLong64Unsigned,
		TypeFloat32, TypeFloat64, TypeEnum, TypeBCD:
		return true
	default:
		return false
	}
}

// Known returns true if the tag is one this package can hold.
func (t DataType) Known() bool {
	return t.String() != "unknown"
}
