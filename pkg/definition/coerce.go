package definition

import (
	"fmt"
	"math"
	"time"

	"github.com/spf13/cast"

	"github.com/ngc-ami/cosem-go/pkg/cosem"
)

// bcdLimit is the largest magnitude a single BCD byte can carry
// (three bits for the tens digit).
const bcdLimit = 79

// byteser is implemented by values with a fixed octet-string encoding,
// such as calendar values and logical names.
type byteser interface {
	Bytes() []byte
}

// coerce converts a Go value to data of type t.
func coerce(t cosem.DataType, v any) (cosem.Data, error) {
	if d, ok := v.(cosem.Data); ok {
		return passthrough(t, d)
	}

	var (
		d   cosem.Data
		err error
	)

	switch t {
	case cosem.TypeBoolean:
		var b bool
		b, err = cast.ToBoolE(v)
		d = cosem.NewBoolean(b)
	case cosem.TypeInteger:
		var n int64
		n, err = signed(v, math.MinInt8, math.MaxInt8)
		d = cosem.NewInteger(int8(n))
	case cosem.TypeBCD:
		var n int64
		n, err = signed(v, -bcdLimit, bcdLimit)
		d = cosem.Data{Type: cosem.TypeBCD, Value: int8(n)}
	case cosem.TypeLong:
		var n int64
		n, err = signed(v, math.MinInt16, math.MaxInt16)
		d = cosem.NewLong(int16(n))
	case cosem.TypeDoubleLong:
		var n int64
		n, err = signed(v, math.MinInt32, math.MaxInt32)
		d = cosem.NewDoubleLong(int32(n))
	case cosem.TypeLong64:
		var n int64
		n, err = signed(v, math.MinInt64, math.MaxInt64)
		d = cosem.NewLong64(n)
	case cosem.TypeUnsigned:
		var n uint64
		n, err = unsigned(v, math.MaxUint8)
		d = cosem.NewUnsigned(uint8(n))
	case cosem.TypeEnum:
		var n uint64
		n, err = unsigned(v, math.MaxUint8)
		d = cosem.NewEnum(uint8(n))
	case cosem.TypeLongUnsigned:
		var n uint64
		n, err = unsigned(v, math.MaxUint16)
		d = cosem.NewLongUnsigned(uint16(n))
	case cosem.TypeDoubleLongUnsigned:
		var n uint64
		n, err = unsigned(v, math.MaxUint32)
		d = cosem.NewDoubleLongUnsigned(uint32(n))
	case cosem.TypeLong64Unsigned:
		var n uint64
		n, err = unsigned(v, math.MaxUint64)
		d = cosem.NewLong64Unsigned(n)
	case cosem.TypeFloat32:
		var f float32
		f, err = cast.ToFloat32E(v)
		d = cosem.NewFloat32(f)
	case cosem.TypeFloat64:
		var f float64
		f, err = cast.ToFloat64E(v)
		d = cosem.NewFloat64(f)
	case cosem.TypeVisibleString, cosem.TypeUTF8String:
		var s string
		s, err = cast.ToStringE(v)
		d = cosem.Data{Type: t, Value: s}
	case cosem.TypeOctetString:
		d, err = octets(v)
	case cosem.TypeBitString:
		bits, ok := v.([]bool)
		if !ok {
			err = fmt.Errorf("%T", v)
		}
		d = cosem.NewBitString(bits)
	case cosem.TypeDate, cosem.TypeTime, cosem.TypeDateTime:
		d, err = calendar(t, v)
	case cosem.TypeArray, cosem.TypeStructure:
		elems, ok := v.([]cosem.Data)
		if !ok {
			err = fmt.Errorf("%T", v)
		}
		d = cosem.Data{Type: t, Value: elems}
	case cosem.TypeDontCare:
		d = cosem.Data{Type: t}
	default:
		return cosem.Data{}, fmt.Errorf("%w: %d", cosem.ErrUnknownType, uint8(t))
	}

	if err != nil {
		return cosem.Data{}, fmt.Errorf("%w %s: %v", ErrValueType, t, err)
	}
	if err := d.Validate(); err != nil {
		return cosem.Data{}, err
	}
	return d, nil
}

// passthrough accepts data that already carries the declared type.
func passthrough(t cosem.DataType, d cosem.Data) (cosem.Data, error) {
	switch {
	case d.Type == t && t.IsCalendar():
		return calendar(t, d.Value)
	case d.Type == t:
		return d, d.Validate()
	case t.IsCalendar() && d.Type == cosem.TypeOctetString:
		return calendar(t, d.Value)
	default:
		return cosem.Data{}, fmt.Errorf("%w %s: holds %s", ErrValueType, t, d.Type)
	}
}

func signed(v any, lo, hi int64) (int64, error) {
	n, err := cast.ToInt64E(v)
	if err != nil {
		return 0, err
	}
	if n < lo || n > hi {
		return 0, fmt.Errorf("%d out of range", n)
	}
	return n, nil
}

func unsigned(v any, hi uint64) (uint64, error) {
	n, err := cast.ToUint64E(v)
	if err != nil {
		return 0, err
	}
	if n > hi {
		return 0, fmt.Errorf("%d out of range", n)
	}
	return n, nil
}

func octets(v any) (cosem.Data, error) {
	switch b := v.(type) {
	case []byte:
		return cosem.NewOctetString(b), nil
	case string:
		return cosem.NewOctetString([]byte(b)), nil
	case byteser:
		return cosem.NewOctetString(b.Bytes()), nil
	default:
		return cosem.Data{}, fmt.Errorf("%T", v)
	}
}

// calendar emits date, time and date-time values as octet strings.
func calendar(t cosem.DataType, v any) (cosem.Data, error) {
	want := map[cosem.DataType]int{
		cosem.TypeDate:     cosem.DateLength,
		cosem.TypeTime:     cosem.TimeLength,
		cosem.TypeDateTime: cosem.DateTimeLength,
	}[t]

	var b []byte
	switch x := v.(type) {
	case cosem.Date:
		b = x.Bytes()
	case cosem.Time:
		b = x.Bytes()
	case cosem.DateTime:
		b = x.Bytes()
	case time.Time:
		switch t {
		case cosem.TypeDate:
			b = cosem.NewDateFromTime(x).Bytes()
		case cosem.TypeTime:
			b = cosem.NewTimeFromTime(x).Bytes()
		default:
			b = cosem.NewDateTimeFromTime(x).Bytes()
		}
	case []byte:
		b = x
	default:
		return cosem.Data{}, fmt.Errorf("%w %s: %T", ErrValueType, t, v)
	}

	if len(b) != want {
		return cosem.Data{}, fmt.Errorf("%w %s: %d bytes", ErrValueType, t, len(b))
	}
	return cosem.NewOctetString(b), nil
}
