package commands

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cast"

	"github.com/ngc-ami/cosem-go/pkg/cosem"
)

// ErrInvalidValue is returned for a value literal that cannot be parsed.
var ErrInvalidValue = errors.New("invalid value")

// ParseValue parses a typed value literal of the form "type:value", e.g.
// "long:-60", "octet-string:0102ff" or "date-time:2026-10-16T12:00:00+02:00".
// "null" stands alone, and "axdr:<hex>" decodes an encoded value. Type names
// are the DLMS names printed by the formatter.
func ParseValue(s string) (cosem.Data, error) {
	s = strings.TrimSpace(s)
	if s == "null" || s == cosem.TypeNull.String() {
		return cosem.NewNull(), nil
	}

	typ, lit, ok := strings.Cut(s, ":")
	if !ok {
		return cosem.Data{}, fmt.Errorf("%w: %q (want type:value)", ErrInvalidValue, s)
	}

	d, err := parseTyped(strings.ToLower(typ), lit)
	if err != nil {
		return cosem.Data{}, fmt.Errorf("%w: %s: %v", ErrInvalidValue, typ, err)
	}
	return d, nil
}

func parseTyped(typ, lit string) (cosem.Data, error) {
	switch typ {
	case "axdr":
		b, err := decodeHex(lit)
		if err != nil {
			return cosem.Data{}, err
		}
		return cosem.Decode(b)

	case "bool", cosem.TypeBoolean.String():
		v, err := cast.ToBoolE(lit)
		return cosem.NewBoolean(v), err

	case cosem.TypeInteger.String():
		v, err := signed(lit, math.MinInt8, math.MaxInt8)
		return cosem.NewInteger(int8(v)), err
	case cosem.TypeLong.String():
		v, err := signed(lit, math.MinInt16, math.MaxInt16)
		return cosem.NewLong(int16(v)), err
	case cosem.TypeDoubleLong.String():
		v, err := signed(lit, math.MinInt32, math.MaxInt32)
		return cosem.NewDoubleLong(int32(v)), err
	case cosem.TypeLong64.String():
		v, err := signed(lit, math.MinInt64, math.MaxInt64)
		return cosem.NewLong64(v), err

	case cosem.TypeUnsigned.String():
		v, err := unsigned(lit, math.MaxUint8)
		return cosem.NewUnsigned(uint8(v)), err
	case cosem.TypeEnum.String():
		v, err := unsigned(lit, math.MaxUint8)
		return cosem.NewEnum(uint8(v)), err
	case cosem.TypeLongUnsigned.String():
		v, err := unsigned(lit, math.MaxUint16)
		return cosem.NewLongUnsigned(uint16(v)), err
	case cosem.TypeDoubleLongUnsigned.String():
		v, err := unsigned(lit, math.MaxUint32)
		return cosem.NewDoubleLongUnsigned(uint32(v)), err
	case cosem.TypeLong64Unsigned.String():
		v, err := unsigned(lit, math.MaxUint64)
		return cosem.NewLong64Unsigned(v), err

	case cosem.TypeFloat32.String():
		v, err := cast.ToFloat32E(lit)
		return cosem.NewFloat32(v), err
	case cosem.TypeFloat64.String():
		v, err := cast.ToFloat64E(lit)
		return cosem.NewFloat64(v), err

	case cosem.TypeVisibleString.String():
		return cosem.NewVisibleString(lit), nil
	case cosem.TypeUTF8String.String():
		return cosem.NewUTF8String(lit), nil
	case cosem.TypeOctetString.String():
		b, err := decodeHex(lit)
		return cosem.NewOctetString(b), err

	case cosem.TypeDateTime.String():
		t, err := cast.ToTimeE(lit)
		if err != nil {
			return cosem.Data{}, err
		}
		return cosem.NewDateTime(cosem.NewDateTimeFromTime(t)), nil
	}
	return cosem.Data{}, errors.New("unsupported type")
}

func signed(lit string, lo, hi int64) (int64, error) {
	v, err := cast.ToInt64E(lit)
	if err != nil {
		return 0, err
	}
	if v < lo || v > hi {
		return 0, fmt.Errorf("%d out of range [%d, %d]", v, lo, hi)
	}
	return v, nil
}

func unsigned(lit string, hi uint64) (uint64, error) {
	v, err := cast.ToUint64E(lit)
	if err != nil {
		return 0, err
	}
	if v > hi {
		return 0, fmt.Errorf("%d out of range [0, %d]", v, hi)
	}
	return v, nil
}

// decodeHex accepts an optional 0x prefix and embedded whitespace.
func decodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	s = strings.Join(strings.Fields(s), "")
	return hex.DecodeString(s)
}
