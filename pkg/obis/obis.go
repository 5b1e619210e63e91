// Package obis handles COSEM logical names (OBIS codes).
//
// A logical name is six bytes A..F rendered as "A-B:C.D.E*F". Parse is
// lenient about which of the separators '-', ':', '.' and '*' appear where,
// because configuration files in the field mix them freely; String always
// produces the canonical form.
package obis

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Length is the size of a logical name in bytes.
const Length = 6

// ErrInvalidLogicalName is returned when a logical name cannot be parsed.
var ErrInvalidLogicalName = errors.New("invalid logical name")

// LogicalName is a 6-byte OBIS code.
type LogicalName [Length]byte

// New builds a logical name from its six value groups.
func New(a, b, c, d, e, f uint8) LogicalName {
	return LogicalName{a, b, c, d, e, f}
}

// FromBytes copies a 6-byte slice into a logical name.
func FromBytes(b []byte) (LogicalName, error) {
	var ln LogicalName
	if len(b) != Length {
		return ln, fmt.Errorf("%w: need %d bytes, got %d", ErrInvalidLogicalName, Length, len(b))
	}
	copy(ln[:], b)
	return ln, nil
}

// Parse parses a logical name such as "1-65:0.129.0*255".
// Exactly six decimal groups in 0..255 are required.
func Parse(s string) (LogicalName, error) {
	var ln LogicalName

	fields := strings.FieldsFunc(strings.TrimSpace(s), isSeparator)
	if len(fields) != Length || hasEmptyGroup(s) {
		return ln, fmt.Errorf("%w: %q", ErrInvalidLogicalName, s)
	}

	for i, f := range fields {
		v, err := strconv.ParseUint(f, 10, 8)
		if err != nil {
			return ln, fmt.Errorf("%w: %q group %d", ErrInvalidLogicalName, s, i+1)
		}
		ln[i] = uint8(v)
	}
	return ln, nil
}

// MustParse is like Parse but panics on error.
// Use only for static tables.
func MustParse(s string) LogicalName {
	ln, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return ln
}

// String returns the canonical "A-B:C.D.E*F" form.
func (ln LogicalName) String() string {
	return fmt.Sprintf("%d-%d:%d.%d.%d*%d", ln[0], ln[1], ln[2], ln[3], ln[4], ln[5])
}

// Bytes returns a copy of the six bytes.
func (ln LogicalName) Bytes() []byte {
	b := make([]byte, Length)
	copy(b, ln[:])
	return b
}

// MarshalText implements encoding.TextMarshaler.
func (ln LogicalName) MarshalText() ([]byte, error) {
	return []byte(ln.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (ln *LogicalName) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*ln = parsed
	return nil
}

func isSeparator(r rune) bool {
	return r == '-' || r == ':' || r == '.' || r == '*'
}

// hasEmptyGroup rejects doubled, leading or trailing separators that
// FieldsFunc would otherwise swallow.
func hasEmptyGroup(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	prevSep := true
	for _, r := range s {
		sep := isSeparator(r)
		if sep && prevSep {
			return true
		}
		prevSep = sep
	}
	return prevSep
}
