package definition

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrUnknownEnumValue is returned when a description does not name a value
// of the domain.
var ErrUnknownEnumValue = errors.New("unknown enum value")

// ByteDomainName names the untyped byte domain.
const ByteDomainName = "byte"

// ByteDomain is the untyped domain used when the concrete enum is unknown,
// e.g. for values inferred from the wire.
var ByteDomain = &EnumDomain{Name: ByteDomainName}

// EnumValue is one member of an enum domain.
// Ident is a snake_case identifier such as "ready_for_reconnection".
type EnumValue struct {
	Value uint8
	Ident string
}

// EnumDomain is a named set of byte values.
type EnumDomain struct {
	Name   string
	values []EnumValue
}

// NewEnumDomain creates a domain. Values keep their declaration order.
func NewEnumDomain(name string, values ...EnumValue) *EnumDomain {
	return &EnumDomain{Name: name, values: slices.Clone(values)}
}

// Values returns a copy of the domain members.
func (d *EnumDomain) Values() []EnumValue {
	return slices.Clone(d.values)
}

// IsByte reports whether d is the untyped byte domain.
func (d *EnumDomain) IsByte() bool {
	return d == nil || d.Name == ByteDomainName
}

// Lookup returns the member with value v. The byte domain accepts every value.
func (d *EnumDomain) Lookup(v uint8) (EnumValue, bool) {
	if d.IsByte() {
		return EnumValue{Value: v, Ident: strconv.Itoa(int(v))}, true
	}
	for _, ev := range d.values {
		if ev.Value == v {
			return ev, true
		}
	}
	return EnumValue{}, false
}

// Description returns the human-readable name of v, e.g.
// "Ready For Reconnection". Unknown values render as their number.
func (d *EnumDomain) Description(v uint8) string {
	ev, ok := d.Lookup(v)
	if !ok || d.IsByte() {
		return strconv.Itoa(int(v))
	}
	return describe(ev.Ident)
}

// Descriptions returns the descriptions of all members in order.
func (d *EnumDomain) Descriptions() []string {
	out := make([]string, len(d.values))
	for i, ev := range d.values {
		out[i] = describe(ev.Ident)
	}
	return out
}

// Parse maps an identifier, a description or a decimal number back to its
// value. Matching ignores case.
func (d *EnumDomain) Parse(s string) (uint8, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseUint(s, 10, 8); err == nil {
		if _, ok := d.Lookup(uint8(n)); ok {
			return uint8(n), nil
		}
	}

	fold := cases.Fold()
	want := fold.String(s)
	for _, ev := range d.values {
		if fold.String(ev.Ident) == want || fold.String(describe(ev.Ident)) == want {
			return ev.Value, nil
		}
	}
	return 0, fmt.Errorf("%w: %q in %s", ErrUnknownEnumValue, s, d.Name)
}

// String returns the domain name.
func (d *EnumDomain) String() string {
	return d.Name
}

func describe(ident string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(ident, "_", " "))
}
