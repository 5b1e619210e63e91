// Package inspect provides object inspection and attribute manipulation
// utilities on top of the interface-class wrappers.
//
// The inspect package offers a unified interface for:
//   - Parsing path expressions (e.g., "clock/time_zone", "8@0-0:1.0.0*255/3")
//   - Resolving names to logical names and attribute ids
//   - Reading and writing attributes and invoking methods
//   - Formatting output for display
package inspect

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ngc-ami/cosem-go/pkg/names"
	"github.com/ngc-ami/cosem-go/pkg/obis"
)

// Path errors.
var (
	ErrEmptyPath     = errors.New("empty path")
	ErrInvalidPath   = errors.New("invalid path format")
	ErrInvalidNumber = errors.New("invalid numeric value in path")
	ErrUnknownName   = errors.New("unknown name")
)

// methodSegment introduces a method id in a path.
const methodSegment = "method"

// Path represents a parsed inspection path.
// Format: [class@]object[/attribute] or [class@]object/method/id
type Path struct {
	// LogicalName is the addressed object.
	LogicalName obis.LogicalName

	// ClassID is the interface class, zero when neither the path nor the
	// dictionary names one.
	ClassID uint16

	// AttributeID is the attribute id when the path is not partial.
	AttributeID int8

	// MethodID is the method id (when IsMethod is true).
	MethodID int8

	// IsMethod indicates this path refers to a method, not an attribute.
	IsMethod bool

	// IsPartial indicates the path doesn't include an attribute or method
	// (used for inspect operations that show all attributes).
	IsPartial bool

	// Raw stores the original input string.
	Raw string
}

// ParsePath parses a path string into a Path struct.
//
// Supported formats:
//   - "0-0:1.0.0*255/2" - attribute by id
//   - "clock/time_zone" - object and attribute by name
//   - "8@0-0:1.0.0*255/3" - explicit interface class
//   - "clock/method/1" or "clock/method/adjust_to_quarter" - method path
//   - "clock" - partial (for listing attributes)
//
// Numeric ids can be decimal or hex (0x prefix). Names are resolved through
// dict; a nil dict means the built-in dictionary.
func ParsePath(input string, dict *names.Dictionary) (*Path, error) {
	if dict == nil {
		dict = names.Default()
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyPath
	}
	if strings.HasPrefix(input, "/") || strings.HasSuffix(input, "/") || strings.Contains(input, "//") {
		return nil, ErrInvalidPath
	}

	p := &Path{Raw: input}
	parts := strings.Split(input, "/")

	object := parts[0]
	if class, rest, ok := strings.Cut(object, "@"); ok {
		id, err := parseUint16(class)
		if err != nil {
			return nil, fmt.Errorf("class: %w: %s", ErrInvalidNumber, class)
		}
		p.ClassID = id
		object = rest
	}

	ln, class, err := resolveObject(object, dict)
	if err != nil {
		return nil, fmt.Errorf("object: %w", err)
	}
	p.LogicalName = ln
	if p.ClassID == 0 {
		p.ClassID = class
	}

	switch {
	case len(parts) == 1:
		p.IsPartial = true

	case parts[1] == methodSegment:
		if len(parts) != 3 {
			return nil, fmt.Errorf("%w: method path needs one method id", ErrInvalidPath)
		}
		id, err := parseID(parts[2], func(s string) (int8, bool) { return dict.MethodID(p.ClassID, s) })
		if err != nil {
			return nil, fmt.Errorf("method: %w", err)
		}
		p.IsMethod = true
		p.MethodID = id

	case len(parts) == 2:
		id, err := parseID(parts[1], func(s string) (int8, bool) { return dict.AttributeID(p.ClassID, p.LogicalName, s) })
		if err != nil {
			return nil, fmt.Errorf("attribute: %w", err)
		}
		p.AttributeID = id

	default:
		return nil, ErrInvalidPath
	}

	return p, nil
}

// String returns the path in its numeric form.
func (p *Path) String() string {
	var sb strings.Builder

	if p.ClassID != 0 {
		sb.WriteString(strconv.Itoa(int(p.ClassID)))
		sb.WriteString("@")
	}
	sb.WriteString(p.LogicalName.String())

	switch {
	case p.IsPartial:
	case p.IsMethod:
		sb.WriteString("/" + methodSegment + "/")
		sb.WriteString(strconv.Itoa(int(p.MethodID)))
	default:
		sb.WriteString("/")
		sb.WriteString(strconv.Itoa(int(p.AttributeID)))
	}

	return sb.String()
}

// resolveObject accepts a logical name or a dictionary name. The class is
// taken from the dictionary when it knows the object.
func resolveObject(s string, dict *names.Dictionary) (obis.LogicalName, uint16, error) {
	if ln, err := obis.Parse(s); err == nil {
		if e, ok := dict.Lookup(ln); ok {
			return ln, e.Class, nil
		}
		return ln, 0, nil
	}
	if e, ok := dict.Resolve(s); ok {
		return e.LogicalName, e.Class, nil
	}
	return obis.LogicalName{}, 0, fmt.Errorf("%w: %s", ErrUnknownName, s)
}

// parseID parses a positive id from a number or a name.
func parseID(s string, resolve func(string) (int8, bool)) (int8, error) {
	if id, err := parseInt8(s); err == nil {
		if id <= 0 {
			return 0, fmt.Errorf("%w: %s", ErrInvalidNumber, s)
		}
		return id, nil
	}
	if id, ok := resolve(s); ok {
		return id, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownName, s)
}

// parseInt8 parses an int8 from decimal or hex string.
func parseInt8(s string) (int8, error) {
	var v int64
	var err error

	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err = strconv.ParseInt(s[2:], 16, 8)
	} else {
		v, err = strconv.ParseInt(s, 10, 8)
	}
	if err != nil {
		return 0, err
	}
	return int8(v), nil
}

// parseUint16 parses a uint16 from decimal or hex string.
func parseUint16(s string) (uint16, error) {
	var v uint64
	var err error

	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err = strconv.ParseUint(s[2:], 16, 16)
	} else {
		v, err = strconv.ParseUint(s, 10, 16)
	}
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}
