// Package names maps logical names and attribute ids to readable names.
//
// The built-in dictionary covers the NGC object model and is embedded in the
// binary; Load parses a dictionary of the same layout from other sources.
package names

import (
	_ "embed"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/validator.v2"
	"gopkg.in/yaml.v3"

	"github.com/ngc-ami/cosem-go/pkg/obis"
)

//go:embed names.yaml
var builtin []byte

// ErrInvalidDictionary is returned for dictionaries that fail validation.
var ErrInvalidDictionary = errors.New("invalid name dictionary")

// Class names the attributes and methods of one interface class.
type Class struct {
	ID         uint16          `yaml:"id" validate:"nonzero"`
	Name       string          `yaml:"name" validate:"nonzero"`
	Attributes map[int8]string `yaml:"attributes"`
	Methods    map[int8]string `yaml:"methods"`
}

// Entry names one object. Attributes override the class names.
type Entry struct {
	Code        string          `yaml:"ln" validate:"nonzero"`
	Name        string          `yaml:"name" validate:"nonzero"`
	Class       uint16          `yaml:"class" validate:"nonzero"`
	Description string          `yaml:"description"`
	Attributes  map[int8]string `yaml:"attributes"`

	LogicalName obis.LogicalName `yaml:"-"`
}

// Dictionary is an immutable name table.
type Dictionary struct {
	classes map[uint16]*Class
	entries map[obis.LogicalName]*Entry
	byName  map[string]*Entry
}

type document struct {
	Classes []Class `yaml:"classes"`
	Objects []Entry `yaml:"objects"`
}

var defaultDictionary = sync.OnceValues(func() (*Dictionary, error) {
	return Load(builtin)
})

// Default returns the built-in dictionary.
func Default() *Dictionary {
	d, err := defaultDictionary()
	if err != nil {
		panic(fmt.Sprintf("names: built-in dictionary: %v", err))
	}
	return d
}

// Load parses a YAML dictionary.
func Load(data []byte) (*Dictionary, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDictionary, err)
	}

	d := &Dictionary{
		classes: make(map[uint16]*Class, len(doc.Classes)),
		entries: make(map[obis.LogicalName]*Entry, len(doc.Objects)),
		byName:  make(map[string]*Entry, len(doc.Objects)),
	}
	for i := range doc.Classes {
		c := &doc.Classes[i]
		if err := validator.Validate(c); err != nil {
			return nil, fmt.Errorf("%w: class %d: %v", ErrInvalidDictionary, i, err)
		}
		if _, dup := d.classes[c.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate class %d", ErrInvalidDictionary, c.ID)
		}
		d.classes[c.ID] = c
	}
	for i := range doc.Objects {
		e := &doc.Objects[i]
		if err := validator.Validate(e); err != nil {
			return nil, fmt.Errorf("%w: object %d: %v", ErrInvalidDictionary, i, err)
		}
		ln, err := obis.Parse(e.Code)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDictionary, err)
		}
		e.LogicalName = ln
		if _, dup := d.entries[ln]; dup {
			return nil, fmt.Errorf("%w: duplicate object %s", ErrInvalidDictionary, ln)
		}
		key := strings.ToLower(e.Name)
		if _, dup := d.byName[key]; dup {
			return nil, fmt.Errorf("%w: duplicate name %q", ErrInvalidDictionary, e.Name)
		}
		d.entries[ln] = e
		d.byName[key] = e
	}
	return d, nil
}

// Lookup returns the entry of ln.
func (d *Dictionary) Lookup(ln obis.LogicalName) (Entry, bool) {
	e, ok := d.entries[ln]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Resolve returns the entry with the given name (case-insensitive).
func (d *Dictionary) Resolve(name string) (Entry, bool) {
	e, ok := d.byName[strings.ToLower(name)]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Entries returns every entry ordered by logical name.
func (d *Dictionary) Entries() []Entry {
	lns := slices.SortedFunc(maps.Keys(d.entries), func(a, b obis.LogicalName) int {
		return slices.Compare(a[:], b[:])
	})
	out := make([]Entry, len(lns))
	for i, ln := range lns {
		out[i] = *d.entries[ln]
	}
	return out
}

// ClassName returns the name of an interface class, or "class-N".
func (d *Dictionary) ClassName(id uint16) string {
	if c, ok := d.classes[id]; ok {
		return c.Name
	}
	return "class-" + strconv.Itoa(int(id))
}

// AttributeName returns the name of attribute attr of the object ln with
// the given class. Object names win over class names; unknown attributes
// are named "attr-N".
func (d *Dictionary) AttributeName(classID uint16, ln obis.LogicalName, attr int8) string {
	if e, ok := d.entries[ln]; ok && e.Class == classID {
		if n, ok := e.Attributes[attr]; ok {
			return n
		}
	}
	if c, ok := d.classes[classID]; ok {
		if n, ok := c.Attributes[attr]; ok {
			return n
		}
	}
	return "attr-" + strconv.Itoa(int(attr))
}

// MethodName returns the name of a class method, or "method-N".
func (d *Dictionary) MethodName(classID uint16, method int8) string {
	if c, ok := d.classes[classID]; ok {
		if n, ok := c.Methods[method]; ok {
			return n
		}
	}
	return "method-" + strconv.Itoa(int(method))
}

// Title turns a snake_case name into a display title.
func Title(name string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(name, "_", " "))
}

// AttributeID resolves an attribute name (case-insensitive) of the object
// ln with the given class.
func (d *Dictionary) AttributeID(classID uint16, ln obis.LogicalName, name string) (int8, bool) {
	if e, ok := d.entries[ln]; ok && e.Class == classID {
		if id, ok := lookupID(e.Attributes, name); ok {
			return id, true
		}
	}
	if c, ok := d.classes[classID]; ok {
		return lookupID(c.Attributes, name)
	}
	return 0, false
}

// MethodID resolves a method name (case-insensitive) of a class.
func (d *Dictionary) MethodID(classID uint16, name string) (int8, bool) {
	if c, ok := d.classes[classID]; ok {
		return lookupID(c.Methods, name)
	}
	return 0, false
}

// Attributes returns the named attribute ids of an object, ascending.
func (d *Dictionary) Attributes(classID uint16, ln obis.LogicalName) []int8 {
	ids := make(map[int8]bool)
	if c, ok := d.classes[classID]; ok {
		for id := range c.Attributes {
			ids[id] = true
		}
	}
	if e, ok := d.entries[ln]; ok && e.Class == classID {
		for id := range e.Attributes {
			ids[id] = true
		}
	}
	return slices.Sorted(maps.Keys(ids))
}

func lookupID(table map[int8]string, name string) (int8, bool) {
	for id, n := range table {
		if strings.EqualFold(n, name) {
			return id, true
		}
	}
	return 0, false
}
