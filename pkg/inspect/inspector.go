package inspect

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ngc-ami/cosem-go/pkg/cosem"
	"github.com/ngc-ami/cosem-go/pkg/definition"
	"github.com/ngc-ami/cosem-go/pkg/ic"
	"github.com/ngc-ami/cosem-go/pkg/names"
	"github.com/ngc-ami/cosem-go/pkg/obis"
)

// Inspector errors.
var (
	ErrPartialPath   = errors.New("path does not name an attribute")
	ErrNotAttribute  = errors.New("path names a method")
	ErrNotMethod     = errors.New("path does not name a method")
	ErrNoAttributeOp = errors.New("object does not support attribute access")
)

// ClassResolver returns the interface class of an object the path did not
// name a class for.
type ClassResolver func(ln obis.LogicalName) (uint16, bool)

// attributeAccessor is implemented by every wrapper through the embedded
// generic object.
type attributeAccessor interface {
	Attribute(ctx context.Context, attr int8) (*cosem.Data, error)
	SetAttribute(ctx context.Context, attr int8, v cosem.Data) error
	Invoke(ctx context.Context, method int8, param *cosem.Data) (*cosem.Data, error)
}

// Inspector provides inspection and mutation capabilities for the objects
// reachable through one transport. Wrappers are kept per object so their
// cached values survive between calls.
type Inspector struct {
	transport ic.Transport
	dict      *names.Dictionary
	resolve   ClassResolver
	opts      []ic.Option

	mu      sync.Mutex
	objects map[objectKey]ic.Object
}

type objectKey struct {
	class uint16
	ln    obis.LogicalName
}

// NewInspector creates a new Inspector. A nil dict means the built-in
// dictionary; resolve may be nil.
func NewInspector(t ic.Transport, dict *names.Dictionary, resolve ClassResolver, opts ...ic.Option) *Inspector {
	if dict == nil {
		dict = names.Default()
	}
	return &Inspector{
		transport: t,
		dict:      dict,
		resolve:   resolve,
		opts:      opts,
		objects:   make(map[objectKey]ic.Object),
	}
}

// Dictionary returns the name dictionary.
func (i *Inspector) Dictionary() *names.Dictionary {
	return i.dict
}

// ObjectInfo represents an object for display.
type ObjectInfo struct {
	LogicalName obis.LogicalName
	ClassID     uint16
	Name        string
	Description string
	Attributes  []AttributeInfo
}

// AttributeInfo represents one attribute read for display. Err is set when
// the read failed.
type AttributeInfo struct {
	ID    int8
	Name  string
	Value *cosem.Data
	Err   error
}

// Object returns the wrapper addressed by p.
func (i *Inspector) Object(p *Path) ic.Object {
	class := i.classOf(p)

	i.mu.Lock()
	defer i.mu.Unlock()

	key := objectKey{class: class, ln: p.LogicalName}
	if obj, ok := i.objects[key]; ok {
		return obj
	}
	obj := ic.Create(p.LogicalName, i.transport, i.opts...)
	if obj.ClassID() != class {
		obj = ic.NewObject(class, p.LogicalName, i.transport, i.opts...)
	}
	i.objects[key] = obj
	return obj
}

// Inspect reads every named attribute of the object. Attribute 1 is served
// locally from the logical name.
func (i *Inspector) Inspect(ctx context.Context, p *Path) (*ObjectInfo, error) {
	obj := i.Object(p)
	acc, ok := obj.(attributeAccessor)
	if !ok {
		return nil, ErrNoAttributeOp
	}

	info := &ObjectInfo{
		LogicalName: p.LogicalName,
		ClassID:     obj.ClassID(),
		Name:        i.dict.ClassName(obj.ClassID()),
	}
	if e, ok := i.dict.Lookup(p.LogicalName); ok {
		info.Name = e.Name
		info.Description = e.Description
	}

	ids := i.dict.Attributes(obj.ClassID(), p.LogicalName)
	if len(ids) == 0 {
		ids = []int8{1, ic.ValueAttribute}
	}
	for _, id := range ids {
		ai := AttributeInfo{ID: id, Name: i.dict.AttributeName(obj.ClassID(), p.LogicalName, id)}
		if id == 1 {
			v := cosem.NewOctetString(p.LogicalName.Bytes())
			ai.Value = &v
		} else {
			ai.Value, ai.Err = acc.Attribute(ctx, id)
		}
		info.Attributes = append(info.Attributes, ai)
	}
	return info, nil
}

// ReadAttribute reads the attribute addressed by p.
func (i *Inspector) ReadAttribute(ctx context.Context, p *Path) (*cosem.Data, error) {
	acc, err := i.accessor(p)
	if err != nil {
		return nil, err
	}
	return acc.Attribute(ctx, p.AttributeID)
}

// WriteAttribute writes the attribute addressed by p.
func (i *Inspector) WriteAttribute(ctx context.Context, p *Path, v cosem.Data) error {
	acc, err := i.accessor(p)
	if err != nil {
		return err
	}
	return acc.SetAttribute(ctx, p.AttributeID, v)
}

// InvokeMethod invokes the method addressed by p.
func (i *Inspector) InvokeMethod(ctx context.Context, p *Path, param *cosem.Data) (*cosem.Data, error) {
	if !p.IsMethod {
		return nil, ErrNotMethod
	}
	acc, ok := i.Object(p).(attributeAccessor)
	if !ok {
		return nil, ErrNoAttributeOp
	}
	return acc.Invoke(ctx, p.MethodID, param)
}

// Describe returns the definition tree of the attribute addressed by p.
// The value attribute of a typed object uses the object's own definition,
// so field names follow its settings structure.
func (i *Inspector) Describe(ctx context.Context, p *Path) (definition.Definition, error) {
	if _, err := i.accessor(p); err != nil {
		return nil, err
	}

	obj := i.Object(p)
	if _, generic := obj.(*ic.Data); !generic && p.AttributeID == ic.ValueAttribute {
		return obj.Definition(ctx)
	}

	v, err := i.ReadAttribute(ctx, p)
	if err != nil {
		return nil, err
	}
	name := i.dict.AttributeName(obj.ClassID(), p.LogicalName, p.AttributeID)
	if v == nil {
		return definition.NewScalar(name, cosem.TypeNull, nil)
	}
	return definition.FromData(name, v)
}

func (i *Inspector) accessor(p *Path) (attributeAccessor, error) {
	switch {
	case p.IsMethod:
		return nil, ErrNotAttribute
	case p.IsPartial:
		return nil, ErrPartialPath
	}
	acc, ok := i.Object(p).(attributeAccessor)
	if !ok {
		return nil, ErrNoAttributeOp
	}
	return acc, nil
}

// classOf picks the class of p: the path, then the resolver, then the
// registry.
func (i *Inspector) classOf(p *Path) uint16 {
	if p.ClassID != 0 {
		return p.ClassID
	}
	if i.resolve != nil {
		if c, ok := i.resolve(p.LogicalName); ok {
			return c
		}
	}
	return ic.Create(p.LogicalName, i.transport).ClassID()
}

// FormatObject formats an object for display.
func (i *Inspector) FormatObject(info *ObjectInfo, formatter *Formatter) string {
	if formatter == nil {
		formatter = NewFormatter()
	}

	var sb strings.Builder
	header := fmt.Sprintf("%s %s (class %d)", info.LogicalName, info.Name, info.ClassID)
	sb.WriteString(header + "\n")
	if info.Description != "" {
		sb.WriteString(formatter.Indent(1, info.Description) + "\n")
	}

	for _, a := range info.Attributes {
		var line string
		switch {
		case a.Err != nil:
			line = fmt.Sprintf("[%d] %s: error: %v", a.ID, a.Name, a.Err)
		case a.Value == nil:
			line = fmt.Sprintf("[%d] %s = null", a.ID, a.Name)
		default:
			line = fmt.Sprintf("[%d] %s = %s", a.ID, a.Name, formatter.FormatData(*a.Value))
			if formatter.ShowTypes {
				line += fmt.Sprintf(" (%s)", a.Value.Type)
			}
		}
		sb.WriteString(formatter.Indent(1, line) + "\n")
	}
	return sb.String()
}
