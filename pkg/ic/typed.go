package ic

import (
	"context"

	"github.com/ngc-ami/cosem-go/pkg/cosem"
	"github.com/ngc-ami/cosem-go/pkg/definition"
	"github.com/ngc-ami/cosem-go/pkg/settings"
)

// serializer is the pointer side of a settings structure.
type serializer[T any] interface {
	*T
	ToData() (cosem.Data, error)
	ToDefinition() *definition.Structure
}

// structured is an object whose attribute 2 holds one settings structure.
type structured[T any, P serializer[T]] struct {
	*Data
	parse   func(*cosem.Data) (*T, error)
	initial func() *definition.Structure
}

// get returns nil when attribute 2 is absent or not a structure.
func (s structured[T, P]) get(ctx context.Context) (*T, error) {
	v, err := s.Value(ctx)
	if err != nil || v == nil || v.Type != cosem.TypeStructure {
		return nil, err
	}
	out, err := s.parse(v)
	if err != nil {
		return nil, protocolError(s.logicalName, ValueAttribute, RequestGet, err)
	}
	return out, nil
}

func (s structured[T, P]) set(ctx context.Context, v *T) error {
	if v == nil {
		return protocolError(s.logicalName, ValueAttribute, RequestSet, ErrNilValue)
	}
	d, err := P(v).ToData()
	if err != nil {
		return protocolError(s.logicalName, ValueAttribute, RequestSet, err)
	}
	return s.SetValue(ctx, d)
}

// Definition reads attribute 2 as a display tree. An absent value yields the
// default-valued structure.
func (s structured[T, P]) Definition(ctx context.Context) (definition.Definition, error) {
	v, err := s.get(ctx)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return s.initial(), nil
	}
	return P(v).ToDefinition(), nil
}

// listed is an object whose attribute holds an array of settings structures.
type listed[T any, P serializer[T]] struct {
	*Data
	attr    int8
	name    string
	parse   func(*cosem.Data) (*T, error)
	initial func() *definition.Structure
}

// get returns nil when the attribute is absent or not an array.
func (l listed[T, P]) get(ctx context.Context) ([]T, error) {
	v, err := l.Attribute(ctx, l.attr)
	if err != nil || v == nil || v.Type != cosem.TypeArray {
		return nil, err
	}
	items, err := settings.ParseArray(v, l.parse)
	if err != nil {
		return nil, protocolError(l.logicalName, l.attr, RequestGet, err)
	}
	return items, nil
}

// set writes items. A nil slice is written as an empty array.
func (l listed[T, P]) set(ctx context.Context, items []T) error {
	d, err := settings.ArrayData[T, P](items)
	if err != nil {
		return protocolError(l.logicalName, l.attr, RequestSet, err)
	}
	return l.SetAttribute(ctx, l.attr, d)
}

// Definition reads the list as an array display tree.
func (l listed[T, P]) Definition(ctx context.Context) (definition.Definition, error) {
	items, err := l.get(ctx)
	if err != nil {
		return nil, err
	}
	elems := make([]definition.Definition, len(items))
	for i := range items {
		elems[i] = P(&items[i]).ToDefinition()
	}
	return definition.NewArray(l.name, l.initial(), elems...)
}
