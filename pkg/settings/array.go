package settings

import (
	"errors"
	"fmt"

	"github.com/ngc-ami/cosem-go/pkg/cosem"
	"github.com/ngc-ami/cosem-go/pkg/schema"
)

// ErrNotArray is returned when a list attribute does not hold an array.
var ErrNotArray = errors.New("data is not an array")

// ParseArray parses every entry of an array with parse. It fails on the
// first entry that does not parse.
func ParseArray[T any](d *cosem.Data, parse func(*cosem.Data) (*T, error)) ([]T, error) {
	if d == nil {
		return nil, schema.ErrNilData
	}
	if d.Type != cosem.TypeArray {
		return nil, fmt.Errorf("%w: got %s", ErrNotArray, d.Type)
	}

	elems, _ := d.Elements()
	out := make([]T, 0, len(elems))
	for i := range elems {
		v, err := parse(&elems[i])
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, *v)
	}
	return out, nil
}

// Serializer is implemented by every settings structure.
type Serializer interface {
	ToData() (cosem.Data, error)
}

// ArrayData serializes items into an array.
func ArrayData[T any, P interface {
	*T
	Serializer
}](items []T) (cosem.Data, error) {
	elems := make([]cosem.Data, len(items))
	for i := range items {
		d, err := P(&items[i]).ToData()
		if err != nil {
			return cosem.Data{}, fmt.Errorf("element %d: %w", i, err)
		}
		elems[i] = d
	}
	return cosem.NewArray(elems...), nil
}
