package definition

import (
	"fmt"

	"github.com/ngc-ami/cosem-go/pkg/cosem"
)

// FromData infers a definition from a wire value.
//
// Arrays take their element definition from the first element; an empty
// array gets the Unknown placeholder. Structure fields are named
// "Element N" starting at 1. Enums use ByteDomain because the symbolic
// domain cannot be recovered from the wire. Every other tag becomes a
// scalar carrying the value verbatim.
func FromData(name string, d *cosem.Data) (Definition, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if d == nil {
		return nil, fmt.Errorf("%s: %w", name, ErrNilData)
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return fromData(name, *d)
}

func fromData(name string, d cosem.Data) (Definition, error) {
	switch d.Type {
	case cosem.TypeArray:
		elems, _ := d.Elements()
		arr := &Array{ItemName: name, Element: Unknown()}
		if len(elems) == 0 {
			return arr, nil
		}
		arr.Elements = make([]Definition, len(elems))
		for i, e := range elems {
			child, err := fromData(elementName(i), e)
			if err != nil {
				return nil, err
			}
			arr.Elements[i] = child
		}
		arr.Element = arr.Elements[0]
		return arr, nil

	case cosem.TypeStructure:
		elems, _ := d.Elements()
		st := &Structure{ItemName: name, Fields: make([]Definition, len(elems))}
		for i, e := range elems {
			child, err := fromData(elementName(i), e)
			if err != nil {
				return nil, err
			}
			st.Fields[i] = child
		}
		return st, nil

	case cosem.TypeEnum:
		return &Enum{ItemName: name, Domain: ByteDomain, Value: d.Value}, nil

	default:
		return &Scalar{ItemName: name, DataType: d.Type, Value: d.Value}, nil
	}
}

func elementName(i int) string {
	return fmt.Sprintf("Element %d", i+1)
}
