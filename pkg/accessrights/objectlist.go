package accessrights

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/ngc-ami/cosem-go/pkg/settings"
)

// logicalNameAttribute is readable on every visible object.
const logicalNameAttribute int8 = 1

// ObjectList builds the object list an association of client reports: one
// element per object the client appears under, in file order.
func (f *File) ObjectList(client string) ([]settings.ObjectListElement, error) {
	if _, ok := f.ClientByName(client); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownClient, client)
	}

	var list []settings.ObjectListElement
	for i := range f.Objects {
		o := &f.Objects[i]
		ca, ok := o.Client(client)
		if !ok {
			continue
		}
		list = append(list, settings.ObjectListElement{
			ClassID:      o.Class,
			LogicalName:  o.LogicalName,
			AccessRights: o.accessRights(ca.Access),
		})
	}
	return list, nil
}

func (o *Object) accessRights(a *Access) settings.AccessRights {
	var granted Access
	if a != nil {
		granted = *a
	}

	ar := settings.AccessRights{
		Attributes: []settings.AttributeAccessItem{},
		Methods:    []settings.MethodAccessItem{},
	}
	hasLN := false
	for _, p := range o.Properties {
		switch p.Type {
		case PropertyAttribute:
			if _, dup := ar.Attribute(p.Index); dup {
				continue
			}
			mode := attributeMode(granted)
			if p.Index == logicalNameAttribute {
				hasLN = true
				mode = settings.AttributeReadOnly
			}
			ar.Attributes = append(ar.Attributes, settings.AttributeAccessItem{
				AttributeID: p.Index,
				AccessMode:  mode,
			})
		case PropertyMethod:
			if _, dup := ar.Method(p.Index); dup {
				continue
			}
			mode := settings.MethodNoAccess
			if granted.Action {
				mode = settings.MethodAccess
			}
			ar.Methods = append(ar.Methods, settings.MethodAccessItem{
				MethodID:   p.Index,
				AccessMode: mode,
			})
		}
	}
	if !hasLN {
		ar.Attributes = append(ar.Attributes, settings.AttributeAccessItem{
			AttributeID: logicalNameAttribute,
			AccessMode:  settings.AttributeReadOnly,
		})
	}

	slices.SortFunc(ar.Attributes, func(a, b settings.AttributeAccessItem) int {
		return cmp.Compare(a.AttributeID, b.AttributeID)
	})
	slices.SortFunc(ar.Methods, func(a, b settings.MethodAccessItem) int {
		return cmp.Compare(a.MethodID, b.MethodID)
	})
	return ar
}

func attributeMode(a Access) settings.AttributeAccessMode {
	switch {
	case a.Get && a.Set:
		return settings.AttributeReadWrite
	case a.Get:
		return settings.AttributeReadOnly
	case a.Set:
		return settings.AttributeWriteOnly
	default:
		return settings.AttributeNoAccess
	}
}
