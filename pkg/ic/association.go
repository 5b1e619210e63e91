package ic

import (
	"context"

	"github.com/ngc-ami/cosem-go/pkg/obis"
	"github.com/ngc-ami/cosem-go/pkg/settings"
)

// AssociationAttrObjectList is the object_list attribute.
const AssociationAttrObjectList int8 = 2

// AssociationLN is the interface class 15 object describing the current
// association.
type AssociationLN struct {
	listed[settings.ObjectListElement, *settings.ObjectListElement]
}

// NewAssociationLN returns the association wrapper for ln.
func NewAssociationLN(ln obis.LogicalName, t Transport, opts ...Option) *AssociationLN {
	return &AssociationLN{listed[settings.ObjectListElement, *settings.ObjectListElement]{
		Data:    newObject(ClassAssociationLN, ln, t, opts),
		attr:    AssociationAttrObjectList,
		name:    "ObjectList",
		parse:   settings.ParseObjectListElement,
		initial: settings.ObjectListElementDefinition,
	}}
}

// ObjectList reads the objects visible through the association.
func (a *AssociationLN) ObjectList(ctx context.Context) ([]settings.ObjectListElement, error) {
	return a.get(ctx)
}

// Lookup returns the object list entry for ln.
func (a *AssociationLN) Lookup(ctx context.Context, ln obis.LogicalName) (*settings.ObjectListElement, error) {
	list, err := a.ObjectList(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].LogicalName == ln {
			return &list[i], nil
		}
	}
	return nil, nil
}
