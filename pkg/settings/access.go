package settings

import (
	"github.com/ngc-ami/cosem-go/pkg/cosem"
	"github.com/ngc-ami/cosem-go/pkg/definition"
	"github.com/ngc-ami/cosem-go/pkg/obis"
	"github.com/ngc-ami/cosem-go/pkg/schema"
)

// AttributeAccessItemSchema is the wire layout of AttributeAccessItem.
var AttributeAccessItemSchema = &schema.Structure{
	Name: "AttributeAccessItem",
	Fields: []schema.Field{
		{Name: "AttributeID", Type: cosem.TypeInteger},
		{Name: "AccessMode", Type: cosem.TypeEnum, Domain: AttributeAccessModeDomain},
		{Name: "AccessSelectors", Type: cosem.TypeArray, Nullable: true, Element: &schema.Field{
			Name: "Selector",
			Type: cosem.TypeInteger,
		}},
	},
}

// AttributeAccessItem grants access to one attribute.
type AttributeAccessItem struct {
	AttributeID int8
	AccessMode  AttributeAccessMode

	// AccessSelectors lists the supported selective access selectors.
	// Nil is sent as null-data, an empty slice as an empty array.
	AccessSelectors []int8
}

// ParseAttributeAccessItem parses an AttributeAccessItem structure.
func ParseAttributeAccessItem(d *cosem.Data) (*AttributeAccessItem, error) {
	r, err := AttributeAccessItemSchema.Unpack(d)
	if err != nil {
		return nil, err
	}

	item := &AttributeAccessItem{
		AttributeID: r.Int8(0),
		AccessMode:  AttributeAccessMode(r.Uint8(1)),
	}
	if !r.IsNull(2) {
		sel := r.Elements(2)
		item.AccessSelectors = make([]int8, 0, len(sel))
		for _, e := range sel {
			item.AccessSelectors = append(item.AccessSelectors, e.Value.(int8))
		}
	}
	return item, nil
}

func (a *AttributeAccessItem) fields() []cosem.Data {
	selectors := cosem.NewNull()
	if a.AccessSelectors != nil {
		sel := make([]cosem.Data, len(a.AccessSelectors))
		for i, s := range a.AccessSelectors {
			sel[i] = cosem.NewInteger(s)
		}
		selectors = cosem.NewArray(sel...)
	}
	return []cosem.Data{
		cosem.NewInteger(a.AttributeID),
		cosem.NewEnum(uint8(a.AccessMode)),
		selectors,
	}
}

// ToData serializes the item.
func (a *AttributeAccessItem) ToData() (cosem.Data, error) {
	return AttributeAccessItemSchema.Pack(a.fields()...)
}

// ToDefinition returns the item as a display definition.
func (a *AttributeAccessItem) ToDefinition() *definition.Structure {
	return AttributeAccessItemSchema.Definition(a.fields()...)
}

// AttributeAccessItemDefinition returns the default-valued definition.
func AttributeAccessItemDefinition() *definition.Structure {
	return AttributeAccessItemSchema.Definition()
}

// MethodAccessItemSchema is the wire layout of MethodAccessItem.
var MethodAccessItemSchema = &schema.Structure{
	Name: "MethodAccessItem",
	Fields: []schema.Field{
		{Name: "MethodID", Type: cosem.TypeInteger},
		{Name: "AccessMode", Type: cosem.TypeEnum, Domain: MethodAccessModeDomain},
	},
}

// MethodAccessItem grants access to one method.
type MethodAccessItem struct {
	MethodID   int8
	AccessMode MethodAccessMode
}

// ParseMethodAccessItem parses a MethodAccessItem structure.
func ParseMethodAccessItem(d *cosem.Data) (*MethodAccessItem, error) {
	r, err := MethodAccessItemSchema.Unpack(d)
	if err != nil {
		return nil, err
	}
	return &MethodAccessItem{
		MethodID:   r.Int8(0),
		AccessMode: MethodAccessMode(r.Uint8(1)),
	}, nil
}

func (m *MethodAccessItem) fields() []cosem.Data {
	return []cosem.Data{
		cosem.NewInteger(m.MethodID),
		cosem.NewEnum(uint8(m.AccessMode)),
	}
}

// ToData serializes the item.
func (m *MethodAccessItem) ToData() (cosem.Data, error) {
	return MethodAccessItemSchema.Pack(m.fields()...)
}

// ToDefinition returns the item as a display definition.
func (m *MethodAccessItem) ToDefinition() *definition.Structure {
	return MethodAccessItemSchema.Definition(m.fields()...)
}

// MethodAccessItemDefinition returns the default-valued definition.
func MethodAccessItemDefinition() *definition.Structure {
	return MethodAccessItemSchema.Definition()
}

// AccessRightsSchema is the wire layout of AccessRights.
var AccessRightsSchema = &schema.Structure{
	Name: "AccessRights",
	Fields: []schema.Field{
		{Name: "Attributes", Type: cosem.TypeArray, Element: &schema.Field{
			Name:   "Attribute",
			Type:   cosem.TypeStructure,
			Struct: AttributeAccessItemSchema,
		}},
		{Name: "Methods", Type: cosem.TypeArray, Element: &schema.Field{
			Name:   "Method",
			Type:   cosem.TypeStructure,
			Struct: MethodAccessItemSchema,
		}},
	},
}

// AccessRights lists the attribute and method access of one object.
// Parsed lists are never nil; an empty wire array gives an empty slice.
type AccessRights struct {
	Attributes []AttributeAccessItem
	Methods    []MethodAccessItem
}

// ParseAccessRights parses an AccessRights structure.
func ParseAccessRights(d *cosem.Data) (*AccessRights, error) {
	r, err := AccessRightsSchema.Unpack(d)
	if err != nil {
		return nil, err
	}

	attrs, methods := r.Elements(0), r.Elements(1)
	ar := &AccessRights{
		Attributes: make([]AttributeAccessItem, 0, len(attrs)),
		Methods:    make([]MethodAccessItem, 0, len(methods)),
	}
	for _, e := range attrs {
		item, err := ParseAttributeAccessItem(&e)
		if err != nil {
			return nil, AccessRightsSchema.FieldError(0, err)
		}
		ar.Attributes = append(ar.Attributes, *item)
	}
	for _, e := range methods {
		item, err := ParseMethodAccessItem(&e)
		if err != nil {
			return nil, AccessRightsSchema.FieldError(1, err)
		}
		ar.Methods = append(ar.Methods, *item)
	}
	return ar, nil
}

// Attribute returns the access item of attribute id.
func (ar *AccessRights) Attribute(id int8) (AttributeAccessItem, bool) {
	for _, a := range ar.Attributes {
		if a.AttributeID == id {
			return a, true
		}
	}
	return AttributeAccessItem{}, false
}

// Method returns the access item of method id.
func (ar *AccessRights) Method(id int8) (MethodAccessItem, bool) {
	for _, m := range ar.Methods {
		if m.MethodID == id {
			return m, true
		}
	}
	return MethodAccessItem{}, false
}

func (ar *AccessRights) fields() []cosem.Data {
	attrs := make([]cosem.Data, len(ar.Attributes))
	for i := range ar.Attributes {
		attrs[i] = cosem.NewStructure(ar.Attributes[i].fields()...)
	}
	methods := make([]cosem.Data, len(ar.Methods))
	for i := range ar.Methods {
		methods[i] = cosem.NewStructure(ar.Methods[i].fields()...)
	}
	return []cosem.Data{
		cosem.NewArray(attrs...),
		cosem.NewArray(methods...),
	}
}

// ToData serializes the access rights.
func (ar *AccessRights) ToData() (cosem.Data, error) {
	return AccessRightsSchema.Pack(ar.fields()...)
}

// ToDefinition returns the access rights as a display definition.
func (ar *AccessRights) ToDefinition() *definition.Structure {
	return AccessRightsSchema.Definition(ar.fields()...)
}

// AccessRightsDefinition returns the default-valued definition.
func AccessRightsDefinition() *definition.Structure {
	return AccessRightsSchema.Definition()
}

// ObjectListElementSchema is the wire layout of ObjectListElement, the
// entry of an association's object_list.
var ObjectListElementSchema = &schema.Structure{
	Name: "ObjectListElement",
	Fields: []schema.Field{
		{Name: "ClassID", Type: cosem.TypeLongUnsigned},
		{Name: "Version", Type: cosem.TypeUnsigned},
		{Name: "LogicalName", Type: cosem.TypeOctetString},
		{Name: "AccessRights", Type: cosem.TypeStructure, Struct: AccessRightsSchema},
	},
}

// ObjectListElement describes one object visible through an association.
type ObjectListElement struct {
	ClassID      uint16
	Version      uint8
	LogicalName  obis.LogicalName
	AccessRights AccessRights
}

// ParseObjectListElement parses an ObjectListElement structure.
func ParseObjectListElement(d *cosem.Data) (*ObjectListElement, error) {
	r, err := ObjectListElementSchema.Unpack(d)
	if err != nil {
		return nil, err
	}

	ln, err := obis.FromBytes(r.Bytes(2))
	if err != nil {
		return nil, ObjectListElementSchema.FieldError(2, err)
	}
	ar, err := ParseAccessRights(r.Item(3))
	if err != nil {
		return nil, ObjectListElementSchema.FieldError(3, err)
	}

	return &ObjectListElement{
		ClassID:      r.Uint16(0),
		Version:      r.Uint8(1),
		LogicalName:  ln,
		AccessRights: *ar,
	}, nil
}

func (o *ObjectListElement) fields() []cosem.Data {
	return []cosem.Data{
		cosem.NewLongUnsigned(o.ClassID),
		cosem.NewUnsigned(o.Version),
		cosem.NewOctetString(o.LogicalName.Bytes()),
		cosem.NewStructure(o.AccessRights.fields()...),
	}
}

// ToData serializes the element.
func (o *ObjectListElement) ToData() (cosem.Data, error) {
	return ObjectListElementSchema.Pack(o.fields()...)
}

// ToDefinition returns the element as a display definition.
func (o *ObjectListElement) ToDefinition() *definition.Structure {
	return ObjectListElementSchema.Definition(o.fields()...)
}

// ObjectListElementDefinition returns the default-valued definition.
func ObjectListElementDefinition() *definition.Structure {
	return ObjectListElementSchema.Definition()
}

// ParseObjectList parses an object_list array.
func ParseObjectList(d *cosem.Data) ([]ObjectListElement, error) {
	return ParseArray(d, ParseObjectListElement)
}
