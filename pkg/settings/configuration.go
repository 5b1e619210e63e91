package settings

import (
	"github.com/ngc-ami/cosem-go/pkg/cosem"
	"github.com/ngc-ami/cosem-go/pkg/definition"
	"github.com/ngc-ami/cosem-go/pkg/schema"
)

// ConfigurationXMLSchema is the wire layout of ConfigurationXML.
var ConfigurationXMLSchema = &schema.Structure{
	Name: "ConfigurationXML",
	Fields: []schema.Field{
		{Name: "ContentType", Type: cosem.TypeEnum, Domain: ConfigurationContentTypeDomain},
		{Name: "Content", Type: cosem.TypeOctetString},
	},
}

// ConfigurationXML is a meter configuration document.
type ConfigurationXML struct {
	ContentType ConfigurationContentType

	// Content is the document in the encoding named by ContentType.
	// A nil Content is sent as an empty octet string.
	Content []byte
}

// ParseConfigurationXML parses a ConfigurationXML structure.
func ParseConfigurationXML(d *cosem.Data) (*ConfigurationXML, error) {
	r, err := ConfigurationXMLSchema.Unpack(d)
	if err != nil {
		return nil, err
	}
	return &ConfigurationXML{
		ContentType: ConfigurationContentType(r.Uint8(0)),
		Content:     r.Bytes(1),
	}, nil
}

func (c *ConfigurationXML) fields() []cosem.Data {
	return []cosem.Data{
		cosem.NewEnum(uint8(c.ContentType)),
		cosem.NewOctetString(orEmpty(c.Content)),
	}
}

// ToData serializes the document.
func (c *ConfigurationXML) ToData() (cosem.Data, error) {
	return ConfigurationXMLSchema.Pack(c.fields()...)
}

// ToDefinition returns the document as a display definition.
func (c *ConfigurationXML) ToDefinition() *definition.Structure {
	return ConfigurationXMLSchema.Definition(c.fields()...)
}

// ConfigurationXMLDefinition returns the default-valued definition.
func ConfigurationXMLDefinition() *definition.Structure {
	return ConfigurationXMLSchema.Definition()
}

// NGCDescriptionSchema is the wire layout of NGCDescription.
var NGCDescriptionSchema = &schema.Structure{
	Name: "NGCDescription",
	Fields: []schema.Field{
		{Name: "DeviceType", Type: cosem.TypeVisibleString},
		{Name: "HardwareVersion", Type: cosem.TypeVisibleString},
		{Name: "FirmwareVersion", Type: cosem.TypeVisibleString},
		{Name: "SerialNumber", Type: cosem.TypeOctetString},
		{Name: "ManufactureDate", Type: cosem.TypeDate, Fallback: true},
		{Name: "MACAddress", Type: cosem.TypeOctetString},
	},
}

// NGCDescription identifies the meter hardware and firmware.
type NGCDescription struct {
	DeviceType      string
	HardwareVersion string
	FirmwareVersion string
	SerialNumber    []byte
	ManufactureDate cosem.Date
	MACAddress      []byte
}

// ParseNGCDescription parses an NGCDescription structure.
func ParseNGCDescription(d *cosem.Data) (*NGCDescription, error) {
	r, err := NGCDescriptionSchema.Unpack(d)
	if err != nil {
		return nil, err
	}
	return &NGCDescription{
		DeviceType:      r.Text(0),
		HardwareVersion: r.Text(1),
		FirmwareVersion: r.Text(2),
		SerialNumber:    r.Bytes(3),
		ManufactureDate: r.Date(4),
		MACAddress:      r.Bytes(5),
	}, nil
}

func (n *NGCDescription) fields() []cosem.Data {
	return []cosem.Data{
		cosem.NewVisibleString(n.DeviceType),
		cosem.NewVisibleString(n.HardwareVersion),
		cosem.NewVisibleString(n.FirmwareVersion),
		cosem.NewOctetString(orEmpty(n.SerialNumber)),
		cosem.NewDate(n.ManufactureDate),
		cosem.NewOctetString(orEmpty(n.MACAddress)),
	}
}

// ToData serializes the description.
func (n *NGCDescription) ToData() (cosem.Data, error) {
	return NGCDescriptionSchema.Pack(n.fields()...)
}

// ToDefinition returns the description as a display definition.
func (n *NGCDescription) ToDefinition() *definition.Structure {
	return NGCDescriptionSchema.Definition(n.fields()...)
}

// NGCDescriptionDefinition returns the default-valued definition.
func NGCDescriptionDefinition() *definition.Structure {
	return NGCDescriptionSchema.Definition()
}

func orEmpty(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}
