package ic

import (
	"context"

	"github.com/ngc-ami/cosem-go/pkg/obis"
	"github.com/ngc-ami/cosem-go/pkg/settings"
)

// ConfigurationXML holds the meter configuration document.
type ConfigurationXML struct {
	structured[settings.ConfigurationXML, *settings.ConfigurationXML]
}

// NewConfigurationXML returns the wrapper for ln.
func NewConfigurationXML(ln obis.LogicalName, t Transport, opts ...Option) *ConfigurationXML {
	return &ConfigurationXML{structured[settings.ConfigurationXML, *settings.ConfigurationXML]{
		Data:    NewData(ln, t, opts...),
		parse:   settings.ParseConfigurationXML,
		initial: settings.ConfigurationXMLDefinition,
	}}
}

// Configuration reads the configuration document.
func (c *ConfigurationXML) Configuration(ctx context.Context) (*settings.ConfigurationXML, error) {
	return c.get(ctx)
}

// SetConfiguration writes the configuration document.
func (c *ConfigurationXML) SetConfiguration(ctx context.Context, s *settings.ConfigurationXML) error {
	return c.set(ctx, s)
}

// NGCDescription identifies the network gateway firmware.
type NGCDescription struct {
	structured[settings.NGCDescription, *settings.NGCDescription]
}

// NewNGCDescription returns the wrapper for ln.
func NewNGCDescription(ln obis.LogicalName, t Transport, opts ...Option) *NGCDescription {
	return &NGCDescription{structured[settings.NGCDescription, *settings.NGCDescription]{
		Data:    NewData(ln, t, opts...),
		parse:   settings.ParseNGCDescription,
		initial: settings.NGCDescriptionDefinition,
	}}
}

// Description reads the gateway description.
func (n *NGCDescription) Description(ctx context.Context) (*settings.NGCDescription, error) {
	return n.get(ctx)
}
