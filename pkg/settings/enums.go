package settings

import "github.com/ngc-ami/cosem-go/pkg/definition"

// ConfigurationContentType is the encoding of a configuration XML blob.
type ConfigurationContentType uint8

const (
	ContentTypeXML      ConfigurationContentType = 0
	ContentTypeGzipXML  ConfigurationContentType = 1
	ContentTypeDeflated ConfigurationContentType = 2
)

// ConfigurationContentTypeDomain enumerates ConfigurationContentType.
var ConfigurationContentTypeDomain = definition.NewEnumDomain("ConfigurationContentType",
	definition.EnumValue{Value: uint8(ContentTypeXML), Ident: "xml"},
	definition.EnumValue{Value: uint8(ContentTypeGzipXML), Ident: "gzip_xml"},
	definition.EnumValue{Value: uint8(ContentTypeDeflated), Ident: "deflated_xml"},
)

// String returns the content type description.
func (c ConfigurationContentType) String() string {
	return ConfigurationContentTypeDomain.Description(uint8(c))
}

// EnergizationMode selects how a meter re-energizes its load.
type EnergizationMode uint8

const (
	EnergizationDisabled   EnergizationMode = 0
	EnergizationImmediate  EnergizationMode = 1
	EnergizationScheduled  EnergizationMode = 2
	EnergizationRandomized EnergizationMode = 3
)

// EnergizationModeDomain enumerates EnergizationMode.
var EnergizationModeDomain = definition.NewEnumDomain("EnergizationMode",
	definition.EnumValue{Value: uint8(EnergizationDisabled), Ident: "disabled"},
	definition.EnumValue{Value: uint8(EnergizationImmediate), Ident: "immediate"},
	definition.EnumValue{Value: uint8(EnergizationScheduled), Ident: "scheduled"},
	definition.EnumValue{Value: uint8(EnergizationRandomized), Ident: "randomized"},
)

// String returns the mode description.
func (m EnergizationMode) String() string {
	return EnergizationModeDomain.Description(uint8(m))
}

// RelayState is the state of the load relay.
type RelayState uint8

const (
	RelayDisconnected         RelayState = 0
	RelayConnected            RelayState = 1
	RelayReadyForReconnection RelayState = 2
)

// RelayStateDomain enumerates RelayState.
var RelayStateDomain = definition.NewEnumDomain("RelayState",
	definition.EnumValue{Value: uint8(RelayDisconnected), Ident: "disconnected"},
	definition.EnumValue{Value: uint8(RelayConnected), Ident: "connected"},
	definition.EnumValue{Value: uint8(RelayReadyForReconnection), Ident: "ready_for_reconnection"},
)

// String returns the relay state description.
func (s RelayState) String() string {
	return RelayStateDomain.Description(uint8(s))
}

// LoadControlReason is why the relay last changed state.
type LoadControlReason uint8

const (
	ReasonNone        LoadControlReason = 0
	ReasonManual      LoadControlReason = 1
	ReasonRemote      LoadControlReason = 2
	ReasonLocal       LoadControlReason = 3
	ReasonLimiter     LoadControlReason = 4
	ReasonSupervision LoadControlReason = 5
	ReasonSchedule    LoadControlReason = 6
)

// LoadControlReasonDomain enumerates LoadControlReason.
var LoadControlReasonDomain = definition.NewEnumDomain("LoadControlReason",
	definition.EnumValue{Value: uint8(ReasonNone), Ident: "none"},
	definition.EnumValue{Value: uint8(ReasonManual), Ident: "manual"},
	definition.EnumValue{Value: uint8(ReasonRemote), Ident: "remote"},
	definition.EnumValue{Value: uint8(ReasonLocal), Ident: "local"},
	definition.EnumValue{Value: uint8(ReasonLimiter), Ident: "limiter"},
	definition.EnumValue{Value: uint8(ReasonSupervision), Ident: "supervision"},
	definition.EnumValue{Value: uint8(ReasonSchedule), Ident: "schedule"},
)

// String returns the reason description.
func (r LoadControlReason) String() string {
	return LoadControlReasonDomain.Description(uint8(r))
}

// AttributeAccessMode is the access a client has to an attribute.
type AttributeAccessMode uint8

const (
	AttributeNoAccess               AttributeAccessMode = 0
	AttributeReadOnly               AttributeAccessMode = 1
	AttributeWriteOnly              AttributeAccessMode = 2
	AttributeReadWrite              AttributeAccessMode = 3
	AttributeAuthenticatedReadOnly  AttributeAccessMode = 4
	AttributeAuthenticatedWriteOnly AttributeAccessMode = 5
	AttributeAuthenticatedReadWrite AttributeAccessMode = 6
)

// AttributeAccessModeDomain enumerates AttributeAccessMode.
var AttributeAccessModeDomain = definition.NewEnumDomain("AttributeAccessMode",
	definition.EnumValue{Value: uint8(AttributeNoAccess), Ident: "no_access"},
	definition.EnumValue{Value: uint8(AttributeReadOnly), Ident: "read_only"},
	definition.EnumValue{Value: uint8(AttributeWriteOnly), Ident: "write_only"},
	definition.EnumValue{Value: uint8(AttributeReadWrite), Ident: "read_and_write"},
	definition.EnumValue{Value: uint8(AttributeAuthenticatedReadOnly), Ident: "authenticated_read_only"},
	definition.EnumValue{Value: uint8(AttributeAuthenticatedWriteOnly), Ident: "authenticated_write_only"},
	definition.EnumValue{Value: uint8(AttributeAuthenticatedReadWrite), Ident: "authenticated_read_and_write"},
)

// String returns the access mode description.
func (m AttributeAccessMode) String() string {
	return AttributeAccessModeDomain.Description(uint8(m))
}

// CanRead reports whether the mode grants read access.
func (m AttributeAccessMode) CanRead() bool {
	switch m {
	case AttributeReadOnly, AttributeReadWrite, AttributeAuthenticatedReadOnly, AttributeAuthenticatedReadWrite:
		return true
	}
	return false
}

// CanWrite reports whether the mode grants write access.
func (m AttributeAccessMode) CanWrite() bool {
	switch m {
	case AttributeWriteOnly, AttributeReadWrite, AttributeAuthenticatedWriteOnly, AttributeAuthenticatedReadWrite:
		return true
	}
	return false
}

// MethodAccessMode is the access a client has to a method.
type MethodAccessMode uint8

const (
	MethodNoAccess            MethodAccessMode = 0
	MethodAccess              MethodAccessMode = 1
	MethodAuthenticatedAccess MethodAccessMode = 2
)

// MethodAccessModeDomain enumerates MethodAccessMode.
var MethodAccessModeDomain = definition.NewEnumDomain("MethodAccessMode",
	definition.EnumValue{Value: uint8(MethodNoAccess), Ident: "no_access"},
	definition.EnumValue{Value: uint8(MethodAccess), Ident: "access"},
	definition.EnumValue{Value: uint8(MethodAuthenticatedAccess), Ident: "authenticated_access"},
)

// String returns the access mode description.
func (m MethodAccessMode) String() string {
	return MethodAccessModeDomain.Description(uint8(m))
}
