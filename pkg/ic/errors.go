package ic

import (
	"errors"
	"fmt"

	"github.com/ngc-ami/cosem-go/pkg/obis"
	"github.com/ngc-ami/cosem-go/pkg/trace"
)

// Wrapper errors.
var (
	ErrNilValue     = errors.New("value must not be nil")
	ErrAccessDenied = errors.New("access denied by meter")
	ErrInvalidValue = errors.New("invalid value from meter")
)

// RequestKind is the service that failed.
type RequestKind = trace.Request

// Request kinds.
const (
	RequestGet    = trace.RequestGet
	RequestSet    = trace.RequestSet
	RequestAction = trace.RequestAction
)

// ProtocolError reports a failed request on one object.
// ID is the attribute index for get and set and the method index for action.
type ProtocolError struct {
	LogicalName obis.LogicalName
	ID          int8
	Request     RequestKind
	Reason      string
	Err         error
}

// Error implements error.
func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s %s/%d: %s", e.Request, e.LogicalName, e.ID, e.Reason)
}

// Unwrap returns the underlying cause.
func (e *ProtocolError) Unwrap() error {
	return e.Err
}

func protocolError(ln obis.LogicalName, id int8, req RequestKind, err error) *ProtocolError {
	return &ProtocolError{
		LogicalName: ln,
		ID:          id,
		Request:     req,
		Reason:      err.Error(),
		Err:         err,
	}
}
