package ic

import (
	"context"
	"fmt"

	"github.com/ngc-ami/cosem-go/pkg/cosem"
	"github.com/ngc-ami/cosem-go/pkg/obis"
)

// Transport carries COSEM services to a meter. It is owned by the caller
// and shared by the wrappers created on it.
type Transport interface {
	// Get reads attribute attr of the object.
	Get(ctx context.Context, classID uint16, ln obis.LogicalName, attr int8) (GetResult, error)

	// Set writes attribute attr of the object.
	Set(ctx context.Context, classID uint16, ln obis.LogicalName, attr int8, value cosem.Data) (AccessResult, error)

	// Action invokes a method. param is nil for methods without parameter.
	Action(ctx context.Context, classID uint16, ln obis.LogicalName, method int8, param *cosem.Data) (ActionResult, *cosem.Data, error)

	// IsConnected reports whether requests can currently reach the meter.
	IsConnected() bool
}

// ResultKind tells which arm of a GetResult is set.
type ResultKind uint8

const (
	// ResultData means the meter returned a value.
	ResultData ResultKind = 0
	// ResultError means the meter returned a data-access result.
	ResultError ResultKind = 1
)

// GetResult is the outcome of a Get.
type GetResult struct {
	Kind   ResultKind
	Value  cosem.Data
	Access AccessResult
}

// DataResult returns a successful GetResult.
func DataResult(v cosem.Data) GetResult {
	return GetResult{Kind: ResultData, Value: v}
}

// ErrorResult returns a failed GetResult.
func ErrorResult(r AccessResult) GetResult {
	return GetResult{Kind: ResultError, Access: r}
}

// AccessResult is the DLMS data-access-result code.
type AccessResult uint8

// Data-access results.
const (
	AccessSuccess                 AccessResult = 0
	AccessHardwareFault           AccessResult = 1
	AccessTemporaryFailure        AccessResult = 2
	AccessReadWriteDenied         AccessResult = 3
	AccessObjectUndefined         AccessResult = 4
	AccessObjectClassInconsistent AccessResult = 9
	AccessObjectUnavailable       AccessResult = 11
	AccessTypeUnmatched           AccessResult = 12
	AccessScopeOfAccessViolated   AccessResult = 13
	AccessDataBlockUnavailable    AccessResult = 14
	AccessLongGetAborted          AccessResult = 15
	AccessNoLongGetInProgress     AccessResult = 16
	AccessLongSetAborted          AccessResult = 17
	AccessNoLongSetInProgress     AccessResult = 18
	AccessDataBlockNumberInvalid  AccessResult = 19
	AccessOtherReason             AccessResult = 250
)

var accessResultNames = map[AccessResult]string{
	AccessSuccess:                 "success",
	AccessHardwareFault:           "hardware-fault",
	AccessTemporaryFailure:        "temporary-failure",
	AccessReadWriteDenied:         "read-write-denied",
	AccessObjectUndefined:         "object-undefined",
	AccessObjectClassInconsistent: "object-class-inconsistent",
	AccessObjectUnavailable:       "object-unavailable",
	AccessTypeUnmatched:           "type-unmatched",
	AccessScopeOfAccessViolated:   "scope-of-access-violated",
	AccessDataBlockUnavailable:    "data-block-unavailable",
	AccessLongGetAborted:          "long-get-aborted",
	AccessNoLongGetInProgress:     "no-long-get-in-progress",
	AccessLongSetAborted:          "long-set-aborted",
	AccessNoLongSetInProgress:     "no-long-set-in-progress",
	AccessDataBlockNumberInvalid:  "data-block-number-invalid",
	AccessOtherReason:             "other-reason",
}

// String returns the DLMS name of the result.
func (r AccessResult) String() string {
	if s, ok := accessResultNames[r]; ok {
		return s
	}
	return fmt.Sprintf("access-result(%d)", uint8(r))
}

// ActionResult is the DLMS action-result code.
type ActionResult uint8

// Action results.
const (
	ActionSuccess                 ActionResult = 0
	ActionHardwareFault           ActionResult = 1
	ActionTemporaryFailure        ActionResult = 2
	ActionReadWriteDenied         ActionResult = 3
	ActionObjectUndefined         ActionResult = 4
	ActionObjectClassInconsistent ActionResult = 9
	ActionObjectUnavailable       ActionResult = 11
	ActionTypeUnmatched           ActionResult = 12
	ActionScopeOfAccessViolated   ActionResult = 13
	ActionDataBlockUnavailable    ActionResult = 14
	ActionLongActionAborted       ActionResult = 15
	ActionNoLongActionInProgress  ActionResult = 16
	ActionOtherReason             ActionResult = 250
)

var actionResultNames = map[ActionResult]string{
	ActionSuccess:                 "success",
	ActionHardwareFault:           "hardware-fault",
	ActionTemporaryFailure:        "temporary-failure",
	ActionReadWriteDenied:         "read-write-denied",
	ActionObjectUndefined:         "object-undefined",
	ActionObjectClassInconsistent: "object-class-inconsistent",
	ActionObjectUnavailable:       "object-unavailable",
	ActionTypeUnmatched:           "type-unmatched",
	ActionScopeOfAccessViolated:   "scope-of-access-violated",
	ActionDataBlockUnavailable:    "data-block-unavailable",
	ActionLongActionAborted:       "long-action-aborted",
	ActionNoLongActionInProgress:  "no-long-action-in-progress",
	ActionOtherReason:             "other-reason",
}

// String returns the DLMS name of the result.
func (r ActionResult) String() string {
	if s, ok := actionResultNames[r]; ok {
		return s
	}
	return fmt.Sprintf("action-result(%d)", uint8(r))
}
