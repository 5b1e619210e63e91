package trace

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"

	"github.com/ngc-ami/cosem-go/pkg/cosem"
)

// ErrNoValue is returned by Event.Data for events without a value.
var ErrNoValue = errors.New("event carries no value")

// Trace files use canonical CBOR with RFC 3339 nanosecond timestamps, so two
// captures of the same requests are byte-identical.
var (
	encMode = mustEncMode()
	decMode = mustDecMode()
)

func mustEncMode() cbor.EncMode {
	m, err := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("trace: CBOR encoder mode: %v", err))
	}
	return m
}

func mustDecMode() cbor.DecMode {
	m, err := cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyQuiet,
		IndefLength: cbor.IndefLengthAllowed,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("trace: CBOR decoder mode: %v", err))
	}
	return m
}

// Event is one request and its outcome.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the request was issued (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID groups the events of one client session (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Request is the kind of service used.
	Request Request `cbor:"3,keyasint"`

	// ClassID is the interface class of the target object.
	ClassID uint16 `cbor:"4,keyasint"`

	// LogicalName is the target object in A-B:C.D.E*F form.
	LogicalName string `cbor:"5,keyasint"`

	// ID is the attribute index for get/set and the method index for action.
	ID int8 `cbor:"6,keyasint"`

	// Result is the data-access or action result code reported by the meter.
	Result uint8 `cbor:"7,keyasint"`

	// Value is the A-XDR encoding of the value read, written or passed as
	// action parameter.
	Value []byte `cbor:"8,keyasint,omitempty"`

	// Error is set when the request failed locally or the value could not
	// be interpreted.
	Error string `cbor:"9,keyasint,omitempty"`

	// Duration is the round trip of the request.
	Duration time.Duration `cbor:"10,keyasint,omitempty"`
}

// Failed returns true if the event carries an error or a non-success result.
func (e Event) Failed() bool {
	return e.Error != "" || e.Result != 0
}

// Data decodes the A-XDR value of the event.
func (e Event) Data() (cosem.Data, error) {
	if len(e.Value) == 0 {
		return cosem.Data{}, ErrNoValue
	}
	return cosem.Decode(e.Value)
}

// Target returns the addressed member as class@ln/id, with /method/ for
// actions.
func (e Event) Target() string {
	if e.Request == RequestAction {
		return fmt.Sprintf("%d@%s/method/%d", e.ClassID, e.LogicalName, e.ID)
	}
	return fmt.Sprintf("%d@%s/%d", e.ClassID, e.LogicalName, e.ID)
}

// EncodeEvent encodes an event as one CBOR item.
func EncodeEvent(event Event) ([]byte, error) {
	return encMode.Marshal(event)
}

// DecodeEvent decodes one CBOR item into an event.
func DecodeEvent(data []byte) (Event, error) {
	var event Event
	if err := decMode.Unmarshal(data, &event); err != nil {
		return Event{}, err
	}
	return event, nil
}

func newDecoder(r io.Reader) *cbor.Decoder {
	return decMode.NewDecoder(r)
}

// Request identifies the COSEM service of an event.
type Request uint8

const (
	// RequestGet reads an attribute.
	RequestGet Request = 0
	// RequestSet writes an attribute.
	RequestSet Request = 1
	// RequestAction invokes a method.
	RequestAction Request = 2
)

// String returns the request name.
func (r Request) String() string {
	switch r {
	case RequestGet:
		return "GET"
	case RequestSet:
		return "SET"
	case RequestAction:
		return "ACTION"
	default:
		return "UNKNOWN"
	}
}

// ParseRequest returns the request for a name as printed by String.
func ParseRequest(s string) (Request, bool) {
	switch s {
	case "GET", "get":
		return RequestGet, true
	case "SET", "set":
		return RequestSet, true
	case "ACTION", "action":
		return RequestAction, true
	default:
		return 0, false
	}
}

// NewSessionID returns a fresh random session identifier.
func NewSessionID() string {
	return uuid.NewString()
}
