package simmeter

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/ngc-ami/cosem-go/pkg/cosem"
	"github.com/ngc-ami/cosem-go/pkg/ic"
	"github.com/ngc-ami/cosem-go/pkg/obis"
)

// Key addresses one object.
type Key struct {
	ClassID     uint16
	LogicalName obis.LogicalName
}

// Object is the simulated state of one COSEM object.
type Object struct {
	Attributes map[int8]cosem.Data

	// Injected results. Zero means success.
	GetResult    ic.AccessResult
	SetResult    ic.AccessResult
	ActionResult ic.ActionResult
}

// Request is one request received by the meter.
type Request struct {
	Kind  ic.RequestKind
	Key   Key
	ID    int8
	Value *cosem.Data
}

// Handlers override the default behavior of a method. A handler returns the
// action result and the optional return value.
type Handlers struct {
	OnAction func(key Key, method int8, param *cosem.Data) (ic.ActionResult, *cosem.Data)
}

// Meter is an in-memory ic.Transport. It is safe for concurrent use.
type Meter struct {
	mu        sync.RWMutex
	connected bool
	objects   map[Key]*Object
	requests  []Request
	logger    *slog.Logger

	// Handlers are consulted for actions.
	Handlers Handlers
}

// New returns a connected meter without objects.
func New(logger *slog.Logger) *Meter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Meter{
		connected: true,
		objects:   make(map[Key]*Object),
		logger:    logger,
	}
}

// Connect marks the link as up.
func (m *Meter) Connect() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connected = true
}

// Disconnect marks the link as down. Requests then fail with
// ErrNotConnected.
func (m *Meter) Disconnect() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connected = false
}

// IsConnected implements ic.Transport.
func (m *Meter) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}

// Put stores an attribute value, creating the object if needed.
func (m *Meter) Put(classID uint16, ln obis.LogicalName, attr int8, v cosem.Data) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.object(Key{classID, ln}).Attributes[attr] = v
}

// Define creates an object without attributes. Gets on it return
// object-unavailable.
func (m *Meter) Define(classID uint16, ln obis.LogicalName) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.object(Key{classID, ln})
}

// Attribute returns a stored attribute value.
func (m *Meter) Attribute(classID uint16, ln obis.LogicalName, attr int8) (cosem.Data, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	obj, ok := m.objects[Key{classID, ln}]
	if !ok {
		return cosem.Data{}, false
	}
	v, ok := obj.Attributes[attr]
	return v, ok
}

// InjectGetResult makes every Get on the object return r.
func (m *Meter) InjectGetResult(classID uint16, ln obis.LogicalName, r ic.AccessResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.object(Key{classID, ln}).GetResult = r
}

// InjectSetResult makes every Set on the object return r.
func (m *Meter) InjectSetResult(classID uint16, ln obis.LogicalName, r ic.AccessResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.object(Key{classID, ln}).SetResult = r
}

// InjectActionResult makes every Action on the object return r.
func (m *Meter) InjectActionResult(classID uint16, ln obis.LogicalName, r ic.ActionResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.object(Key{classID, ln}).ActionResult = r
}

// Keys returns the simulated objects ordered by logical name and class.
func (m *Meter) Keys() []Key {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]Key, 0, len(m.objects))
	for k := range m.objects {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b Key) int {
		if c := slices.Compare(a.LogicalName[:], b.LogicalName[:]); c != 0 {
			return c
		}
		return int(a.ClassID) - int(b.ClassID)
	})
	return keys
}

// ClassOf returns the class of the first object with logical name ln.
func (m *Meter) ClassOf(ln obis.LogicalName) (uint16, bool) {
	for _, k := range m.Keys() {
		if k.LogicalName == ln {
			return k.ClassID, true
		}
	}
	return 0, false
}

// Requests returns a copy of the requests received so far.
func (m *Meter) Requests() []Request {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.requests)
}

// ClearRequests forgets the recorded requests.
func (m *Meter) ClearRequests() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = m.requests[:0]
}

// Get implements ic.Transport.
func (m *Meter) Get(ctx context.Context, classID uint16, ln obis.LogicalName, attr int8) (ic.GetResult, error) {
	if err := ctx.Err(); err != nil {
		return ic.GetResult{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := Key{classID, ln}
	m.requests = append(m.requests, Request{Kind: ic.RequestGet, Key: key, ID: attr})
	if !m.connected {
		return ic.GetResult{}, ErrNotConnected
	}

	obj, ok := m.objects[key]
	if !ok {
		m.logger.Debug("get on undefined object", slog.String("ln", ln.String()), slog.Int("class", int(classID)))
		return ic.ErrorResult(ic.AccessObjectUndefined), nil
	}
	if obj.GetResult != ic.AccessSuccess {
		return ic.ErrorResult(obj.GetResult), nil
	}
	v, ok := obj.Attributes[attr]
	if !ok {
		return ic.ErrorResult(ic.AccessObjectUnavailable), nil
	}
	return ic.DataResult(v), nil
}

// Set implements ic.Transport. A value whose type differs from the stored
// one is refused with type-unmatched unless either side is null-data.
func (m *Meter) Set(ctx context.Context, classID uint16, ln obis.LogicalName, attr int8, value cosem.Data) (ic.AccessResult, error) {
	if err := ctx.Err(); err != nil {
		return ic.AccessOtherReason, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := Key{classID, ln}
	v := value
	m.requests = append(m.requests, Request{Kind: ic.RequestSet, Key: key, ID: attr, Value: &v})
	if !m.connected {
		return ic.AccessOtherReason, ErrNotConnected
	}

	obj, ok := m.objects[key]
	if !ok {
		return ic.AccessObjectUndefined, nil
	}
	if obj.SetResult != ic.AccessSuccess {
		return obj.SetResult, nil
	}
	if old, ok := obj.Attributes[attr]; ok && !old.IsNull() && !value.IsNull() && old.Type != value.Type {
		return ic.AccessTypeUnmatched, nil
	}

	obj.Attributes[attr] = value
	m.logger.Debug("set", slog.String("ln", ln.String()), slog.Int("attr", int(attr)), slog.String("type", value.Type.String()))
	return ic.AccessSuccess, nil
}

// Action implements ic.Transport.
func (m *Meter) Action(ctx context.Context, classID uint16, ln obis.LogicalName, method int8, param *cosem.Data) (ic.ActionResult, *cosem.Data, error) {
	if err := ctx.Err(); err != nil {
		return ic.ActionOtherReason, nil, err
	}

	m.mu.Lock()
	key := Key{classID, ln}
	m.requests = append(m.requests, Request{Kind: ic.RequestAction, Key: key, ID: method, Value: param})
	connected := m.connected
	obj, ok := m.objects[key]
	var injected ic.ActionResult
	if ok {
		injected = obj.ActionResult
	}
	handler := m.Handlers.OnAction
	m.mu.Unlock()

	switch {
	case !connected:
		return ic.ActionOtherReason, nil, ErrNotConnected
	case !ok:
		return ic.ActionObjectUndefined, nil, nil
	case injected != ic.ActionSuccess:
		return injected, nil, nil
	case handler != nil:
		res, ret := handler(key, method, param)
		return res, ret, nil
	default:
		return ic.ActionSuccess, nil, nil
	}
}

// object returns the object for key, creating it. Callers hold m.mu.
func (m *Meter) object(key Key) *Object {
	obj, ok := m.objects[key]
	if !ok {
		obj = &Object{Attributes: make(map[int8]cosem.Data)}
		m.objects[key] = obj
	}
	return obj
}

var _ ic.Transport = (*Meter)(nil)
