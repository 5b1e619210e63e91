package ic

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ngc-ami/cosem-go/pkg/cosem"
	"github.com/ngc-ami/cosem-go/pkg/definition"
	"github.com/ngc-ami/cosem-go/pkg/obis"
	"github.com/ngc-ami/cosem-go/pkg/trace"
)

// Interface class IDs.
const (
	ClassData          uint16 = 1
	ClassClock         uint16 = 8
	ClassAssociationLN uint16 = 15
)

// ValueAttribute is the value attribute of the Data class.
const ValueAttribute int8 = 2

const valueName = "Value"

// Object is a COSEM object bound to a transport.
type Object interface {
	LogicalName() obis.LogicalName
	ClassID() uint16

	// Value reads attribute 2.
	Value(ctx context.Context) (*cosem.Data, error)

	// SetValue writes attribute 2.
	SetValue(ctx context.Context, v cosem.Data) error

	// Definition reads attribute 2 and returns it as a display tree.
	Definition(ctx context.Context) (definition.Definition, error)
}

// Data is the generic wrapper of an interface class 1 object. Other classes
// reuse it with their own class ID.
type Data struct {
	logicalName obis.LogicalName
	classID     uint16
	transport   Transport
	cfg         config

	// cache holds the last value read per attribute.
	cache map[int8]*cosem.Data
}

// NewData returns the generic wrapper for ln.
func NewData(ln obis.LogicalName, t Transport, opts ...Option) *Data {
	return newObject(ClassData, ln, t, opts)
}

// NewObject returns a generic wrapper for an object of any interface class.
func NewObject(classID uint16, ln obis.LogicalName, t Transport, opts ...Option) *Data {
	return newObject(classID, ln, t, opts)
}

func newObject(classID uint16, ln obis.LogicalName, t Transport, opts []Option) *Data {
	cfg := newConfig(opts)
	cfg.logger = cfg.logger.With(slog.String("ln", ln.String()), slog.Int("class", int(classID)))
	return &Data{
		logicalName: ln,
		classID:     classID,
		transport:   t,
		cfg:         cfg,
		cache:       make(map[int8]*cosem.Data),
	}
}

// LogicalName returns the object's logical name.
func (d *Data) LogicalName() obis.LogicalName { return d.logicalName }

// ClassID returns the object's interface class.
func (d *Data) ClassID() uint16 { return d.classID }

// SessionID returns the ID written to trace events.
func (d *Data) SessionID() string { return d.cfg.sessionID }

// Value reads attribute 2. While the transport is disconnected it returns
// the last value read, or nil if there is none, without a request.
func (d *Data) Value(ctx context.Context) (*cosem.Data, error) {
	return d.Attribute(ctx, ValueAttribute)
}

// SetValue writes attribute 2.
func (d *Data) SetValue(ctx context.Context, v cosem.Data) error {
	return d.SetAttribute(ctx, ValueAttribute, v)
}

// Cached returns the last value read from attr without a request.
func (d *Data) Cached(attr int8) *cosem.Data {
	return d.cache[attr]
}

// Definition reads attribute 2 and converts it with definition.FromData.
func (d *Data) Definition(ctx context.Context) (definition.Definition, error) {
	v, err := d.Value(ctx)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return definition.NewScalar(valueName, cosem.TypeNull, nil)
	}
	return definition.FromData(valueName, v)
}

// Attribute reads attr. Disconnected transports serve the cache. A failed
// read clears the cache of attr.
func (d *Data) Attribute(ctx context.Context, attr int8) (*cosem.Data, error) {
	if !d.transport.IsConnected() {
		d.cfg.logger.Debug("transport disconnected, serving cached value", slog.Int("attr", int(attr)))
		return d.cache[attr], nil
	}

	start := time.Now()
	res, err := d.transport.Get(ctx, d.classID, d.logicalName, attr)
	event := d.event(trace.RequestGet, attr, start)

	switch {
	case err != nil:
	case res.Kind == ResultError:
		event.Result = uint8(res.Access)
		err = fmt.Errorf("%w: %s", ErrAccessDenied, res.Access)
	default:
		if verr := res.Value.Validate(); verr != nil {
			err = fmt.Errorf("%w: %w", ErrInvalidValue, verr)
		} else {
			event.Value = encodeForTrace(res.Value)
		}
	}

	if err != nil {
		delete(d.cache, attr)
		event.Error = err.Error()
		d.cfg.tracer.Log(event)
		d.cfg.logger.Debug("get failed", slog.Int("attr", int(attr)), slog.Any("error", err))
		return nil, protocolError(d.logicalName, attr, RequestGet, err)
	}

	d.cfg.tracer.Log(event)
	v := res.Value
	d.cache[attr] = &v
	d.cfg.logger.Debug("get", slog.Int("attr", int(attr)), slog.String("type", v.Type.String()))
	return &v, nil
}

// SetAttribute writes attr. The cache is left untouched.
func (d *Data) SetAttribute(ctx context.Context, attr int8, v cosem.Data) error {
	if err := v.Validate(); err != nil {
		return protocolError(d.logicalName, attr, RequestSet, err)
	}

	start := time.Now()
	res, err := d.transport.Set(ctx, d.classID, d.logicalName, attr, v)
	event := d.event(trace.RequestSet, attr, start)
	event.Value = encodeForTrace(v)
	event.Result = uint8(res)

	if err == nil && res != AccessSuccess {
		err = fmt.Errorf("%w: %s", ErrAccessDenied, res)
	}
	if err != nil {
		event.Error = err.Error()
		d.cfg.tracer.Log(event)
		d.cfg.logger.Debug("set failed", slog.Int("attr", int(attr)), slog.Any("error", err))
		return protocolError(d.logicalName, attr, RequestSet, err)
	}

	d.cfg.tracer.Log(event)
	d.cfg.logger.Debug("set", slog.Int("attr", int(attr)))
	return nil
}

// Invoke calls method with an optional parameter and returns the optional
// return value.
func (d *Data) Invoke(ctx context.Context, method int8, param *cosem.Data) (*cosem.Data, error) {
	if param != nil {
		if err := param.Validate(); err != nil {
			return nil, protocolError(d.logicalName, method, RequestAction, err)
		}
	}

	start := time.Now()
	res, ret, err := d.transport.Action(ctx, d.classID, d.logicalName, method, param)
	event := d.event(trace.RequestAction, method, start)
	event.Result = uint8(res)
	if param != nil {
		event.Value = encodeForTrace(*param)
	}

	if err == nil && res != ActionSuccess {
		err = fmt.Errorf("%w: %s", ErrAccessDenied, res)
	}
	if err != nil {
		event.Error = err.Error()
		d.cfg.tracer.Log(event)
		d.cfg.logger.Debug("action failed", slog.Int("method", int(method)), slog.Any("error", err))
		return nil, protocolError(d.logicalName, method, RequestAction, err)
	}

	d.cfg.tracer.Log(event)
	d.cfg.logger.Debug("action", slog.Int("method", int(method)))
	return ret, nil
}

func (d *Data) event(req trace.Request, id int8, start time.Time) trace.Event {
	return trace.Event{
		Timestamp:   start,
		SessionID:   d.cfg.sessionID,
		Request:     req,
		ClassID:     d.classID,
		LogicalName: d.logicalName.String(),
		ID:          id,
		Duration:    time.Since(start),
	}
}

// encodeForTrace returns nil for values that cannot be encoded; the trace
// then carries the request without payload.
func encodeForTrace(v cosem.Data) []byte {
	b, err := cosem.Encode(v)
	if err != nil {
		return nil
	}
	return b
}

var _ Object = (*Data)(nil)
