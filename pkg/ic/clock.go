package ic

import (
	"context"

	"github.com/ngc-ami/cosem-go/pkg/cosem"
	"github.com/ngc-ami/cosem-go/pkg/definition"
	"github.com/ngc-ami/cosem-go/pkg/obis"
)

// Clock attributes and methods.
const (
	ClockAttrTime     int8 = 2
	ClockAttrTimeZone int8 = 3
	ClockAttrStatus   int8 = 4

	ClockMethodAdjustToQuarter int8 = 1
)

// Clock is the interface class 8 object of the meter.
type Clock struct {
	*Data
}

// NewClock returns the clock wrapper for ln.
func NewClock(ln obis.LogicalName, t Transport, opts ...Option) *Clock {
	return &Clock{Data: newObject(ClassClock, ln, t, opts)}
}

// Time reads the meter time. Meters may report it as a date-time or as its
// 12-byte octet-string form. It returns nil if neither is present.
func (c *Clock) Time(ctx context.Context) (*cosem.DateTime, error) {
	v, err := c.Attribute(ctx, ClockAttrTime)
	if err != nil || v == nil {
		return nil, err
	}
	switch v.Type {
	case cosem.TypeDateTime:
		dt := v.Value.(cosem.DateTime)
		return &dt, nil
	case cosem.TypeOctetString:
		dt, err := cosem.DateTimeFromBytes(v.Value.([]byte))
		if err != nil {
			return nil, protocolError(c.logicalName, ClockAttrTime, RequestGet, err)
		}
		return &dt, nil
	default:
		return nil, nil
	}
}

// SetTime writes the meter time in its octet-string form.
func (c *Clock) SetTime(ctx context.Context, dt *cosem.DateTime) error {
	if dt == nil {
		return protocolError(c.logicalName, ClockAttrTime, RequestSet, ErrNilValue)
	}
	return c.SetAttribute(ctx, ClockAttrTime, cosem.NewOctetString(dt.Bytes()))
}

// TimeZone reads the deviation of local time from UTC in minutes.
func (c *Clock) TimeZone(ctx context.Context) (int16, bool, error) {
	v, err := c.Attribute(ctx, ClockAttrTimeZone)
	if err != nil || v == nil || v.Type != cosem.TypeLong {
		return 0, false, err
	}
	return v.Value.(int16), true, nil
}

// SetTimeZone writes the deviation of local time from UTC in minutes.
func (c *Clock) SetTimeZone(ctx context.Context, minutes int16) error {
	return c.SetAttribute(ctx, ClockAttrTimeZone, cosem.NewLong(minutes))
}

// Status reads the clock status bits.
func (c *Clock) Status(ctx context.Context) (uint8, bool, error) {
	v, err := c.Attribute(ctx, ClockAttrStatus)
	if err != nil || v == nil || v.Type != cosem.TypeUnsigned {
		return 0, false, err
	}
	return v.Value.(uint8), true, nil
}

// AdjustToQuarter rounds the meter time to the nearest quarter hour.
func (c *Clock) AdjustToQuarter(ctx context.Context) error {
	param := cosem.NewInteger(0)
	_, err := c.Invoke(ctx, ClockMethodAdjustToQuarter, &param)
	return err
}

// Definition reads the time as a display tree.
func (c *Clock) Definition(ctx context.Context) (definition.Definition, error) {
	dt, err := c.Time(ctx)
	if err != nil {
		return nil, err
	}
	if dt == nil {
		return definition.NewScalar("Time", cosem.TypeDateTime, cosem.AnyDateTime)
	}
	return definition.NewScalar("Time", cosem.TypeDateTime, *dt)
}
