package cosem

import (
	"errors"
	"fmt"
	"time"
)

// Encoded sizes of the calendar types.
const (
	DateLength     = 5
	TimeLength     = 4
	DateTimeLength = 12
)

// Wildcards and sentinels of the calendar fields.
const (
	YearNotSpecified uint16 = 0xFFFF

	MonthNotSpecified uint8 = 0xFF
	MonthDSTBegin     uint8 = 0xFE
	MonthDSTEnd       uint8 = 0xFD

	DayNotSpecified uint8 = 0xFF
	DayLast         uint8 = 0xFE
	DaySecondLast   uint8 = 0xFD

	DayOfWeekNotSpecified uint8 = 0xFF

	TimeNotSpecified uint8 = 0xFF

	DeviationNotSpecified int16 = -0x8000
)

// Clock status bits of a DateTime.
const (
	ClockStatusInvalid       uint8 = 0x01
	ClockStatusDoubtful      uint8 = 0x02
	ClockStatusDifferentBase uint8 = 0x04
	ClockStatusInvalidStatus uint8 = 0x08
	ClockStatusDaylightSave  uint8 = 0x80
	ClockStatusNotSpecified  uint8 = 0xFF
)

// Calendar errors.
var (
	ErrNilBytes      = errors.New("nil byte payload")
	ErrInvalidLength = errors.New("invalid encoded length")
)

// Date is a COSEM date. Each field may hold a wildcard.
// DayOfWeek runs from 1 (Monday) to 7 (Sunday).
type Date struct {
	Year       uint16
	Month      uint8
	DayOfMonth uint8
	DayOfWeek  uint8
}

// AnyDate matches every calendar day.
var AnyDate = Date{
	Year:       YearNotSpecified,
	Month:      MonthNotSpecified,
	DayOfMonth: DayNotSpecified,
	DayOfWeek:  DayOfWeekNotSpecified,
}

// NewDateFromTime returns the fully specified date of t.
func NewDateFromTime(t time.Time) Date {
	return Date{
		Year:       uint16(t.Year()),
		Month:      uint8(t.Month()),
		DayOfMonth: uint8(t.Day()),
		DayOfWeek:  dayOfWeek(t.Weekday()),
	}
}

// DateFromBytes decodes the 5-byte octet-string form of a date.
func DateFromBytes(b []byte) (Date, error) {
	if b == nil {
		return Date{}, ErrNilBytes
	}
	if len(b) != DateLength {
		return Date{}, fmt.Errorf("%w: date needs %d bytes, got %d", ErrInvalidLength, DateLength, len(b))
	}
	return Date{
		Year:       uint16(b[0])<<8 | uint16(b[1]),
		Month:      b[2],
		DayOfMonth: b[3],
		DayOfWeek:  b[4],
	}, nil
}

// Bytes returns the 5-byte octet-string form of the date.
func (d Date) Bytes() []byte {
	return []byte{byte(d.Year >> 8), byte(d.Year), d.Month, d.DayOfMonth, d.DayOfWeek}
}

// IsSpecified returns true if year, month and day of month are all concrete.
func (d Date) IsSpecified() bool {
	return d.Year != YearNotSpecified && d.Month >= 1 && d.Month <= 12 &&
		d.DayOfMonth >= 1 && d.DayOfMonth <= 31
}

// String renders the date as YYYY-MM-DD with * for wildcards.
func (d Date) String() string {
	year := "*"
	if d.Year != YearNotSpecified {
		year = fmt.Sprintf("%04d", d.Year)
	}

	var month string
	switch d.Month {
	case MonthNotSpecified:
		month = "*"
	case MonthDSTBegin:
		month = "dst-begin"
	case MonthDSTEnd:
		month = "dst-end"
	default:
		month = fmt.Sprintf("%02d", d.Month)
	}

	var day string
	switch d.DayOfMonth {
	case DayNotSpecified:
		day = "*"
	case DayLast:
		day = "last"
	case DaySecondLast:
		day = "second-last"
	default:
		day = fmt.Sprintf("%02d", d.DayOfMonth)
	}

	s := year + "-" + month + "-" + day
	if d.DayOfWeek != DayOfWeekNotSpecified && d.DayOfWeek >= 1 && d.DayOfWeek <= 7 {
		s += " " + goWeekday(d.DayOfWeek).String()[:3]
	}
	return s
}

// Time is a COSEM time of day. Each field may be TimeNotSpecified.
type Time struct {
	Hour       uint8
	Minute     uint8
	Second     uint8
	Hundredths uint8
}

// AnyTime matches every time of day.
var AnyTime = Time{
	Hour:       TimeNotSpecified,
	Minute:     TimeNotSpecified,
	Second:     TimeNotSpecified,
	Hundredths: TimeNotSpecified,
}

// NewTimeFromTime returns the time of day of t.
func NewTimeFromTime(t time.Time) Time {
	return Time{
		Hour:       uint8(t.Hour()),
		Minute:     uint8(t.Minute()),
		Second:     uint8(t.Second()),
		Hundredths: uint8(t.Nanosecond() / int(10*time.Millisecond)),
	}
}

// TimeFromBytes decodes the 4-byte octet-string form of a time.
func TimeFromBytes(b []byte) (Time, error) {
	if b == nil {
		return Time{}, ErrNilBytes
	}
	if len(b) != TimeLength {
		return Time{}, fmt.Errorf("%w: time needs %d bytes, got %d", ErrInvalidLength, TimeLength, len(b))
	}
	return Time{Hour: b[0], Minute: b[1], Second: b[2], Hundredths: b[3]}, nil
}

// Bytes returns the 4-byte octet-string form of the time.
func (t Time) Bytes() []byte {
	return []byte{t.Hour, t.Minute, t.Second, t.Hundredths}
}

// Duration returns the offset from midnight, treating wildcards as zero.
func (t Time) Duration() time.Duration {
	field := func(v uint8) time.Duration {
		if v == TimeNotSpecified {
			return 0
		}
		return time.Duration(v)
	}
	return field(t.Hour)*time.Hour + field(t.Minute)*time.Minute +
		field(t.Second)*time.Second + field(t.Hundredths)*10*time.Millisecond
}

// String renders the time as hh:mm:ss.hh with * for wildcards.
func (t Time) String() string {
	f := func(v uint8) string {
		if v == TimeNotSpecified {
			return "*"
		}
		return fmt.Sprintf("%02d", v)
	}
	return f(t.Hour) + ":" + f(t.Minute) + ":" + f(t.Second) + "." + f(t.Hundredths)
}

// DateTime is a COSEM date-time.
// Deviation is the offset of local time to UTC in minutes (UTC = local + Deviation).
type DateTime struct {
	Date        Date
	Time        Time
	Deviation   int16
	ClockStatus uint8
}

// AnyDateTime has every field unspecified.
var AnyDateTime = DateTime{
	Date:        AnyDate,
	Time:        AnyTime,
	Deviation:   DeviationNotSpecified,
	ClockStatus: ClockStatusNotSpecified,
}

// NewDateTimeFromTime returns the fully specified date-time of t, including
// its zone offset as deviation.
func NewDateTimeFromTime(t time.Time) DateTime {
	_, offset := t.Zone()
	return DateTime{
		Date:        NewDateFromTime(t),
		Time:        NewTimeFromTime(t),
		Deviation:   int16(-offset / 60),
		ClockStatus: 0,
	}
}

// DateTimeFromBytes decodes the 12-byte octet-string form of a date-time.
func DateTimeFromBytes(b []byte) (DateTime, error) {
	if b == nil {
		return DateTime{}, ErrNilBytes
	}
	if len(b) != DateTimeLength {
		return DateTime{}, fmt.Errorf("%w: date-time needs %d bytes, got %d", ErrInvalidLength, DateTimeLength, len(b))
	}
	date, _ := DateFromBytes(b[0:5])
	tod, _ := TimeFromBytes(b[5:9])
	return DateTime{
		Date:        date,
		Time:        tod,
		Deviation:   int16(uint16(b[9])<<8 | uint16(b[10])),
		ClockStatus: b[11],
	}, nil
}

// Bytes returns the 12-byte octet-string form of the date-time.
func (dt DateTime) Bytes() []byte {
	out := make([]byte, 0, DateTimeLength)
	out = append(out, dt.Date.Bytes()...)
	out = append(out, dt.Time.Bytes()...)
	dev := uint16(dt.Deviation)
	out = append(out, byte(dev>>8), byte(dev), dt.ClockStatus)
	return out
}

// ToTime converts a fully specified date-time to a time.Time.
// Without deviation the result is in loc.
func (dt DateTime) ToTime(loc *time.Location) (time.Time, bool) {
	if !dt.Date.IsSpecified() {
		return time.Time{}, false
	}
	if dt.Deviation != DeviationNotSpecified {
		loc = time.FixedZone("", -int(dt.Deviation)*60)
	}
	if loc == nil {
		loc = time.UTC
	}
	midnight := time.Date(int(dt.Date.Year), time.Month(dt.Date.Month), int(dt.Date.DayOfMonth), 0, 0, 0, 0, loc)
	return midnight.Add(dt.Time.Duration()), true
}

// String renders the date-time with its deviation when present.
func (dt DateTime) String() string {
	s := dt.Date.String() + " " + dt.Time.String()
	if dt.Deviation != DeviationNotSpecified {
		s += fmt.Sprintf(" dev=%d", dt.Deviation)
	}
	return s
}

func dayOfWeek(w time.Weekday) uint8 {
	if w == time.Sunday {
		return 7
	}
	return uint8(w)
}

func goWeekday(d uint8) time.Weekday {
	return time.Weekday(d % 7)
}
