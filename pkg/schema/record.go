package schema

import "github.com/ngc-ami/cosem-go/pkg/cosem"

// Record holds the unpacked fields of a structure in schema order.
// Accessors return the zero value when the field is null.
type Record struct {
	schema *Structure
	values []cosem.Data
}

// Len returns the number of fields.
func (r Record) Len() int { return len(r.values) }

// Data returns field i.
func (r Record) Data(i int) cosem.Data { return r.values[i] }

// Item returns a pointer to a copy of field i, for nested parsing.
func (r Record) Item(i int) *cosem.Data {
	d := r.values[i]
	return &d
}

// IsNull reports whether field i is null-data.
func (r Record) IsNull(i int) bool { return r.values[i].IsNull() }

// Bool returns a boolean field.
func (r Record) Bool(i int) bool { return field[bool](r, i) }

// Int8 returns an integer field.
func (r Record) Int8(i int) int8 { return field[int8](r, i) }

// Int16 returns a long field.
func (r Record) Int16(i int) int16 { return field[int16](r, i) }

// Int32 returns a double-long field.
func (r Record) Int32(i int) int32 { return field[int32](r, i) }

// Int64 returns a long64 field.
func (r Record) Int64(i int) int64 { return field[int64](r, i) }

// Uint8 returns an unsigned or enum field.
func (r Record) Uint8(i int) uint8 { return field[uint8](r, i) }

// Uint16 returns a long-unsigned field.
func (r Record) Uint16(i int) uint16 { return field[uint16](r, i) }

// Uint32 returns a double-long-unsigned field.
func (r Record) Uint32(i int) uint32 { return field[uint32](r, i) }

// Uint64 returns a long64-unsigned field.
func (r Record) Uint64(i int) uint64 { return field[uint64](r, i) }

// Text returns a visible-string or utf8-string field.
func (r Record) Text(i int) string { return field[string](r, i) }

// Bytes returns an octet-string field.
func (r Record) Bytes(i int) []byte { return field[[]byte](r, i) }

// Date returns a date field.
func (r Record) Date(i int) cosem.Date { return field[cosem.Date](r, i) }

// Time returns a time field.
func (r Record) Time(i int) cosem.Time { return field[cosem.Time](r, i) }

// DateTime returns a date-time field.
func (r Record) DateTime(i int) cosem.DateTime { return field[cosem.DateTime](r, i) }

// Elements returns the entries of an array or structure field.
func (r Record) Elements(i int) []cosem.Data {
	elems, _ := r.values[i].Elements()
	return elems
}

// Values returns a copy of all fields.
func (r Record) Values() []cosem.Data {
	out := make([]cosem.Data, len(r.values))
	copy(out, r.values)
	return out
}

func field[T any](r Record, i int) T {
	v, _ := r.values[i].Value.(T)
	return v
}

// Schema returns the structure the record was unpacked with.
func (r Record) Schema() *Structure { return r.schema }
