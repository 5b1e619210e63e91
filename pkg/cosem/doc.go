// Package cosem implements the self-describing COSEM value model.
//
// A Data value pairs a DLMS type tag with a Go value whose shape is fixed
// by the tag. It is the unit exchanged with a meter: every attribute read
// returns one, every attribute write sends one.
//
// # Value Shapes
//
//	null-data             nil
//	boolean               bool
//	integer / long / ...  int8 / int16 / int32 / int64
//	unsigned / ...        uint8 / uint16 / uint32 / uint64
//	float32 / float64     float32 / float64
//	visible/utf8-string   string
//	octet-string          []byte
//	bit-string            []bool
//	enum                  uint8
//	date / time / date-time   Date / Time / DateTime
//	array / structure     []Data
//
// Arrays and structures share a container shape but differ in meaning: an
// array repeats one element schema, a structure holds fixed, ordered,
// heterogeneous fields.
//
// # Date and Time
//
// Date, Time and DateTime carry the DLMS wildcard conventions (not
// specified, last day of month, ...). On the wire they usually travel as
// octet strings of 5, 4 and 12 bytes; the FromBytes constructors decode
// those payloads.
//
// # Encoding
//
// Encode and Decode implement the A-XDR encoding used by DLMS application
// PDUs for the data CHOICE.
package cosem
