package cosem

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"unicode/utf8"
)

// Codec errors.
var (
	ErrTruncated     = errors.New("truncated data")
	ErrTrailingBytes = errors.New("trailing bytes after value")
	ErrLengthTooBig  = errors.New("length field too large")
	ErrInvalidUTF8   = errors.New("invalid utf-8 string")
)

// maxLengthBytes limits the long form of the BER length to 32 bits.
const maxLengthBytes = 4

// smallPayload is the largest payload read into a preallocated buffer.
const smallPayload = 64

// Encode returns the A-XDR encoding of d: one tag byte followed by the
// tag-specific payload.
func Encode(d Data) ([]byte, error) {
	var out bytes.Buffer
	if err := encode(&out, d); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// Decode decodes exactly one A-XDR value from b.
func Decode(b []byte) (Data, error) {
	r := bytes.NewReader(b)
	d, err := decode(r)
	if err != nil {
		return Data{}, err
	}
	if r.Len() != 0 {
		return Data{}, fmt.Errorf("%w: %d", ErrTrailingBytes, r.Len())
	}
	return d, nil
}

// DecodeFrom decodes one A-XDR value from r.
func DecodeFrom(r io.ByteReader) (Data, error) {
	return decode(byteReader{r})
}

type reader interface {
	io.Reader
	io.ByteReader
}

type byteReader struct{ io.ByteReader }

func (b byteReader) Read(p []byte) (int, error) {
	for i := range p {
		c, err := b.ReadByte()
		if err != nil {
			return i, err
		}
		p[i] = c
	}
	return len(p), nil
}

func encode(out *bytes.Buffer, d Data) error {
	if err := d.Validate(); err != nil {
		return err
	}
	out.WriteByte(byte(d.Type))
	return encodePayload(out, d)
}

func encodePayload(out *bytes.Buffer, d Data) error {
	switch v := d.Value.(type) {
	case nil:
	case bool:
		if v {
			out.WriteByte(1)
		} else {
			out.WriteByte(0)
		}
	case int8:
		if d.Type == TypeBCD {
			out.WriteByte(encodeBCD(v))
		} else {
			out.WriteByte(byte(v))
		}
	case int16:
		out.Write(binary.BigEndian.AppendUint16(nil, uint16(v)))
	case int32:
		out.Write(binary.BigEndian.AppendUint32(nil, uint32(v)))
	case int64:
		out.Write(binary.BigEndian.AppendUint64(nil, uint64(v)))
	case uint8:
		out.WriteByte(v)
	case uint16:
		out.Write(binary.BigEndian.AppendUint16(nil, v))
	case uint32:
		out.Write(binary.BigEndian.AppendUint32(nil, v))
	case uint64:
		out.Write(binary.BigEndian.AppendUint64(nil, v))
	case float32:
		out.Write(binary.BigEndian.AppendUint32(nil, math.Float32bits(v)))
	case float64:
		out.Write(binary.BigEndian.AppendUint64(nil, math.Float64bits(v)))
	case string:
		encodeLength(out, len(v))
		out.WriteString(v)
	case []byte:
		encodeLength(out, len(v))
		out.Write(v)
	case []bool:
		encodeLength(out, len(v))
		packed := make([]byte, (len(v)+7)/8)
		for i, bit := range v {
			if bit {
				packed[i/8] |= 0x80 >> (i % 8)
			}
		}
		out.Write(packed)
	case Date:
		out.Write(v.Bytes())
	case Time:
		out.Write(v.Bytes())
	case DateTime:
		out.Write(v.Bytes())
	case []Data:
		encodeLength(out, len(v))
		for i, e := range v {
			if err := encode(out, e); err != nil {
				return fmt.Errorf("%s element %d: %w", d.Type, i, err)
			}
		}
	default:
		return fmt.Errorf("%w: %s holds %T", ErrShapeMismatch, d.Type, d.Value)
	}
	return nil
}

func decode(r reader) (Data, error) {
	tag, err := r.ReadByte()
	if err != nil {
		return Data{}, fmt.Errorf("%w: missing tag", ErrTruncated)
	}
	return decodePayload(r, DataType(tag))
}

func decodePayload(r reader, t DataType) (Data, error) {
	switch t {
	case TypeNull, TypeDontCare:
		return Data{Type: t}, nil
	case TypeArray, TypeStructure:
		n, err := decodeLength(r)
		if err != nil {
			return Data{}, err
		}
		elems := make([]Data, 0, min(n, 64))
		for i := 0; i < n; i++ {
			e, err := decode(r)
			if err != nil {
				return Data{}, fmt.Errorf("%s element %d: %w", t, i, err)
			}
			elems = append(elems, e)
		}
		return Data{Type: t, Value: elems}, nil
	case TypeBoolean:
		b, err := readN(r, t, 1)
		if err != nil {
			return Data{}, err
		}
		return NewBoolean(b[0] != 0), nil
	case TypeBitString:
		n, err := decodeLength(r)
		if err != nil {
			return Data{}, err
		}
		packed, err := readN(r, t, (n+7)/8)
		if err != nil {
			return Data{}, err
		}
		bits := make([]bool, n)
		for i := range bits {
			bits[i] = packed[i/8]&(0x80>>(i%8)) != 0
		}
		return NewBitString(bits), nil
	case TypeDoubleLong:
		b, err := readN(r, t, 4)
		if err != nil {
			return Data{}, err
		}
		return NewDoubleLong(int32(binary.BigEndian.Uint32(b))), nil
	case TypeDoubleLongUnsigned:
		b, err := readN(r, t, 4)
		if err != nil {
			return Data{}, err
		}
		return NewDoubleLongUnsigned(binary.BigEndian.Uint32(b)), nil
	case TypeOctetString:
		n, err := decodeLength(r)
		if err != nil {
			return Data{}, err
		}
		b, err := readN(r, t, n)
		if err != nil {
			return Data{}, err
		}
		return NewOctetString(b), nil
	case TypeVisibleString, TypeUTF8String:
		n, err := decodeLength(r)
		if err != nil {
			return Data{}, err
		}
		b, err := readN(r, t, n)
		if err != nil {
			return Data{}, err
		}
		if t == TypeUTF8String && !utf8.Valid(b) {
			return Data{}, ErrInvalidUTF8
		}
		return Data{Type: t, Value: string(b)}, nil
	case TypeBCD:
		b, err := readN(r, t, 1)
		if err != nil {
			return Data{}, err
		}
		return Data{Type: TypeBCD, Value: decodeBCD(b[0])}, nil
	case TypeInteger:
		b, err := readN(r, t, 1)
		if err != nil {
			return Data{}, err
		}
		return NewInteger(int8(b[0])), nil
	case TypeLong:
		b, err := readN(r, t, 2)
		if err != nil {
			return Data{}, err
		}
		return NewLong(int16(binary.BigEndian.Uint16(b))), nil
	case TypeUnsigned, TypeEnum:
		b, err := readN(r, t, 1)
		if err != nil {
			return Data{}, err
		}
		return Data{Type: t, Value: b[0]}, nil
	case TypeLongUnsigned:
		b, err := readN(r, t, 2)
		if err != nil {
			return Data{}, err
		}
		return NewLongUnsigned(binary.BigEndian.Uint16(b)), nil
	case TypeLong64:
		b, err := readN(r, t, 8)
		if err != nil {
			return Data{}, err
		}
		return NewLong64(int64(binary.BigEndian.Uint64(b))), nil
	case TypeLong64Unsigned:
		b, err := readN(r, t, 8)
		if err != nil {
			return Data{}, err
		}
		return NewLong64Unsigned(binary.BigEndian.Uint64(b)), nil
	case TypeFloat32:
		b, err := readN(r, t, 4)
		if err != nil {
			return Data{}, err
		}
		return NewFloat32(math.Float32frombits(binary.BigEndian.Uint32(b))), nil
	case TypeFloat64:
		b, err := readN(r, t, 8)
		if err != nil {
			return Data{}, err
		}
		return NewFloat64(math.Float64frombits(binary.BigEndian.Uint64(b))), nil
	case TypeDateTime:
		b, err := readN(r, t, DateTimeLength)
		if err != nil {
			return Data{}, err
		}
		dt, err := DateTimeFromBytes(b)
		return NewDateTime(dt), err
	case TypeDate:
		b, err := readN(r, t, DateLength)
		if err != nil {
			return Data{}, err
		}
		date, err := DateFromBytes(b)
		return NewDate(date), err
	case TypeTime:
		b, err := readN(r, t, TimeLength)
		if err != nil {
			return Data{}, err
		}
		tod, err := TimeFromBytes(b)
		return NewTime(tod), err
	default:
		return Data{}, fmt.Errorf("%w: tag %d", ErrUnknownType, uint8(t))
	}
}

// readN reads an n-byte payload. A declared length is not trusted: buffered
// input is checked up front and streamed input is copied as it arrives, so
// memory only grows with bytes actually received.
func readN(r reader, t DataType, n int) ([]byte, error) {
	if l, ok := r.(interface{ Len() int }); ok && n > l.Len() {
		return nil, fmt.Errorf("%w: %s needs %d bytes, %d left", ErrTruncated, t, n, l.Len())
	}
	if n <= smallPayload {
		b := make([]byte, n)
		if _, err := io.ReadFull(r, b); err != nil {
			return nil, fmt.Errorf("%w: %s needs %d bytes", ErrTruncated, t, n)
		}
		return b, nil
	}

	var buf bytes.Buffer
	if _, err := io.CopyN(&buf, r, int64(n)); err != nil {
		return nil, fmt.Errorf("%w: %s needs %d bytes", ErrTruncated, t, n)
	}
	return buf.Bytes(), nil
}

// encodeLength writes a BER length: short form below 128, long form above.
func encodeLength(out *bytes.Buffer, n int) {
	if n < 0x80 {
		out.WriteByte(byte(n))
		return
	}
	var tmp [8]byte
	i := len(tmp)
	for v := uint64(n); v > 0; v >>= 8 {
		i--
		tmp[i] = byte(v)
	}
	out.WriteByte(0x80 | byte(len(tmp)-i))
	out.Write(tmp[i:])
}

func decodeLength(r reader) (int, error) {
	first, err := r.ReadByte()
	if err != nil {
		return 0, fmt.Errorf("%w: missing length", ErrTruncated)
	}
	if first&0x80 == 0 {
		return int(first), nil
	}
	count := int(first & 0x7F)
	if count == 0 || count > maxLengthBytes {
		return 0, fmt.Errorf("%w: %d length bytes", ErrLengthTooBig, count)
	}
	var n uint64
	for i := 0; i < count; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, fmt.Errorf("%w: length", ErrTruncated)
		}
		n = n<<8 | uint64(b)
	}
	if n > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %d", ErrLengthTooBig, n)
	}
	return int(n), nil
}

func encodeBCD(v int8) byte {
	n := int(v)
	neg := n < 0
	if neg {
		n = -n
	}
	b := byte((n/10)%10)<<4 | byte(n%10)
	if neg {
		b |= 0x80
	}
	return b
}

func decodeBCD(b byte) int8 {
	v := int8(b&0x0F) + 10*int8((b>>4)&0x07)
	if b&0x80 != 0 {
		v = -v
	}
	return v
}
