package protocol

import "math"

// RoundCoord rounds a coordinate to the nearest integer, half away from
// zero, and validates it against the int16 wire field. This is the one
// rounding rule of the protocol; it is applied before encoding and before
// any change comparison.
func RoundCoord(v float64) (int16, error) {
	r := math.Round(v)
	if r < MinCoord || r > MaxCoord {
		return 0, &ValueOutOfRangeError{What: "coordinate", Value: v, Min: MinCoord, Max: MaxCoord}
	}
	return int16(r), nil
}

// Encoder is a binary encoder that appends data to an internal buffer.
// It is designed for payload building without allocations in the hot path.
//
// Range validation failures (WriteCoord on an unrepresentable value) are
// sticky: the first error is recorded and Err returns it. Callers build a
// payload with unchecked writes and check Err once before framing.
type Encoder struct {
	buf []byte
	err error
}

// NewEncoder creates a new encoder with a default initial capacity.
func NewEncoder() *Encoder {
	return &Encoder{buf: make([]byte, 0, 64)}
}

// Reset resets the encoder to empty state, reusing the underlying buffer
// and clearing any sticky error.
func (e *Encoder) Reset() {
	e.buf = e.buf[:0]
	e.err = nil
}

// Bytes returns the encoded bytes. The returned slice is valid until the
// next call to Reset or any Write method.
func (e *Encoder) Bytes() []byte { return e.buf }

// Len returns the number of bytes currently encoded.
func (e *Encoder) Len() int { return len(e.buf) }

// Err returns the first validation error recorded by a Write method, or nil.
func (e *Encoder) Err() error { return e.err }

// WriteByte appends a single byte.
// Note: This intentionally doesn't return error (unlike io.ByteWriter)
// because the buffer is unbounded and can always append.
func (e *Encoder) WriteByte(b byte) {
	e.buf = append(e.buf, b)
}

// WriteBytes appends raw bytes.
func (e *Encoder) WriteBytes(b []byte) {
	e.buf = append(e.buf, b...)
}

// WriteBool appends a boolean as a single byte (0x00 or 0x01).
func (e *Encoder) WriteBool(b bool) {
	if b {
		e.buf = append(e.buf, 0x01)
	} else {
		e.buf = append(e.buf, 0x00)
	}
}

// WriteUint16 appends a uint16 in big-endian byte order.
func (e *Encoder) WriteUint16(v uint16) {
	e.buf = append(e.buf, byte(v>>8), byte(v))
}

// WriteUint32 appends a uint32 in big-endian byte order.
func (e *Encoder) WriteUint32(v uint32) {
	e.buf = append(e.buf, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

// WriteInt16 appends an int16 in big-endian byte order.
func (e *Encoder) WriteInt16(v int16) {
	e.WriteUint16(uint16(v))
}

// WriteFloat32 appends a float32 in IEEE 754 format (big-endian).
func (e *Encoder) WriteFloat32(v float32) {
	e.WriteUint32(math.Float32bits(v))
}

// WriteString appends a length-prefixed UTF-8 string.
// Format: 4-byte big-endian byte count + string bytes. The empty string is
// valid and encodes as a zero count.
func (e *Encoder) WriteString(s string) {
	e.WriteUint32(uint32(len(s)))
	e.buf = append(e.buf, s...)
}

// WriteCoord rounds v half away from zero and appends it as an int16 in
// big-endian byte order. An unrepresentable value records a sticky
// *ValueOutOfRangeError and appends nothing.
func (e *Encoder) WriteCoord(v float64) {
	c, err := RoundCoord(v)
	if err != nil {
		if e.err == nil {
			e.err = err
		}
		return
	}
	e.WriteInt16(c)
}
