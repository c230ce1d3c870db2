package protocol

import (
	"errors"
	"io"
	"math"
)

// DefaultMaxAllocation caps any single length-prefixed allocation while
// decoding. A corrupted or hostile length prefix fails fast instead of
// allocating gigabytes.
const DefaultMaxAllocation = 4 * 1024 * 1024

// ErrAllocationTooLarge is returned when a length prefix exceeds
// DefaultMaxAllocation.
var ErrAllocationTooLarge = errors.New("protocol: allocation size exceeds limit")

// Decoder is a binary decoder that reads from a byte buffer. It mirrors
// Encoder and is used by the test harness, the dump/replay tooling and the
// bridge; the client itself only encodes.
type Decoder struct {
	buf []byte
	pos int
}

// NewDecoder creates a new decoder from the given byte slice.
func NewDecoder(buf []byte) *Decoder {
	return &Decoder{buf: buf}
}

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int { return len(d.buf) - d.pos }

// EOF returns true if all bytes have been read.
func (d *Decoder) EOF() bool { return d.pos >= len(d.buf) }

// Position returns the current read position.
func (d *Decoder) Position() int { return d.pos }

// ReadByte reads a single byte.
func (d *Decoder) ReadByte() (byte, error) {
	if d.pos >= len(d.buf) {
		return 0, io.ErrUnexpectedEOF
	}
	b := d.buf[d.pos]
	d.pos++
	return b, nil
}

// ReadBytes reads exactly n bytes and returns them.
// The returned slice references the decoder's buffer; do not modify.
func (d *Decoder) ReadBytes(n int) ([]byte, error) {
	if d.pos+n > len(d.buf) {
		return nil, io.ErrUnexpectedEOF
	}
	b := d.buf[d.pos : d.pos+n]
	d.pos += n
	return b, nil
}

// ReadBool reads a boolean (single byte: 0x00=false, anything else=true).
func (d *Decoder) ReadBool() (bool, error) {
	b, err := d.ReadByte()
	if err != nil {
		return false, err
	}
	return b != 0x00, nil
}

// ReadUint16 reads a uint16 in big-endian byte order.
func (d *Decoder) ReadUint16() (uint16, error) {
	if d.pos+2 > len(d.buf) {
		return 0, io.ErrUnexpectedEOF
	}
	v := uint16(d.buf[d.pos])<<8 | uint16(d.buf[d.pos+1])
	d.pos += 2
	return v, nil
}

// ReadUint32 reads a uint32 in big-endian byte order.
func (d *Decoder) ReadUint32() (uint32, error) {
	if d.pos+4 > len(d.buf) {
		return 0, io.ErrUnexpectedEOF
	}
	v := uint32(d.buf[d.pos])<<24 | uint32(d.buf[d.pos+1])<<16 |
		uint32(d.buf[d.pos+2])<<8 | uint32(d.buf[d.pos+3])
	d.pos += 4
	return v, nil
}

// ReadInt16 reads an int16 in big-endian byte order.
func (d *Decoder) ReadInt16() (int16, error) {
	v, err := d.ReadUint16()
	return int16(v), err
}

// ReadCoord reads a coordinate (int16 big-endian) as a float64.
func (d *Decoder) ReadCoord() (float64, error) {
	v, err := d.ReadInt16()
	return float64(v), err
}

// ReadFloat32 reads a float32 in IEEE 754 format (big-endian).
func (d *Decoder) ReadFloat32() (float32, error) {
	v, err := d.ReadUint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadString reads a length-prefixed UTF-8 string (4-byte big-endian count).
// Returns ErrAllocationTooLarge if the count exceeds DefaultMaxAllocation.
func (d *Decoder) ReadString() (string, error) {
	length, err := d.ReadUint32()
	if err != nil {
		return "", err
	}
	if uint64(length) > uint64(d.Remaining()) {
		return "", io.ErrUnexpectedEOF
	}
	if length > DefaultMaxAllocation {
		return "", ErrAllocationTooLarge
	}
	n := int(length)
	s := string(d.buf[d.pos : d.pos+n])
	d.pos += n
	return s, nil
}

// ReadEnum reads one byte and maps it through the given enum table.
func (d *Decoder) ReadEnum(en *Enum) (string, error) {
	b, err := d.ReadByte()
	if err != nil {
		return "", err
	}
	return en.Decode(b)
}
