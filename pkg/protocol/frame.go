package protocol

import (
	"fmt"
	"io"
)

// Frame header constants.
const (
	// FrameHeaderSize is the size of the frame header in bytes:
	// 4-byte length field + opcode byte + surface id byte.
	FrameHeaderSize = 6

	// frameLengthOverhead is what the length field counts beyond the
	// payload: the opcode and surface id bytes.
	frameLengthOverhead = 2
)

// Frame is the unit of wire transmission: one drawing or state operation
// addressed to one surface.
//
// The length field is always len(Payload)+2 and is computed at encode time,
// never stored, so it cannot disagree with the bytes actually written.
type Frame struct {
	Op      Opcode
	Surface SurfaceID
	Payload []byte
}

// NewFrame creates a new frame with the given opcode, surface and payload.
func NewFrame(op Opcode, id SurfaceID, payload []byte) *Frame {
	return &Frame{Op: op, Surface: id, Payload: payload}
}

// Encode encodes the frame to bytes including the header.
func (f *Frame) Encode() []byte {
	n := len(f.Payload)
	buf := make([]byte, FrameHeaderSize+n)
	length := uint32(n + frameLengthOverhead)
	buf[0] = byte(length >> 24)
	buf[1] = byte(length >> 16)
	buf[2] = byte(length >> 8)
	buf[3] = byte(length)
	buf[4] = byte(f.Op)
	buf[5] = byte(f.Surface)
	copy(buf[FrameHeaderSize:], f.Payload)
	return buf
}

// EncodedLen returns the total number of bytes Encode produces.
func (f *Frame) EncodedLen() int {
	return FrameHeaderSize + len(f.Payload)
}

// String renders the frame for logs and the dump tool.
func (f *Frame) String() string {
	return fmt.Sprintf("%s surface=%d payload=%d bytes", f.Op, f.Surface, len(f.Payload))
}

// WriteFrame writes a complete frame to an io.Writer.
func WriteFrame(w io.Writer, f *Frame) error {
	if len(f.Payload) > MaxFramePayload {
		return ErrFrameTooLarge
	}
	_, err := w.Write(f.Encode())
	return err
}

// ReadFrame reads a complete frame from an io.Reader.
//
// A clean EOF before the first header byte is io.EOF (end of stream). Any
// other short read means the stream desynced and is reported as
// ErrTruncatedMessage; there is no resynchronization.
func ReadFrame(r io.Reader) (*Frame, error) {
	header := make([]byte, FrameHeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("%w: reading frame header: %v", ErrTruncatedMessage, err)
	}

	length := uint32(header[0])<<24 | uint32(header[1])<<16 |
		uint32(header[2])<<8 | uint32(header[3])
	if length < frameLengthOverhead {
		return nil, fmt.Errorf("%w: declared length %d below header overhead", ErrTruncatedMessage, length)
	}
	payloadLen := int(length) - frameLengthOverhead
	if payloadLen > MaxFramePayload {
		return nil, ErrFrameTooLarge
	}

	payload := make([]byte, payloadLen)
	if payloadLen > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, fmt.Errorf("%w: expected %d payload bytes: %v", ErrTruncatedMessage, payloadLen, err)
		}
	}

	return &Frame{
		Op:      Opcode(header[4]),
		Surface: SurfaceID(header[5]),
		Payload: payload,
	}, nil
}
