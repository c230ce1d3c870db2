package protocol

import (
	"encoding/json"
	"fmt"
	"io"
)

// queryPrefixSize is the big-endian length prefix on every query body.
const queryPrefixSize = 4

// Request is one query to the renderer, exchanged out-of-band from the
// frame stream. ID is nil for global actions like "sleep".
//
// Wire shape: {"id": <surface-id-or-null>, "action": <name>, "args": [..]},
// args omitted when empty, framed by a 4-byte big-endian length over the
// UTF-8 JSON bytes.
type Request struct {
	ID     *SurfaceID `json:"id"`
	Action string     `json:"action"`
	Args   []any      `json:"args,omitempty"`
}

// NewRequest creates a query addressed to one surface.
func NewRequest(id SurfaceID, action string, args ...any) *Request {
	return &Request{ID: &id, Action: action, Args: args}
}

// NewGlobalRequest creates a query with a null surface id.
func NewGlobalRequest(action string, args ...any) *Request {
	return &Request{Action: action, Args: args}
}

// Encode encodes the request to its framed wire form.
func (r *Request) Encode() ([]byte, error) {
	body, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("protocol: encoding query %q: %w", r.Action, err)
	}
	if len(body) > MaxQueryBody {
		return nil, ErrFrameTooLarge
	}
	framed := make([]byte, queryPrefixSize+len(body))
	framed[0] = byte(len(body) >> 24)
	framed[1] = byte(len(body) >> 16)
	framed[2] = byte(len(body) >> 8)
	framed[3] = byte(len(body))
	copy(framed[queryPrefixSize:], body)
	return framed, nil
}

// DecodeRequest decodes a framed request, for the bridge and tests.
func DecodeRequest(data []byte) (*Request, error) {
	body, err := unframe(data)
	if err != nil {
		return nil, err
	}
	var r Request
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("protocol: decoding query: %w", err)
	}
	return &r, nil
}

// EncodeResponse encodes a JSON response value to its framed wire form.
// nil encodes as JSON null (explicit "no result").
func EncodeResponse(v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("protocol: encoding response: %w", err)
	}
	if len(body) > MaxQueryBody {
		return nil, ErrFrameTooLarge
	}
	framed := make([]byte, queryPrefixSize+len(body))
	framed[0] = byte(len(body) >> 24)
	framed[1] = byte(len(body) >> 16)
	framed[2] = byte(len(body) >> 8)
	framed[3] = byte(len(body))
	copy(framed[queryPrefixSize:], body)
	return framed, nil
}

// ReadResponse reads one framed response: a 4-byte big-endian length prefix
// followed by that many bytes of UTF-8 JSON. It blocks until the full body
// is available; a short read is a fatal ErrTruncatedMessage.
func ReadResponse(rd io.Reader) (any, error) {
	prefix := make([]byte, queryPrefixSize)
	if _, err := io.ReadFull(rd, prefix); err != nil {
		return nil, fmt.Errorf("%w: reading response length prefix: %v", ErrTruncatedMessage, err)
	}
	length := uint32(prefix[0])<<24 | uint32(prefix[1])<<16 |
		uint32(prefix[2])<<8 | uint32(prefix[3])
	if length > MaxQueryBody {
		return nil, ErrFrameTooLarge
	}
	if length == 0 {
		return nil, nil
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(rd, body); err != nil {
		return nil, fmt.Errorf("%w: expected response body of %d bytes: %v", ErrTruncatedMessage, length, err)
	}

	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, fmt.Errorf("protocol: decoding response: %w", err)
	}
	return v, nil
}

func unframe(data []byte) ([]byte, error) {
	if len(data) < queryPrefixSize {
		return nil, fmt.Errorf("%w: missing length prefix", ErrTruncatedMessage)
	}
	length := uint32(data[0])<<24 | uint32(data[1])<<16 |
		uint32(data[2])<<8 | uint32(data[3])
	if length > MaxQueryBody {
		return nil, ErrFrameTooLarge
	}
	if uint32(len(data)-queryPrefixSize) < length {
		return nil, fmt.Errorf("%w: declared %d bytes, have %d", ErrTruncatedMessage, length, len(data)-queryPrefixSize)
	}
	return data[queryPrefixSize : queryPrefixSize+length], nil
}
