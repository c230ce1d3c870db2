package protocol

import (
	"errors"
	"fmt"
	"strings"
)

// Session-fatal transport errors. There is no partial-message recovery: once
// one of these is returned the channel must be treated as desynchronized and
// the whole session abandoned.
var (
	// ErrTruncatedMessage is returned when fewer bytes are available than a
	// length prefix declared.
	ErrTruncatedMessage = errors.New("protocol: truncated message")

	// ErrNoResponse is returned when a query expecting a reply got none,
	// either because nothing is reading the channel or a deadline expired.
	ErrNoResponse = errors.New("protocol: no response from renderer")

	// ErrFrameTooLarge is returned when a frame payload exceeds MaxFramePayload.
	ErrFrameTooLarge = errors.New("protocol: frame payload too large")
)

// Caller errors, raised synchronously before anything is written.
var (
	// ErrTooManySurfaces is returned when allocating a surface id would
	// exceed MaxSurfaces concurrently live surfaces.
	ErrTooManySurfaces = errors.New("protocol: too many surfaces (max 256 live at once)")

	// ErrEnvironmentUnsupported is returned when the creation handshake did
	// not confirm a live renderer.
	ErrEnvironmentUnsupported = errors.New("protocol: environment does not support canvases")
)

// InvalidEnumValueError reports a string that is not a key of its enum
// domain's table.
type InvalidEnumValueError struct {
	Domain string   // enum domain name, e.g. "lineCap"
	Value  string   // the offending input
	Valid  []string // every accepted value, in wire order
}

func (e *InvalidEnumValueError) Error() string {
	return fmt.Sprintf("protocol: invalid %s value %q (valid: %s)",
		e.Domain, e.Value, strings.Join(e.Valid, ", "))
}

// ValueOutOfRangeError reports a numeric value that cannot be represented in
// its fixed-width wire field or violates a documented bound.
type ValueOutOfRangeError struct {
	What     string // what was being encoded, e.g. "coordinate"
	Value    float64
	Min, Max float64
}

func (e *ValueOutOfRangeError) Error() string {
	return fmt.Sprintf("protocol: %s %v out of range [%v, %v]",
		e.What, e.Value, e.Min, e.Max)
}
