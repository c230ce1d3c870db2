package canvas

import (
	"bytes"

	"github.com/canvaswire/canvaswire/pkg/protocol"
)

// stateKey addresses one stateful property of one surface.
type stateKey struct {
	surface  protocol.SurfaceID
	property protocol.Opcode
}

// ShadowState is the client-local mirror of every surface's last-dispatched
// property values, keyed by (surface id, property opcode) and stored in
// encoded form. Comparing encodings gives structural equality for free:
// the same bytes would hit the wire, so the write is redundant.
//
// The mirror is only committed after a successful write, preserving the
// invariant that it always equals what the renderer last received.
type ShadowState struct {
	last map[stateKey][]byte
}

// NewShadowState creates an empty mirror.
func NewShadowState() *ShadowState {
	return &ShadowState{last: make(map[stateKey][]byte)}
}

// Lookup returns the last-dispatched encoding for a property, or false if
// the property was never dispatched (unset).
func (s *ShadowState) Lookup(id protocol.SurfaceID, prop protocol.Opcode) ([]byte, bool) {
	v, ok := s.last[stateKey{id, prop}]
	return v, ok
}

// Changed reports whether dispatching payload would change the renderer's
// state: true if the property is unset or its mirror differs from payload.
func (s *ShadowState) Changed(id protocol.SurfaceID, prop protocol.Opcode, payload []byte) bool {
	v, ok := s.last[stateKey{id, prop}]
	return !ok || !bytes.Equal(v, payload)
}

// Commit records payload as the last-dispatched value. Call only after the
// frame was successfully written.
func (s *ShadowState) Commit(id protocol.SurfaceID, prop protocol.Opcode, payload []byte) {
	cp := make([]byte, len(payload))
	copy(cp, payload)
	s.last[stateKey{id, prop}] = cp
}

// Forget drops every mirrored property of a removed surface, so a surface
// later created under a recycled id starts unset.
func (s *ShadowState) Forget(id protocol.SurfaceID) {
	for k := range s.last {
		if k.surface == id {
			delete(s.last, k)
		}
	}
}
