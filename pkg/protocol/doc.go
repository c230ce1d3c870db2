// Package protocol implements the binary wire protocol for the canvaswire
// drawing surface proxy.
//
// The protocol translates imperative drawing calls into a compact byte
// stream that a remote renderer replays deterministically. Each operation
// becomes exactly one frame; the renderer processes frames strictly in
// arrival order (painter's algorithm), so the codec never reorders or
// coalesces.
//
// # Frame Format
//
// All frames carry a 6-byte header followed by an operation-specific
// payload, integers big-endian:
//
//	┌──────────────────────┬───────────┬─────────────┬──────────────┐
//	│ Length               │ Opcode    │ Surface ID  │ Payload      │
//	│ (4 bytes, payload+2) │ (1 byte)  │ (1 byte)    │ (variable)   │
//	└──────────────────────┴───────────┴─────────────┴──────────────┘
//
// The length field counts the opcode and surface id bytes plus the payload.
// A length field that does not match the bytes actually written desyncs the
// stream irrecoverably; WriteFrame computes it from the payload so the
// invariant holds by construction.
//
// # Encoding
//
//   - Coordinates: rounded half away from zero, encoded as int16 big-endian.
//     Values outside [-32768, 32767] are rejected, never truncated.
//   - Floats: IEEE 754 float32, big-endian.
//   - Strings: 4-byte big-endian byte count + UTF-8 bytes.
//   - Enums: one byte from a fixed per-domain table (see enums.go).
//   - Booleans: 0x00 or 0x01.
//
// The opcode table is append-only. Opcodes are never reused or renumbered
// within a protocol generation, so persisted streams stay replayable.
//
// # Query Sub-protocol
//
// Operations that need a reply from the renderer (surface creation, sleep)
// use a JSON request/response exchange instead of the frame stream:
//
//	[4 bytes big-endian: body length][body: UTF-8 JSON]
//
// in both directions. See query.go and package transport for the exchange
// discipline.
package protocol
