// Package transport owns the channel handles the protocol writes to.
//
// Two transport shapes exist:
//
//   - Stream: a single long-lived duplex byte stream (file, pipe, socket,
//     WebSocket). Frames are written back-to-back with no acknowledgement.
//   - Mailbox: each query action maps to its own addressable resource; a
//     write followed by a read-back from the same address retrieves the
//     reply. Used by the query sub-protocol exclusively.
//
// Failure semantics are deliberately blunt: a short read is a fatal
// protocol.ErrTruncatedMessage and the session must be abandoned. There is
// no partial-message recovery or resynchronization.
package transport
