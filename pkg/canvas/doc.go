// Package canvas is the public drawing API: surfaces, their stateful
// properties, and the dispatcher that turns each call into exactly one
// protocol frame.
//
// # Shadow State
//
// Every surface mirrors the last value dispatched for each stateful
// property. Setting a property to a value whose encoding is byte-identical
// to the mirror is a no-op: no frame is written. Equality is therefore
// structural — two independently built, value-equal gradients suppress each
// other — and width/height rounding happens before the comparison because
// the comparison is on encoded bytes.
//
// # Ordering and Concurrency
//
// Execution is single-threaded and synchronous: every operation is a direct
// blocking write, and the renderer observes frames in exactly call order.
// The package provides no internal locking of dispatch order; a program
// sharing one Client across goroutines must serialize its calls.
//
// # Degraded Mode
//
// When the creation handshake cannot confirm a live renderer, the surface
// runs disabled: a single warning is logged and every subsequent operation
// is a silent no-op. This keeps programs alive in non-graphical
// environments.
package canvas
