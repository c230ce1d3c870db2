package recording

import (
	"bytes"
	"io"

	"github.com/canvaswire/canvaswire/pkg/protocol"
)

// Recorder is a frame transport that spools frames into memory instead of a
// live channel. Point a client at it to capture a drawing session, then save
// the bytes to a Store or replay them.
type Recorder struct {
	buf    bytes.Buffer
	frames int
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// WriteFrame appends one frame to the capture.
func (r *Recorder) WriteFrame(f *protocol.Frame) error {
	if err := protocol.WriteFrame(&r.buf, f); err != nil {
		return err
	}
	r.frames++
	return nil
}

// Flush is a no-op; the capture lives in memory.
func (r *Recorder) Flush() error { return nil }

// Close is a no-op. The capture stays readable after Close so a client
// shutdown does not discard the session.
func (r *Recorder) Close() error { return nil }

// Bytes returns the raw capture. The slice is valid until the next
// WriteFrame.
func (r *Recorder) Bytes() []byte { return r.buf.Bytes() }

// Len returns the capture size in bytes.
func (r *Recorder) Len() int { return r.buf.Len() }

// FrameCount returns how many frames were captured.
func (r *Recorder) FrameCount() int { return r.frames }

// Reader returns a reader over the capture, for saving to a Store.
func (r *Recorder) Reader() io.Reader { return bytes.NewReader(r.buf.Bytes()) }

// ReadAll decodes every frame from a capture stream. A truncated tail fails
// with protocol.ErrTruncatedMessage; frames decoded before the failure are
// returned alongside the error.
func ReadAll(rd io.Reader) ([]*protocol.Frame, error) {
	var frames []*protocol.Frame
	for {
		f, err := protocol.ReadFrame(rd)
		if err == io.EOF {
			return frames, nil
		}
		if err != nil {
			return frames, err
		}
		frames = append(frames, f)
	}
}

// Replay writes every frame of a capture to dst in order, flushing once at
// the end.
func Replay(rd io.Reader, dst interface {
	WriteFrame(*protocol.Frame) error
	Flush() error
}) (int, error) {
	n := 0
	for {
		f, err := protocol.ReadFrame(rd)
		if err == io.EOF {
			return n, dst.Flush()
		}
		if err != nil {
			return n, err
		}
		if err := dst.WriteFrame(f); err != nil {
			return n, err
		}
		n++
	}
}
