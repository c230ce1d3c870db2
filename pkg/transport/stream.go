package transport

import (
	"bufio"
	"io"
	"os"

	"github.com/canvaswire/canvaswire/pkg/protocol"
)

// defaultStreamBuffer is the write buffer size for stream transports.
// Frames are tiny (most under 32 bytes), so buffering until an explicit
// commit saves one syscall per drawing call.
const defaultStreamBuffer = 8 * 1024

// Stream writes frames back-to-back onto a single long-lived byte stream,
// typically a device file, named pipe or socket. Writes are buffered;
// Flush (driven by the commit opcode) pushes them to the channel.
type Stream struct {
	w      *bufio.Writer
	closer io.Closer
}

// NewStream wraps an existing writer. If w is also an io.Closer, Close
// closes it.
func NewStream(w io.Writer) *Stream {
	s := &Stream{w: bufio.NewWriterSize(w, defaultStreamBuffer)}
	if c, ok := w.(io.Closer); ok {
		s.closer = c
	}
	return s
}

// OpenStream opens the byte channel at path for writing. The path is
// configuration, not protocol: a device file, a FIFO, or a plain file for
// capture all behave the same.
func OpenStream(path string) (*Stream, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return nil, err
	}
	return NewStream(f), nil
}

// WriteFrame writes one frame into the stream buffer.
func (s *Stream) WriteFrame(f *protocol.Frame) error {
	return protocol.WriteFrame(s.w, f)
}

// Flush pushes buffered frames to the underlying channel.
func (s *Stream) Flush() error {
	return s.w.Flush()
}

// Close flushes and closes the underlying channel, if it is closable.
func (s *Stream) Close() error {
	if err := s.w.Flush(); err != nil {
		return err
	}
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}
