package recording

import (
	"bytes"
	"errors"
	"testing"

	"github.com/canvaswire/canvaswire/pkg/canvas"
	"github.com/canvaswire/canvaswire/pkg/protocol"
)

func TestRecorderCapturesSession(t *testing.T) {
	rec := NewRecorder()
	c := canvas.NewClient(rec)

	s, err := c.NewSurface()
	if err != nil {
		t.Fatalf("NewSurface: %v", err)
	}
	if err := s.SetFillStyle(protocol.Color("red")); err != nil {
		t.Fatal(err)
	}
	if err := s.FillRect(10, 10, 50, 50); err != nil {
		t.Fatal(err)
	}
	if err := s.Commit(); err != nil {
		t.Fatal(err)
	}

	if rec.FrameCount() != 4 {
		t.Errorf("FrameCount() = %d, want 4", rec.FrameCount())
	}

	frames, err := ReadAll(rec.Reader())
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	want := []protocol.Opcode{
		protocol.OpCreate, protocol.OpFillStyle,
		protocol.OpFillRect, protocol.OpCommit,
	}
	if len(frames) != len(want) {
		t.Fatalf("%d frames, want %d", len(frames), len(want))
	}
	for i, f := range frames {
		if f.Op != want[i] {
			t.Errorf("frame #%d = %s, want %s", i, f.Op, want[i])
		}
	}
}

func TestReadAllTruncated(t *testing.T) {
	rec := NewRecorder()
	if err := rec.WriteFrame(protocol.NewFrame(protocol.OpStroke, 0, nil)); err != nil {
		t.Fatal(err)
	}
	if err := rec.WriteFrame(protocol.NewFrame(protocol.OpFillRect, 0, []byte{0, 1, 0, 2, 0, 3, 0, 4})); err != nil {
		t.Fatal(err)
	}

	data := rec.Bytes()
	frames, err := ReadAll(bytes.NewReader(data[:len(data)-3]))
	if !errors.Is(err, protocol.ErrTruncatedMessage) {
		t.Fatalf("ReadAll error = %v, want ErrTruncatedMessage", err)
	}
	if len(frames) != 1 {
		t.Errorf("%d frames decoded before the truncation, want 1", len(frames))
	}
}

func TestReplay(t *testing.T) {
	src := NewRecorder()
	for _, f := range []*protocol.Frame{
		protocol.NewFrame(protocol.OpCreate, 0, []byte{0x01, 0x2C, 0x00, 0x96}),
		protocol.NewFrame(protocol.OpBeginPath, 0, nil),
		protocol.NewFrame(protocol.OpCommit, 0, nil),
	} {
		if err := src.WriteFrame(f); err != nil {
			t.Fatal(err)
		}
	}

	dst := NewRecorder()
	n, err := Replay(src.Reader(), dst)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if n != 3 {
		t.Errorf("Replay = %d frames, want 3", n)
	}
	if !bytes.Equal(dst.Bytes(), src.Bytes()) {
		t.Errorf("replayed bytes differ from capture")
	}
}
