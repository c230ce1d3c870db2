package canvas

import (
	"errors"
	"testing"

	"github.com/canvaswire/canvaswire/pkg/protocol"
)

func TestAllocatorExhaustion(t *testing.T) {
	a := newAllocator()

	seen := make(map[protocol.SurfaceID]bool)
	for i := 0; i < protocol.MaxSurfaces; i++ {
		id, err := a.allocate()
		if err != nil {
			t.Fatalf("allocate #%d: %v", i+1, err)
		}
		if seen[id] {
			t.Fatalf("id %d handed out twice", id)
		}
		seen[id] = true
	}

	if _, err := a.allocate(); !errors.Is(err, protocol.ErrTooManySurfaces) {
		t.Errorf("allocate #257 error = %v, want ErrTooManySurfaces", err)
	}
	if a.liveCount() != protocol.MaxSurfaces {
		t.Errorf("liveCount() = %d, want %d", a.liveCount(), protocol.MaxSurfaces)
	}
}

func TestAllocatorRecycles(t *testing.T) {
	a := newAllocator()
	first, _ := a.allocate()
	second, _ := a.allocate()

	a.release(first)
	if a.liveCount() != 1 {
		t.Errorf("liveCount() = %d after release, want 1", a.liveCount())
	}

	got, err := a.allocate()
	if err != nil {
		t.Fatal(err)
	}
	if got != first {
		t.Errorf("allocate after release = %d, want recycled %d", got, first)
	}

	next, err := a.allocate()
	if err != nil {
		t.Fatal(err)
	}
	if next == first || next == second {
		t.Errorf("fresh id %d collides with a live one", next)
	}
}

func TestShadowState(t *testing.T) {
	s := NewShadowState()

	if !s.Changed(1, protocol.OpLineWidth, []byte{1, 2}) {
		t.Error("unset property reported unchanged")
	}

	s.Commit(1, protocol.OpLineWidth, []byte{1, 2})
	if s.Changed(1, protocol.OpLineWidth, []byte{1, 2}) {
		t.Error("identical payload reported changed")
	}
	if !s.Changed(1, protocol.OpLineWidth, []byte{1, 3}) {
		t.Error("different payload reported unchanged")
	}

	// Keys are per surface and per property.
	if !s.Changed(2, protocol.OpLineWidth, []byte{1, 2}) {
		t.Error("other surface shares the mirror entry")
	}
	if !s.Changed(1, protocol.OpMiterLimit, []byte{1, 2}) {
		t.Error("other property shares the mirror entry")
	}

	// Commit copies; mutating the caller's buffer must not corrupt the mirror.
	buf := []byte{9}
	s.Commit(1, protocol.OpShadowBlur, buf)
	buf[0] = 7
	if s.Changed(1, protocol.OpShadowBlur, []byte{9}) {
		t.Error("mirror aliased the caller's buffer")
	}

	// Forget drops one surface's entries and leaves the others alone.
	s.Commit(2, protocol.OpLineWidth, []byte{1, 2})
	s.Forget(1)
	if !s.Changed(1, protocol.OpLineWidth, []byte{1, 2}) {
		t.Error("Forget left surface 1 entries behind")
	}
	if s.Changed(2, protocol.OpLineWidth, []byte{1, 2}) {
		t.Error("Forget dropped surface 2 entries")
	}
}
