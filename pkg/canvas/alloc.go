package canvas

import "github.com/canvaswire/canvaswire/pkg/protocol"

// allocator hands out surface ids. Ids are one byte on the wire, hence the
// hard cap of 256 live surfaces. Ids from explicitly removed surfaces are
// recycled (most recently released first); an id is only released after the
// remove frame was written, so an in-flight surface can never share its id.
type allocator struct {
	next int // monotonic counter for never-used ids
	free []protocol.SurfaceID
	live int
}

func newAllocator() *allocator {
	return &allocator{}
}

// allocate returns the next id, preferring recycled ones.
func (a *allocator) allocate() (protocol.SurfaceID, error) {
	if a.live >= protocol.MaxSurfaces {
		return 0, protocol.ErrTooManySurfaces
	}
	a.live++
	if n := len(a.free); n > 0 {
		id := a.free[n-1]
		a.free = a.free[:n-1]
		return id, nil
	}
	id := protocol.SurfaceID(a.next)
	a.next++
	return id, nil
}

// release returns a removed surface's id to the free list.
func (a *allocator) release(id protocol.SurfaceID) {
	a.live--
	a.free = append(a.free, id)
}

// liveCount returns how many ids are currently outstanding.
func (a *allocator) liveCount() int { return a.live }
