// Package recording captures frame streams for later replay and stores the
// resulting captures on disk or in S3.
//
// A capture is the raw wire bytes, frame after frame, exactly as a renderer
// would have received them. Replaying a capture through any frame transport
// reproduces the drawing.
package recording

import (
	"errors"
	"io"
	"time"
)

// ErrNotFound is returned when a capture does not exist in the store.
var ErrNotFound = errors.New("recording: capture not found")

// ErrTooLarge is returned when a capture exceeds the store's size limit.
var ErrTooLarge = errors.New("recording: capture too large")

// Store is the interface for capture storage backends.
type Store interface {
	// Save stores a capture and returns its id.
	Save(name string, size int64, r io.Reader) (id string, err error)

	// Open retrieves a capture by id. The caller closes the Recording.
	Open(id string) (*Recording, error)

	// List returns metadata for all stored captures. The returned
	// Recordings carry no Reader.
	List() ([]*Recording, error)

	// Cleanup removes captures older than maxAge. Call it periodically.
	Cleanup(maxAge time.Duration) error
}

// Recording is one stored capture.
type Recording struct {
	// ID is the store-assigned identifier.
	ID string

	// Name is the caller-supplied capture name.
	Name string

	// Size is the capture size in bytes.
	Size int64

	// CreatedAt is when the capture was saved.
	CreatedAt time.Time

	// Path is the local filesystem path (disk store only).
	Path string

	// URL is a presigned download URL (S3 store only).
	URL string

	// Reader streams the capture bytes.
	Reader io.ReadCloser
}

// Close closes the capture reader if open.
func (r *Recording) Close() error {
	if r.Reader != nil {
		return r.Reader.Close()
	}
	return nil
}
