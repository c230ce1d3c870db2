package recording

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// DiskStore keeps captures on the local filesystem, one file per capture
// plus a JSON metadata sidecar.
type DiskStore struct {
	dir     string
	maxSize int64

	mu   sync.RWMutex
	meta map[string]*diskMeta
}

type diskMeta struct {
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// NewDiskStore creates a store rooted at dir, creating it if needed.
// maxSize caps a single capture in bytes; 0 means no limit.
func NewDiskStore(dir string, maxSize int64) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskStore{
		dir:     dir,
		maxSize: maxSize,
		meta:    make(map[string]*diskMeta),
	}, nil
}

// Save stores a capture and returns its id.
func (s *DiskStore) Save(name string, size int64, r io.Reader) (string, error) {
	if s.maxSize > 0 && size > s.maxSize {
		return "", ErrTooLarge
	}

	id := newCaptureID()
	path := filepath.Join(s.dir, id)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var reader io.Reader = r
	if s.maxSize > 0 {
		reader = io.LimitReader(r, s.maxSize+1) // +1 to detect overflow
	}
	written, err := io.Copy(f, reader)
	if err != nil {
		os.Remove(path)
		return "", err
	}
	if s.maxSize > 0 && written > s.maxSize {
		os.Remove(path)
		return "", ErrTooLarge
	}

	meta := &diskMeta{Name: name, Size: written, CreatedAt: time.Now()}

	s.mu.Lock()
	s.meta[id] = meta
	s.mu.Unlock()

	// Sidecar on disk so captures survive a restart.
	s.saveMeta(id, meta)

	return id, nil
}

// Open retrieves a capture by id.
func (s *DiskStore) Open(id string) (*Recording, error) {
	s.mu.RLock()
	meta, ok := s.meta[id]
	s.mu.RUnlock()

	if !ok {
		var err error
		meta, err = s.loadMeta(id)
		if err != nil {
			return nil, ErrNotFound
		}
	}

	path := filepath.Join(s.dir, id)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &Recording{
		ID:        id,
		Name:      meta.Name,
		Size:      meta.Size,
		CreatedAt: meta.CreatedAt,
		Path:      path,
		Reader:    f,
	}, nil
}

// List returns metadata for every capture in the directory, including ones
// saved by a previous process.
func (s *DiskStore) List() ([]*Recording, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var out []*Recording
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".meta") {
			continue
		}
		id := strings.TrimSuffix(name, ".meta")
		meta, err := s.loadMeta(id)
		if err != nil {
			continue
		}
		out = append(out, &Recording{
			ID:        id,
			Name:      meta.Name,
			Size:      meta.Size,
			CreatedAt: meta.CreatedAt,
			Path:      filepath.Join(s.dir, id),
		})
	}
	return out, nil
}

// Cleanup removes captures older than maxAge, including orphaned files left
// by a previous process.
func (s *DiskStore) Cleanup(maxAge time.Duration) error {
	cutoff := time.Now().Add(-maxAge)

	s.mu.Lock()
	for id, meta := range s.meta {
		if meta.CreatedAt.Before(cutoff) {
			delete(s.meta, id)
			os.Remove(filepath.Join(s.dir, id))
			os.Remove(s.metaPath(id))
		}
	}
	s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			os.Remove(filepath.Join(s.dir, entry.Name()))
		}
	}
	return nil
}

func (s *DiskStore) metaPath(id string) string {
	return filepath.Join(s.dir, id+".meta")
}

func (s *DiskStore) saveMeta(id string, meta *diskMeta) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	return os.WriteFile(s.metaPath(id), data, 0o644)
}

func (s *DiskStore) loadMeta(id string) (*diskMeta, error) {
	data, err := os.ReadFile(s.metaPath(id))
	if err != nil {
		return nil, err
	}
	var meta diskMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// newCaptureID generates a cryptographically random capture id.
func newCaptureID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}
