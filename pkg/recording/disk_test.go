package recording

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

func TestDiskStoreSaveOpen(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}

	payload := []byte("capture bytes")
	id, err := store.Save("demo", int64(len(payload)), bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if id == "" {
		t.Fatal("empty capture id")
	}

	rec, err := store.Open(id)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rec.Close()

	if rec.Name != "demo" || rec.Size != int64(len(payload)) {
		t.Errorf("metadata = %q/%d, want demo/%d", rec.Name, rec.Size, len(payload))
	}
	got, err := io.ReadAll(rec.Reader)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("capture bytes = %q, want %q", got, payload)
	}
}

func TestDiskStoreMetadataSurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir, 0)
	if err != nil {
		t.Fatal(err)
	}
	id, err := store.Save("persisted", 4, strings.NewReader("data"))
	if err != nil {
		t.Fatal(err)
	}

	// A fresh store over the same directory reads the sidecar.
	store2, err := NewDiskStore(dir, 0)
	if err != nil {
		t.Fatal(err)
	}
	rec, err := store2.Open(id)
	if err != nil {
		t.Fatalf("Open after restart: %v", err)
	}
	defer rec.Close()
	if rec.Name != "persisted" {
		t.Errorf("Name = %q, want persisted", rec.Name)
	}
}

func TestDiskStoreList(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.Save("first", 1, strings.NewReader("a")); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Save("second", 1, strings.NewReader("b")); err != nil {
		t.Fatal(err)
	}

	recs, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("List returned %d captures, want 2", len(recs))
	}
	names := map[string]bool{}
	for _, rec := range recs {
		if rec.Reader != nil {
			t.Errorf("capture %s carries an open Reader", rec.ID)
		}
		names[rec.Name] = true
	}
	if !names["first"] || !names["second"] {
		t.Errorf("List names = %v, want first and second", names)
	}
}

func TestDiskStoreNotFound(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.Open("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Open error = %v, want ErrNotFound", err)
	}
}

func TestDiskStoreSizeLimit(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), 8)
	if err != nil {
		t.Fatal(err)
	}

	// Declared size over the limit is rejected before any IO.
	if _, err := store.Save("big", 100, strings.NewReader("x")); !errors.Is(err, ErrTooLarge) {
		t.Errorf("Save error = %v, want ErrTooLarge", err)
	}

	// A stream that lies about its size is caught while copying.
	if _, err := store.Save("liar", 4, strings.NewReader(strings.Repeat("x", 64))); !errors.Is(err, ErrTooLarge) {
		t.Errorf("Save error = %v, want ErrTooLarge", err)
	}
}

func TestDiskStoreCleanup(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), 0)
	if err != nil {
		t.Fatal(err)
	}
	id, err := store.Save("old", 4, strings.NewReader("data"))
	if err != nil {
		t.Fatal(err)
	}

	if err := store.Cleanup(-time.Second); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if _, err := store.Open(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("Open after cleanup error = %v, want ErrNotFound", err)
	}
}
