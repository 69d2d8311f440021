package asset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/indieinfra/vitrine/asset/transcode"
	"github.com/indieinfra/vitrine/storage/blob"
)

// memBlob is an in-memory blob.Store tracking every write and delete.
type memBlob struct {
	mu       sync.Mutex
	files    map[string][]byte
	writeErr error
	seq      int
}

func newMemBlob() *memBlob {
	return &memBlob{files: make(map[string][]byte)}
}

func (m *memBlob) Write(ctx context.Context, src io.Reader, name string) (string, error) {
	if m.writeErr != nil {
		return "", m.writeErr
	}

	data, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	path := fmt.Sprintf("/uploads/%s", name)
	m.files[path] = data
	return path, nil
}

func (m *memBlob) Delete(ctx context.Context, storagePath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, storagePath)
	return nil
}

func (m *memBlob) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.files)
}

func (m *memBlob) has(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[path]
	return ok
}

func smallUpload(content string) Upload {
	return Upload{
		Reader:   strings.NewReader(content),
		Size:     int64(len(content)),
		Filename: "photo.jpg",
	}
}

func TestIngest(t *testing.T) {
	t.Run("file and record both exist after success", func(t *testing.T) {
		store := newMemBlob()
		c := NewCoordinator(store)

		var recorded string
		path, err := c.Ingest(context.Background(), blob.FamilyPhotography, smallUpload("bytes"), func(ctx context.Context, p string) error {
			recorded = p
			return nil
		})
		if err != nil {
			t.Fatalf("Ingest: %v", err)
		}

		if recorded != path {
			t.Errorf("record path %q != returned path %q", recorded, path)
		}
		if !store.has(path) {
			t.Error("file missing after successful ingest")
		}
		if store.count() != 1 {
			t.Errorf("file count = %d, want 1", store.count())
		}
	})

	t.Run("failed insert compensates the file", func(t *testing.T) {
		store := newMemBlob()
		c := NewCoordinator(store)

		_, err := c.Ingest(context.Background(), blob.FamilyPhotography, smallUpload("bytes"), func(ctx context.Context, p string) error {
			return errors.New("db down")
		})

		if !errors.Is(err, ErrPersistence) {
			t.Fatalf("err = %v, want ErrPersistence", err)
		}
		if store.count() != 0 {
			t.Errorf("file count = %d after failed insert, want 0", store.count())
		}
	})

	t.Run("write failure reports storage error and skips insert", func(t *testing.T) {
		store := newMemBlob()
		store.writeErr = errors.New("disk full")
		c := NewCoordinator(store)

		inserted := false
		_, err := c.Ingest(context.Background(), blob.FamilyPhotography, smallUpload("bytes"), func(ctx context.Context, p string) error {
			inserted = true
			return nil
		})

		if !errors.Is(err, ErrStorage) {
			t.Fatalf("err = %v, want ErrStorage", err)
		}
		if inserted {
			t.Error("insert ran after a failed write")
		}
	})

	t.Run("empty upload rejected before any write", func(t *testing.T) {
		store := newMemBlob()
		c := NewCoordinator(store)

		_, err := c.Ingest(context.Background(), blob.FamilyPhotography, Upload{}, func(ctx context.Context, p string) error {
			t.Error("insert must not run")
			return nil
		})

		if !errors.Is(err, ErrValidation) {
			t.Fatalf("err = %v, want ErrValidation", err)
		}
		if store.count() != 0 {
			t.Error("nothing should be written")
		}
	})

	t.Run("cancelled caller context does not abort the operation", func(t *testing.T) {
		store := newMemBlob()
		c := NewCoordinator(store)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		path, err := c.Ingest(ctx, blob.FamilyPhotography, smallUpload("bytes"), func(ctx context.Context, p string) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return nil
		})
		if err != nil {
			t.Fatalf("Ingest under cancelled context: %v", err)
		}
		if !store.has(path) {
			t.Error("file missing")
		}
	})

	t.Run("oversized upload lands as recoded jpeg", func(t *testing.T) {
		var buf bytes.Buffer
		img := image.NewRGBA(image.Rect(0, 0, 32, 32))
		for y := 0; y < 32; y++ {
			for x := 0; x < 32; x++ {
				img.Set(x, y, color.RGBA{R: uint8(x * 8), A: 255})
			}
		}
		if err := png.Encode(&buf, img); err != nil {
			t.Fatalf("encode png: %v", err)
		}

		store := newMemBlob()
		c := NewCoordinator(store)

		// The reported size drives the policy; the actual payload is a small
		// decodable image standing in for an oversized one.
		up := Upload{Reader: &buf, Size: transcode.Threshold + 1, Filename: "huge.png"}

		path, err := c.Ingest(context.Background(), blob.FamilyRestaurants, up, func(ctx context.Context, p string) error {
			return nil
		})
		if err != nil {
			t.Fatalf("Ingest: %v", err)
		}

		if !strings.HasSuffix(path, ".jpg") {
			t.Errorf("path = %q, want .jpg suffix after recode", path)
		}

		store.mu.Lock()
		data := store.files[path]
		store.mu.Unlock()
		if _, format, err := image.Decode(bytes.NewReader(data)); err != nil || format != "jpeg" {
			t.Errorf("stored payload not a jpeg: format=%q err=%v", format, err)
		}
	})
}

func TestReplace(t *testing.T) {
	t.Run("old file removed only after record update", func(t *testing.T) {
		store := newMemBlob()
		c := NewCoordinator(store)

		oldPath, err := store.Write(context.Background(), strings.NewReader("old"), "restaurants/old.jpg")
		if err != nil {
			t.Fatalf("seed old file: %v", err)
		}

		var updatedTo string
		newPath, err := c.Replace(context.Background(), blob.FamilyRestaurants, smallUpload("new"), oldPath, func(ctx context.Context, p string) error {
			if !store.has(oldPath) {
				t.Error("old file deleted before record update committed")
			}
			updatedTo = p
			return nil
		})
		if err != nil {
			t.Fatalf("Replace: %v", err)
		}

		if updatedTo != newPath {
			t.Errorf("record path %q != returned %q", updatedTo, newPath)
		}
		if store.has(oldPath) {
			t.Error("old file still present after successful replace")
		}
		if !store.has(newPath) {
			t.Error("new file missing")
		}
	})

	t.Run("failed update keeps old pair intact", func(t *testing.T) {
		store := newMemBlob()
		c := NewCoordinator(store)

		oldPath, err := store.Write(context.Background(), strings.NewReader("old"), "restaurants/old.jpg")
		if err != nil {
			t.Fatalf("seed old file: %v", err)
		}

		_, err = c.Replace(context.Background(), blob.FamilyRestaurants, smallUpload("new"), oldPath, func(ctx context.Context, p string) error {
			return errors.New("db down")
		})

		if !errors.Is(err, ErrPersistence) {
			t.Fatalf("err = %v, want ErrPersistence", err)
		}
		if !store.has(oldPath) {
			t.Error("old file lost after failed replace")
		}
		if store.count() != 1 {
			t.Errorf("file count = %d, want only the old file", store.count())
		}
	})
}

func TestRemove(t *testing.T) {
	t.Run("file then record", func(t *testing.T) {
		store := newMemBlob()
		c := NewCoordinator(store)

		path, err := store.Write(context.Background(), strings.NewReader("x"), "photography/x.jpg")
		if err != nil {
			t.Fatalf("seed file: %v", err)
		}

		deleted := false
		err = c.Remove(context.Background(), path, func(ctx context.Context) error {
			if store.has(path) {
				t.Error("file still present when record deletion ran")
			}
			deleted = true
			return nil
		})
		if err != nil {
			t.Fatalf("Remove: %v", err)
		}
		if !deleted {
			t.Error("record deletion did not run")
		}
	})

	t.Run("missing file does not block record deletion", func(t *testing.T) {
		store := newMemBlob()
		c := NewCoordinator(store)

		deleted := false
		err := c.Remove(context.Background(), "/uploads/photography/gone.jpg", func(ctx context.Context) error {
			deleted = true
			return nil
		})
		if err != nil {
			t.Fatalf("Remove: %v", err)
		}
		if !deleted {
			t.Error("record deletion did not run")
		}
	})

	t.Run("record failure surfaces as persistence error", func(t *testing.T) {
		store := newMemBlob()
		c := NewCoordinator(store)

		err := c.Remove(context.Background(), "/uploads/photography/x.jpg", func(ctx context.Context) error {
			return errors.New("db down")
		})
		if !errors.Is(err, ErrPersistence) {
			t.Fatalf("err = %v, want ErrPersistence", err)
		}
	})
}
