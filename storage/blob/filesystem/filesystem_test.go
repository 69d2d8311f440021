package filesystem

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/indieinfra/vitrine/config"
)

func setupStore(t *testing.T) (*StoreImpl, string) {
	t.Helper()

	tmpDir := t.TempDir()
	store, err := NewFilesystemBlobStore(&config.FilesystemStrategy{
		Path:      tmpDir,
		PublicUrl: "/uploads/",
	})
	if err != nil {
		t.Fatalf("NewFilesystemBlobStore: %v", err)
	}

	return store, tmpDir
}

func TestNewFilesystemBlobStore(t *testing.T) {
	t.Run("creates missing base directory", func(t *testing.T) {
		nested := filepath.Join(t.TempDir(), "media", "uploads")

		if _, err := NewFilesystemBlobStore(&config.FilesystemStrategy{Path: nested, PublicUrl: "/uploads/"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if _, err := os.Stat(nested); os.IsNotExist(err) {
			t.Fatal("expected directory to be created")
		}
	})

	t.Run("nil config returns error", func(t *testing.T) {
		if _, err := NewFilesystemBlobStore(nil); err == nil {
			t.Error("expected error for nil config")
		}
	})
}

func TestWrite(t *testing.T) {
	t.Run("commits file under family directory", func(t *testing.T) {
		store, tmpDir := setupStore(t)

		content := []byte("jpeg bytes")
		storagePath, err := store.Write(context.Background(), bytes.NewReader(content), "restaurants/1693-ab12cd34.jpg")
		if err != nil {
			t.Fatalf("Write: %v", err)
		}

		if storagePath != "/uploads/restaurants/1693-ab12cd34.jpg" {
			t.Errorf("storagePath = %q", storagePath)
		}

		data, err := os.ReadFile(filepath.Join(tmpDir, "restaurants", "1693-ab12cd34.jpg"))
		if err != nil {
			t.Fatalf("ReadFile: %v", err)
		}
		if !bytes.Equal(data, content) {
			t.Error("file content mismatch")
		}
	})

	t.Run("leaves no partial files behind", func(t *testing.T) {
		store, tmpDir := setupStore(t)

		if _, err := store.Write(context.Background(), bytes.NewReader([]byte("x")), "photography/p.jpg"); err != nil {
			t.Fatalf("Write: %v", err)
		}

		entries, err := os.ReadDir(filepath.Join(tmpDir, "photography"))
		if err != nil {
			t.Fatalf("ReadDir: %v", err)
		}
		for _, e := range entries {
			if strings.HasPrefix(e.Name(), ".partial-") {
				t.Errorf("leftover temporary file: %s", e.Name())
			}
		}
	})

	t.Run("rejects escaping names", func(t *testing.T) {
		store, _ := setupStore(t)

		if _, err := store.Write(context.Background(), bytes.NewReader(nil), "../outside.jpg"); err == nil {
			t.Fatal("expected error for escaping name")
		}
		if _, err := store.Write(context.Background(), bytes.NewReader(nil), ""); err == nil {
			t.Fatal("expected error for empty name")
		}
	})
}

func TestDelete(t *testing.T) {
	t.Run("removes existing file", func(t *testing.T) {
		store, tmpDir := setupStore(t)

		storagePath, err := store.Write(context.Background(), bytes.NewReader([]byte("x")), "restaurants/a.jpg")
		if err != nil {
			t.Fatalf("Write: %v", err)
		}

		if err := store.Delete(context.Background(), storagePath); err != nil {
			t.Fatalf("Delete: %v", err)
		}

		if _, err := os.Stat(filepath.Join(tmpDir, "restaurants", "a.jpg")); !os.IsNotExist(err) {
			t.Error("expected file to be removed")
		}
	})

	t.Run("missing file is success", func(t *testing.T) {
		store, _ := setupStore(t)

		if err := store.Delete(context.Background(), "/uploads/restaurants/never-existed.jpg"); err != nil {
			t.Fatalf("expected success for missing file, got %v", err)
		}
	})

	t.Run("foreign prefix rejected", func(t *testing.T) {
		store, _ := setupStore(t)

		if err := store.Delete(context.Background(), "/elsewhere/a.jpg"); err == nil {
			t.Fatal("expected error for foreign prefix")
		}
	})

	t.Run("escaping path rejected", func(t *testing.T) {
		store, _ := setupStore(t)

		if err := store.Delete(context.Background(), "/uploads/../../etc/passwd"); err == nil {
			t.Fatal("expected error for escaping path")
		}
	})
}
