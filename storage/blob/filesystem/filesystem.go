package filesystem

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/indieinfra/vitrine/config"
	storageutil "github.com/indieinfra/vitrine/storage/util"
)

// StoreImpl keeps media files in a local directory tree mirrored by the
// server's static mount. Concurrent writers are safe without locking because
// generated names never collide.
type StoreImpl struct {
	basePath  string
	publicURL string
}

func NewFilesystemBlobStore(cfg *config.FilesystemStrategy) (*StoreImpl, error) {
	if cfg == nil {
		return nil, fmt.Errorf("filesystem blob config is nil")
	}

	if err := os.MkdirAll(cfg.Path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &StoreImpl{
		basePath:  cfg.Path,
		publicURL: storageutil.NormalizeBaseURL(cfg.PublicUrl),
	}, nil
}

// Write streams src to a temporary file in the destination directory and
// renames it into place, so a half-written file is never visible under the
// committed name.
func (fs *StoreImpl) Write(ctx context.Context, src io.Reader, name string) (string, error) {
	if name == "" || !filepath.IsLocal(filepath.FromSlash(name)) {
		return "", fmt.Errorf("invalid blob name %q", name)
	}

	absPath := filepath.Join(fs.basePath, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(absPath), ".partial-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to finalize file: %w", err)
	}

	if err := os.Rename(tmp.Name(), absPath); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to commit file: %w", err)
	}

	return fs.publicURL + name, nil
}

// Delete removes the file behind storagePath. A missing file is success: the
// source may already be gone after a prior partial failure.
func (fs *StoreImpl) Delete(ctx context.Context, storagePath string) error {
	if !strings.HasPrefix(storagePath, fs.publicURL) {
		return fmt.Errorf("storage path %q does not match public URL prefix %q", storagePath, fs.publicURL)
	}

	relPath := filepath.FromSlash(strings.TrimPrefix(storagePath, fs.publicURL))
	if !filepath.IsLocal(relPath) {
		return fmt.Errorf("storage path %q escapes the store", storagePath)
	}

	absPath := filepath.Join(fs.basePath, relPath)

	if err := os.Remove(absPath); err != nil {
		if os.IsNotExist(err) {
			log.Printf("blob already absent, treating delete as success: %s", storagePath)
			return nil
		}
		return fmt.Errorf("failed to remove file: %w", err)
	}

	return nil
}
