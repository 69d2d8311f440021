package factory

import (
	"fmt"
	"sync"

	"github.com/indieinfra/vitrine/config"
	"github.com/indieinfra/vitrine/storage/blob"
	"github.com/indieinfra/vitrine/storage/blob/filesystem"
	"github.com/indieinfra/vitrine/storage/blob/s3"
)

// Factory builds a blob store for the provided blob config.
type Factory func(*config.Blob) (blob.Store, error)

var (
	mu       sync.RWMutex
	registry = map[string]Factory{}
)

// Register adds or replaces a blob store factory for the given strategy name.
func Register(strategy string, factory Factory) {
	mu.Lock()
	registry[strategy] = factory
	mu.Unlock()
}

// Get retrieves a factory for the given strategy.
func Get(strategy string) (Factory, bool) {
	mu.RLock()
	f, ok := registry[strategy]
	mu.RUnlock()
	return f, ok
}

// Create builds a blob store using the registered factory for the configured strategy.
func Create(cfg *config.Blob) (blob.Store, error) {
	if f, ok := Get(cfg.Strategy); ok {
		return f(cfg)
	}

	return nil, fmt.Errorf("unknown blob strategy %q", cfg.Strategy)
}

func init() {
	Register("noop", func(cfg *config.Blob) (blob.Store, error) {
		return &blob.NoopStore{}, nil
	})
	Register("filesystem", func(cfg *config.Blob) (blob.Store, error) {
		return filesystem.NewFilesystemBlobStore(cfg.Filesystem)
	})
	Register("s3", func(cfg *config.Blob) (blob.Store, error) {
		return s3.NewS3BlobStore(cfg.S3)
	})
}
