package blob

import (
	"context"
	"io"
	"log"
)

// NoopStore discards writes and accepts deletes. Useful when wiring up an
// environment before real storage exists.
type NoopStore struct{}

func (ns *NoopStore) Write(ctx context.Context, src io.Reader, name string) (string, error) {
	n, err := io.Copy(io.Discard, src)
	if err != nil {
		return "", err
	}

	log.Printf("noop blob store discarded %d bytes for %q", n, name)
	return "/noop/" + name, nil
}

func (ns *NoopStore) Delete(ctx context.Context, storagePath string) error {
	log.Printf("noop blob store delete: %s", storagePath)
	return nil
}
