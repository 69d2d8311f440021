// Package asset contains the lifecycle coordinator: the one component
// allowed to touch a media file and its metadata row in the same operation.
// It guarantees that no operation leaves an orphaned file or a dangling
// record under normal and failure conditions.
package asset

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"

	"github.com/indieinfra/vitrine/asset/transcode"
	"github.com/indieinfra/vitrine/storage/blob"
)

// Upload is one inbound binary payload, already size- and type-screened at
// the transport boundary.
type Upload struct {
	Reader   io.Reader
	Size     int64
	Filename string
}

// Coordinator orchestrates the blob store and a caller-supplied record
// operation per asset. It holds no state between invocations; each call is
// one atomic-intent transaction over the two substrates.
type Coordinator struct {
	Blob blob.Store
}

func NewCoordinator(store blob.Store) *Coordinator {
	return &Coordinator{Blob: store}
}

// stage runs the transcode policy and writes the final file, returning its
// committed storage path.
func (c *Coordinator) stage(ctx context.Context, family string, up Upload) (string, error) {
	src := up.Reader
	ext := path.Ext(up.Filename)

	if d := transcode.Decide(up.Size); d.Compress {
		recoded, _, err := transcode.Recode(src, d)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrStorage, err)
		}
		src = recoded
		ext = ".jpg"
	}

	storagePath, err := c.Blob.Write(ctx, src, blob.NewName(family, ext))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorage, err)
	}

	return storagePath, nil
}

// Ingest writes the upload's final file, then calls insert with the
// resulting storage path so the caller can create the metadata row. If the
// insert fails the file is deleted again; the upload either exists in both
// substrates or in neither.
//
// The work runs on a detached context: a caller disconnect must not abort a
// file write whose row may already be committed.
func (c *Coordinator) Ingest(ctx context.Context, family string, up Upload, insert func(context.Context, string) error) (string, error) {
	if up.Reader == nil || up.Size <= 0 {
		return "", fmt.Errorf("%w: upload payload is required", ErrValidation)
	}

	ctx = context.WithoutCancel(ctx)

	storagePath, err := c.stage(ctx, family, up)
	if err != nil {
		return "", err
	}

	if err := insert(ctx, storagePath); err != nil {
		c.compensate(ctx, storagePath)
		return "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return storagePath, nil
}

// Replace writes the new file, lets the caller commit the record update, and
// only then deletes the old file. A crash between the new-file write and the
// record update leaves the old pair self-consistent; a crash after the
// update leaves at most a harmless orphan old file, never a broken
// reference.
func (c *Coordinator) Replace(ctx context.Context, family string, up Upload, oldPath string, update func(context.Context, string) error) (string, error) {
	if up.Reader == nil || up.Size <= 0 {
		return "", fmt.Errorf("%w: upload payload is required", ErrValidation)
	}

	ctx = context.WithoutCancel(ctx)

	storagePath, err := c.stage(ctx, family, up)
	if err != nil {
		return "", err
	}

	if err := update(ctx, storagePath); err != nil {
		c.compensate(ctx, storagePath)
		return "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if oldPath != "" && oldPath != storagePath {
		if err := c.Blob.Delete(ctx, oldPath); err != nil {
			// The record already points at the new file; the stale one is an
			// inert orphan, not a consistency break.
			log.Printf("failed to remove replaced file %s: %v", oldPath, err)
		}
	}

	return storagePath, nil
}

// Remove deletes the file first, then lets the caller remove the record. A
// crash between the steps leaves at most a dangling record, never a lost
// file with no trace. File-deletion errors are logged and do not block the
// record deletion; absence of the file is a defined non-error outcome.
func (c *Coordinator) Remove(ctx context.Context, storagePath string, deleteRecord func(context.Context) error) error {
	if err := c.Blob.Delete(ctx, storagePath); err != nil {
		log.Printf("failed to remove file %s, deleting record anyway: %v", storagePath, err)
	}

	if err := deleteRecord(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return nil
}

func (c *Coordinator) compensate(ctx context.Context, storagePath string) {
	if err := c.Blob.Delete(ctx, storagePath); err != nil {
		log.Printf("compensating delete of %s failed: %v", storagePath, err)
	}
}
