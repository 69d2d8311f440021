// Package blob holds the content store: durable byte storage for media
// files, addressed by generated names relative to a single public mount.
package blob

import (
	"context"
	"io"
)

// Store is the content store contract the asset coordinator depends on.
//
// Write streams src into the store under name (a family-prefixed relative
// path such as "restaurants/169...-ab12cd34.jpg") and returns the storage
// path the record store should reference. A partially written destination
// must never be observable as a committed result.
//
// Delete removes the file at storagePath. Deleting a path that does not
// exist is not an error; implementations log and report success.
type Store interface {
	Write(ctx context.Context, src io.Reader, name string) (string, error)
	Delete(ctx context.Context, storagePath string) error
}
