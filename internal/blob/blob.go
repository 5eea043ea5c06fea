// Package blob defines the persistence port for the data store: a single
// mutable blob that is read and rewritten wholesale on every mutation.
// Backends live in subpackages (file, sqlite, memory).
package blob

import "context"

// Key is the storage key the dataset lives under. File backends use it as
// part of the filename, the sqlite backend as the row key.
const Key = "financial-control-data"

// Store is the outbound port for dataset persistence.
type Store interface {
	// Get returns the stored blob. ok is false when nothing has been
	// stored yet; that is not an error.
	Get(ctx context.Context) (data []byte, ok bool, err error)

	// Put replaces the stored blob.
	Put(ctx context.Context, data []byte) error

	// Delete removes the stored blob. Deleting an absent blob is a no-op.
	Delete(ctx context.Context) error
}
