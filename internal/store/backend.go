// Package store implements the persisted collection store backing the
// platform.  The entire database is one JSON document (the snapshot)
// mapping collection names to ordered lists of records.  Every write
// serializes and replaces the whole snapshot; there is no per-record
// storage.  The snapshot lives behind a Backend, which only knows how to
// load and save one opaque blob.
package store

import "context"

// Backend persists the snapshot as a single opaque blob.  Load reports
// ok=false when no snapshot has ever been saved, which is how the store
// decides whether first-run seeding is needed.  Implementations do not
// interpret the blob.
type Backend interface {
	Load(ctx context.Context) (data []byte, ok bool, err error)
	Save(ctx context.Context, data []byte) error
}
