package store

import (
	"context"
	"errors"
	"io/fs"
	"os"
)

// FileBackend persists the snapshot as a single file on disk.  This is the
// default backend; it requires no external services.  Writes replace the
// file wholesale, matching the last-writer-wins contract of the snapshot.
type FileBackend struct {
	path string
}

// NewFileBackend returns a backend writing the snapshot to path.
func NewFileBackend(path string) *FileBackend { return &FileBackend{path: path} }

// Load reads the snapshot file.  A missing file means no snapshot exists
// yet; any other read error propagates.
func (b *FileBackend) Load(_ context.Context) ([]byte, bool, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// Save replaces the snapshot file.
func (b *FileBackend) Save(_ context.Context, data []byte) error {
	return os.WriteFile(b.path, data, 0o644)
}
