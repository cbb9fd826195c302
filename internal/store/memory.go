package store

import (
	"context"
	"sync"
)

// MemoryBackend keeps the snapshot in process memory.  It is used by tests
// and by deployments that do not care about persistence across restarts.
type MemoryBackend struct {
	mu   sync.Mutex
	data []byte
	set  bool
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend { return &MemoryBackend{} }

// Load returns the stored snapshot, or ok=false when nothing was saved yet.
func (b *MemoryBackend) Load(_ context.Context) ([]byte, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.set {
		return nil, false, nil
	}
	cp := make([]byte, len(b.data))
	copy(cp, b.data)
	return cp, true, nil
}

// Save replaces the stored snapshot.
func (b *MemoryBackend) Save(_ context.Context, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = make([]byte, len(data))
	copy(b.data, data)
	b.set = true
	return nil
}
