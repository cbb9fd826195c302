package store

import (
	"context"
	"encoding/json"
)

// Collection is a typed view over one named collection of a Store.  It
// keeps the generic snapshot machinery out of handler code: every
// operation speaks the collection's concrete record type instead of raw
// JSON, so a users collection cannot hand back an order.
type Collection[T any] struct {
	store *Store
	name  string
}

// NewCollection binds a record type to a collection name on the store.
func NewCollection[T any](s *Store, name string) *Collection[T] {
	return &Collection[T]{store: s, name: name}
}

// Name returns the collection name inside the snapshot.
func (c *Collection[T]) Name() string { return c.name }

// All returns every record of the collection in stored order.
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	raws, err := c.store.GetAll(ctx, c.name)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(raws))
	for _, raw := range raws {
		var rec T
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// Get returns the record with the given id, or ok=false when absent.
func (c *Collection[T]) Get(ctx context.Context, id string) (T, bool, error) {
	var rec T
	raw, ok, err := c.store.GetByID(ctx, c.name, id)
	if err != nil || !ok {
		return rec, ok, err
	}
	if err := json.Unmarshal(raw, &rec); err != nil {
		return rec, false, err
	}
	return rec, true, nil
}

// Create stores the record, generating an id when the record carries none,
// and returns the stored record with its id populated.
func (c *Collection[T]) Create(ctx context.Context, rec T) (T, error) {
	var out T
	raw, err := json.Marshal(rec)
	if err != nil {
		return out, err
	}
	stored, err := c.store.Create(ctx, c.name, raw)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(stored, &out); err != nil {
		return out, err
	}
	return out, nil
}

// Update shallow-merges patch onto the record with the given id.  Patch
// keys are snapshot field names; values win over the existing fields.
// ok=false reports an absent id with nothing changed.
func (c *Collection[T]) Update(ctx context.Context, id string, patch map[string]any) (T, bool, error) {
	var out T
	raw, err := json.Marshal(patch)
	if err != nil {
		return out, false, err
	}
	merged, ok, err := c.store.Update(ctx, c.name, id, raw)
	if err != nil || !ok {
		return out, ok, err
	}
	if err := json.Unmarshal(merged, &out); err != nil {
		return out, false, err
	}
	return out, true, nil
}

// UpdateIf applies patch like Update, but only while the record's named
// field still holds want.  A failed check yields ErrConflict with nothing
// changed, which makes it the tool for one-shot status transitions.
func (c *Collection[T]) UpdateIf(ctx context.Context, id, field, want string, patch map[string]any) (T, bool, error) {
	var out T
	raw, err := json.Marshal(patch)
	if err != nil {
		return out, false, err
	}
	merged, ok, err := c.store.UpdateIf(ctx, c.name, id, field, want, raw)
	if err != nil || !ok {
		return out, ok, err
	}
	if err := json.Unmarshal(merged, &out); err != nil {
		return out, false, err
	}
	return out, true, nil
}

// Delete removes the record with the given id and reports whether the
// collection shrank.
func (c *Collection[T]) Delete(ctx context.Context, id string) (bool, error) {
	return c.store.Delete(ctx, c.name, id)
}
