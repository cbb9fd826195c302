package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// snapshot is the in-memory form of the persisted document: collection
// name to ordered list of raw records.
type snapshot map[string][]json.RawMessage

// Store provides CRUD over named collections backed by a single
// serialized snapshot.  Every operation loads the full snapshot from the
// backend, acts on it, and (for mutations) writes the full snapshot back.
// A store-level mutex serializes all operations, so concurrent requests
// never interleave load-mutate-save cycles.  Construct stores with New and
// pass them explicitly to consumers; there is no package-level instance.
type Store struct {
	mu        sync.Mutex
	backend   Backend
	integrity IntegrityPolicy
	refs      []Reference
}

// Option configures a Store at construction time.
type Option func(*Store)

// WithIntegrity selects the referential-integrity policy applied on
// deletes.  The default is IntegrityOrphan.
func WithIntegrity(p IntegrityPolicy) Option {
	return func(s *Store) { s.integrity = p }
}

// WithReferences replaces the reference table consulted under
// IntegrityRestrict.  The default is DefaultReferences.
func WithReferences(refs []Reference) Option {
	return func(s *Store) { s.refs = refs }
}

// New returns a store over the given backend.
func New(backend Backend, opts ...Option) *Store {
	s := &Store{backend: backend, integrity: IntegrityOrphan, refs: DefaultReferences}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize seeds the snapshot with the fixed starter data on first run.
// When a snapshot already exists the call is a no-op, so it is safe to run
// on every process start.  Backend failures propagate unmodified.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok, err := s.backend.Load(ctx)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	return s.save(ctx, seedSnapshot())
}

// GetAll returns the current record list for collection, in stored order.
// An absent collection yields an empty list, never an error.
func (s *Store) GetAll(ctx context.Context, collection string) ([]json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	list := snap[collection]
	out := make([]json.RawMessage, len(list))
	copy(out, list)
	return out, nil
}

// GetByID scans collection for the first record whose id matches.  The
// second return value reports whether a record was found.
func (s *Store) GetByID(ctx context.Context, collection, id string) (json.RawMessage, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.load(ctx)
	if err != nil {
		return nil, false, err
	}
	for _, raw := range snap[collection] {
		if recordID(raw) == id {
			return raw, true, nil
		}
	}
	return nil, false, nil
}

// Create appends record to collection, creating the collection if absent,
// and persists the snapshot.  A record without an id gets a generated one
// that is checked against every id already present in the collection, so
// the returned record's id is never empty and never a duplicate.
func (s *Store) Create(ctx context.Context, collection string, record json.RawMessage) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	fields, err := decodeFields(record)
	if err != nil {
		return nil, err
	}
	id, _ := fields["id"].(string)
	if id == "" {
		taken := make(map[string]bool, len(snap[collection]))
		for _, raw := range snap[collection] {
			taken[recordID(raw)] = true
		}
		for {
			id = uuid.NewString()
			if !taken[id] {
				break
			}
		}
		fields["id"] = id
	}
	stored, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	snap[collection] = append(snap[collection], stored)
	if err := s.save(ctx, snap); err != nil {
		return nil, err
	}
	return stored, nil
}

// Update shallow-merges patch onto the record with the given id, patch
// fields winning, and persists the result.  When no record matches, the
// snapshot is left untouched and ok is false.
func (s *Store) Update(ctx context.Context, collection, id string, patch json.RawMessage) (json.RawMessage, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.load(ctx)
	if err != nil {
		return nil, false, err
	}
	idx := -1
	for i, raw := range snap[collection] {
		if recordID(raw) == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, false, nil
	}
	fields, err := decodeFields(snap[collection][idx])
	if err != nil {
		return nil, false, err
	}
	patchFields, err := decodeFields(patch)
	if err != nil {
		return nil, false, err
	}
	for k, v := range patchFields {
		fields[k] = v
	}
	merged, err := json.Marshal(fields)
	if err != nil {
		return nil, false, err
	}
	snap[collection][idx] = merged
	if err := s.save(ctx, snap); err != nil {
		return nil, false, err
	}
	return merged, true, nil
}

// UpdateIf shallow-merges patch onto the record with the given id, but
// only while the record's named field still holds want.  The check and
// the merge run under the store mutex, so of two racing callers at most
// one can observe the wanted value.  An absent id reports ok=false; a
// failed check reports ErrConflict.  Either way nothing is written.
func (s *Store) UpdateIf(ctx context.Context, collection, id, field, want string, patch json.RawMessage) (json.RawMessage, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.load(ctx)
	if err != nil {
		return nil, false, err
	}
	idx := -1
	for i, raw := range snap[collection] {
		if recordID(raw) == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, false, nil
	}
	fields, err := decodeFields(snap[collection][idx])
	if err != nil {
		return nil, false, err
	}
	if got, _ := fields[field].(string); got != want {
		return nil, false, fmt.Errorf("%w (%s is %q)", ErrConflict, field, got)
	}
	patchFields, err := decodeFields(patch)
	if err != nil {
		return nil, false, err
	}
	for k, v := range patchFields {
		fields[k] = v
	}
	merged, err := json.Marshal(fields)
	if err != nil {
		return nil, false, err
	}
	snap[collection][idx] = merged
	if err := s.save(ctx, snap); err != nil {
		return nil, false, err
	}
	return merged, true, nil
}

// Delete removes the first record whose id matches and persists the
// snapshot regardless of whether anything matched.  It reports whether
// the collection shrank.  Under IntegrityRestrict the delete is refused
// with ErrConflict while other records still reference the target.
func (s *Store) Delete(ctx context.Context, collection, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	idx := -1
	for i, raw := range snap[collection] {
		if recordID(raw) == id {
			idx = i
			break
		}
	}
	if idx != -1 && s.integrity == IntegrityRestrict {
		if ref := s.referencedBy(snap, collection, id); ref != "" {
			return false, fmt.Errorf("%w (by %s)", ErrConflict, ref)
		}
	}
	if idx != -1 {
		list := snap[collection]
		snap[collection] = append(list[:idx], list[idx+1:]...)
	}
	if err := s.save(ctx, snap); err != nil {
		return false, err
	}
	return idx != -1, nil
}

// load reads and decodes the full snapshot.  A backend with no snapshot
// yet yields an empty one.
func (s *Store) load(ctx context.Context) (snapshot, error) {
	data, ok, err := s.backend.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return snapshot{}, nil
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("store: corrupt snapshot: %w", err)
	}
	if snap == nil {
		snap = snapshot{}
	}
	return snap, nil
}

// save encodes and writes the full snapshot.
func (s *Store) save(ctx context.Context, snap snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.backend.Save(ctx, data)
}

// referencedBy returns "collection.field" for the first reference in the
// table that still points at the record, or "" when nothing does.
func (s *Store) referencedBy(snap snapshot, collection, id string) string {
	for _, ref := range s.refs {
		if ref.To != collection {
			continue
		}
		for _, raw := range snap[ref.From] {
			if fieldHasID(raw, ref.Field, id) {
				return ref.From + "." + ref.Field
			}
		}
	}
	return ""
}

// fieldHasID reports whether the named field of a raw record equals id.
// An "array.field" form checks the field inside every element of a list.
func fieldHasID(raw json.RawMessage, field, id string) bool {
	fields, err := decodeFields(raw)
	if err != nil {
		return false
	}
	outer, inner, nested := strings.Cut(field, ".")
	if !nested {
		v, _ := fields[field].(string)
		return v == id
	}
	list, _ := fields[outer].([]any)
	for _, elem := range list {
		if m, ok := elem.(map[string]any); ok {
			if v, _ := m[inner].(string); v == id {
				return true
			}
		}
	}
	return false
}

// recordID extracts the id field of a raw record.  Records without an id
// yield "" and simply never match lookups.
func recordID(raw json.RawMessage) string {
	var probe struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(raw, &probe)
	return probe.ID
}

// decodeFields unmarshals a raw record into its field map.
func decodeFields(raw json.RawMessage) (map[string]any, error) {
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("store: record is not a JSON object: %w", err)
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}
