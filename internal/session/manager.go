package session

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/moewai/aquaflow/internal/model"
	"github.com/moewai/aquaflow/internal/store"
)

// ErrUnknownProfile is returned by Login when the requested user id does
// not exist in the users collection.
var ErrUnknownProfile = errors.New("unknown login profile")

// Manager owns every live session, keyed by session id.  It depends on
// the store only to enumerate and resolve the selectable login profiles;
// everything else it needs lives in the sessions themselves.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	users    *store.Collection[model.User]
}

// NewManager returns a manager with no sessions, reading login profiles
// from users.
func NewManager(users *store.Collection[model.User]) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		users:    users,
	}
}

// ListLoginProfiles returns every user as a selectable profile, in stored
// order, without filtering.
func (m *Manager) ListLoginProfiles(ctx context.Context) ([]model.User, error) {
	return m.users.All(ctx)
}

// Login resolves the profile, creates a session, and logs it in.  It
// returns the new session id, the session, and the resolved user.
func (m *Manager) Login(ctx context.Context, userID string) (string, *Session, model.User, error) {
	user, ok, err := m.users.Get(ctx, userID)
	if err != nil {
		return "", nil, model.User{}, err
	}
	if !ok {
		return "", nil, model.User{}, ErrUnknownProfile
	}
	sess := NewSession()
	if err := sess.Login(user); err != nil {
		return "", nil, model.User{}, err
	}
	id := uuid.NewString()
	m.mu.Lock()
	m.sessions[id] = sess
	m.mu.Unlock()
	return id, sess, user, nil
}

// Get returns the session with the given id.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[id]
	return sess, ok
}

// Logout logs the session out and removes it.  It reports whether a
// session with that id existed.
func (m *Manager) Logout(id string) bool {
	m.mu.Lock()
	sess, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		sess.Logout()
	}
	return ok
}
