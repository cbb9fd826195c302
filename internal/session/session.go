// Package session implements the session and navigation model: which user
// is active, which view they are on, and which navigation entries their
// role may see.  A Session has exactly two states.  LoggedOut holds no
// user and no view; LoggedIn holds one user and one active view.  Login
// and Logout move between the states, SetActiveView is a self-transition
// inside LoggedIn.
package session

import (
	"sync"

	"github.com/moewai/aquaflow/internal/model"
)

// State is the session's position in its two-state machine.
type State int

const (
	LoggedOut State = iota
	LoggedIn
)

// Session tracks the active user and active view for one client.  It is
// transient runtime state and is never persisted.  All methods are safe
// for concurrent use.
type Session struct {
	mu         sync.RWMutex
	user       *model.User
	activeView string
}

// NewSession returns an empty, logged-out session.
func NewSession() *Session { return &Session{} }

// Login sets the active user and selects the initial view for the user's
// role.  A role outside the closed set is rejected and the session stays
// logged out.
func (s *Session) Login(user model.User) error {
	view, err := InitialView(user.Role)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u := user
	s.user = &u
	s.activeView = view
	return nil
}

// Logout clears the active user and resets to no active view.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.activeView = ""
}

// SetActiveView unconditionally updates the active view while logged in.
// The view id is not validated against the navigation table; visibility
// is advisory UI state, and the authoritative role checks happen on the
// routes that execute operations.  Calling it while logged out is a no-op.
func (s *Session) SetActiveView(view string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return
	}
	s.activeView = view
}

// State reports whether the session is logged in.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return LoggedOut
	}
	return LoggedIn
}

// User returns the active user, with ok=false while logged out.
func (s *Session) User() (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return model.User{}, false
	}
	return *s.user, true
}

// ActiveView returns the active view id, or "" while logged out.
func (s *Session) ActiveView() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeView
}
