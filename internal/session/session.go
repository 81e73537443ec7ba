// Package session owns the process-wide authentication state: the bearer
// token and the signed-in user profile. The state is explicit — it is
// constructed once, injected into the API client, and torn down through a
// single Invalidate path driven by the 401 interceptor.
package session

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rohanvaze/brokerdesk/internal/domain"
)

// Fixed storage key names, matching what the web client keeps in local
// storage so both frontends can be pointed at the same conventions.
const (
	keyToken = "token"
	keyUser  = "user"
)

// Session is the in-memory authentication state backed by a durable Store.
type Session struct {
	mu    sync.Mutex
	token string
	user  *domain.User
	store *Store

	// cleared latches after the first Invalidate so a burst of 401s
	// from concurrent in-flight requests tears down exactly once.
	cleared bool
}

// New creates an empty session backed by the given store.
func New(store *Store) *Session {
	return &Session{store: store}
}

// Restore loads a previously persisted session, if any. Returns true when
// a token was found and the session is now authenticated.
func (s *Session) Restore() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok, err := s.store.Get(keyToken)
	if err != nil {
		return false, fmt.Errorf("reading persisted token: %w", err)
	}
	if !ok || token == "" {
		return false, nil
	}

	userJSON, ok, err := s.store.Get(keyUser)
	if err != nil {
		return false, fmt.Errorf("reading persisted user: %w", err)
	}

	s.token = token
	s.cleared = false
	if ok {
		var u domain.User
		if err := json.Unmarshal([]byte(userJSON), &u); err != nil {
			return false, fmt.Errorf("decoding persisted user: %w", err)
		}
		s.user = &u
	}
	return true, nil
}

// Establish stores a fresh token and user profile, both in memory and in
// the durable store.
func (s *Session) Establish(token string, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encoding user: %w", err)
	}
	if err := s.store.Put(keyToken, token); err != nil {
		return fmt.Errorf("persisting token: %w", err)
	}
	if err := s.store.Put(keyUser, string(userJSON)); err != nil {
		return fmt.Errorf("persisting user: %w", err)
	}

	s.token = token
	s.user = &user
	s.cleared = false
	return nil
}

// Token returns the current bearer token, or "" when signed out.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns the signed-in user profile.
func (s *Session) User() (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

// Authenticated reports whether a token is present.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// Role returns the signed-in user's role, or "" when signed out.
func (s *Session) Role() domain.Role {
	u, ok := s.User()
	if !ok {
		return ""
	}
	return u.Role
}

// Invalidate clears the session, in memory and on disk. Only the first
// call after an Establish/Restore performs the teardown; it returns true
// for that call and false for every latecomer.
func (s *Session) Invalidate() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cleared {
		return false
	}
	s.cleared = true
	s.token = ""
	s.user = nil
	// Best-effort: a failed disk wipe still leaves memory clean.
	_ = s.store.Delete(keyToken, keyUser)
	return true
}
