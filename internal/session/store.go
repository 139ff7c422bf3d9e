package session

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"caselink/internal/platform/storage"
	"caselink/pkg/platform/sentinel"
)

// Store is the single source of truth for the current session. Login and
// Logout replace the whole record; accessors are pure projections. Both
// mutations also snapshot the state to tab-session storage so a reload within
// the same session finds it again.
type Store struct {
	mu            sync.RWMutex
	state         snapshot
	storage       storage.Storage
	defaultAvatar string
}

// NewStore builds a Store over the given tab-session storage and recovers any
// snapshot a previous load of this session left behind. A corrupt snapshot is
// discarded rather than surfaced; the user simply starts signed out.
func NewStore(store storage.Storage, defaultAvatar string) *Store {
	s := &Store{storage: store, defaultAvatar: defaultAvatar}

	raw, err := store.Load(sessionKey)
	if err == nil {
		var snap snapshot
		if json.Unmarshal(raw, &snap) == nil {
			s.state = snap
		}
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		// Unreadable storage degrades to a fresh signed-out session.
		_ = store.Delete(sessionKey)
	}
	return s
}

// LoginOption supplies one of the independently optional credential fields.
type LoginOption func(*snapshot)

// WithToken attaches the bearer token.
func WithToken(token string) LoginOption {
	return func(s *snapshot) { s.Token = &token }
}

// WithRoles attaches the granted role names. An empty slice is a valid,
// present credential with no roles.
func WithRoles(roles []string) LoginOption {
	return func(s *snapshot) {
		copied := make([]string, len(roles))
		copy(copied, roles)
		s.Roles = copied
	}
}

// WithExpiry attaches the token expiry as epoch seconds.
func WithExpiry(exp int64) LoginOption {
	return func(s *snapshot) { s.AccessTokenExp = &exp }
}

// Login unconditionally replaces the session with the given identity and
// whatever credential fields the options supply. It cannot fail: persistence
// is best effort and the in-memory record is always updated. An identity with
// no avatar gets the configured default.
func (s *Store) Login(identity Identity, opts ...LoginOption) {
	if identity.Avatar == "" {
		identity.Avatar = s.defaultAvatar
	}

	next := snapshot{
		IsAuthenticated: true,
		User:            &identity,
	}
	for _, opt := range opts {
		opt(&next)
	}

	s.mu.Lock()
	s.state = next
	s.persistLocked()
	s.mu.Unlock()
}

// Logout resets every field to absent.
func (s *Store) Logout() {
	s.mu.Lock()
	s.state = snapshot{}
	s.persistLocked()
	s.mu.Unlock()
}

// Authenticated reports whether the most recent mutation was a Login.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsAuthenticated
}

// Identity returns the stored identity, if present.
func (s *Store) Identity() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.User == nil {
		return Identity{}, false
	}
	return *s.state.User, true
}

// Token returns the stored bearer token, if present.
func (s *Store) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.Token == nil {
		return "", false
	}
	return *s.state.Token, true
}

// Roles returns the stored role names, if present. Present-but-empty is
// distinct from absent.
func (s *Store) Roles() ([]string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.Roles == nil {
		return nil, false
	}
	out := make([]string, len(s.state.Roles))
	copy(out, s.state.Roles)
	return out, true
}

// Expiry returns the token expiry in epoch seconds, if present.
func (s *Store) Expiry() (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.AccessTokenExp == nil {
		return 0, false
	}
	return *s.state.AccessTokenExp, true
}

// Expired reports whether a stored expiry has elapsed at now. A session with
// no expiry recorded is never considered expired; the backend remains the
// authority on rejecting a stale token.
func (s *Store) Expired(now time.Time) bool {
	exp, ok := s.Expiry()
	if !ok {
		return false
	}
	return now.Unix() >= exp
}

// UserLabel returns the caller-identity value for outbound requests: the
// identity's display name or email, or "" when signed out.
func (s *Store) UserLabel() string {
	identity, ok := s.Identity()
	if !ok {
		return ""
	}
	return identity.Label()
}

// persistLocked snapshots current state; callers hold mu.
func (s *Store) persistLocked() {
	raw, err := json.Marshal(s.state)
	if err != nil {
		return
	}
	_ = s.storage.Save(sessionKey, raw)
}
