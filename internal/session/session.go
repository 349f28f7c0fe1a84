// Package session owns the persisted login state for the news-agent TUI.
// The store is the single source of truth for "who is logged in": the API
// client reads the token through it on every request so a forced logout is
// visible to the next outgoing call immediately.
package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// authFile is the on-disk name of the auth record, matching the browser
// client's "news-agent-auth" storage namespace.
const authFile = "news-agent-auth.json"

// User identifies the logged-in account.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// record is the serialized shape of the store.
type record struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Store holds the current credential and user identity. An empty token
// means unauthenticated; there is no third state.
type Store struct {
	mu    sync.Mutex
	path  string
	token string
	user  *User
}

// NewStore creates a store that persists to the given file path. The store
// starts empty; call Load to rehydrate a previous session.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the auth record location under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "news-tui", authFile), nil
}

// Load rehydrates the session from disk. A missing file is not an error:
// the store simply stays unauthenticated.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	s.token = r.Token
	s.user = r.User
	return nil
}

// SetAuth replaces the current session unconditionally and persists it.
// The token is not validated; the backend is the authority on that.
func (s *Store) SetAuth(token string, user User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	u := user
	s.user = &u
	return s.save()
}

// Logout clears the token and user and persists the empty record. It
// reports whether a credential was actually cleared, so the caller can
// trigger its navigation side effect exactly once. Navigation itself is
// the caller's job, not the store's.
func (s *Store) Logout() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" && s.user == nil {
		return false, nil
	}
	s.token = ""
	s.user = nil
	return true, s.save()
}

// Token returns the current bearer token, or "" when unauthenticated.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns a copy of the logged-in user, or nil.
func (s *Store) User() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// IsAuthenticated reports whether a non-empty token is held.
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

func (s *Store) save() error {
	data, err := json.MarshalIndent(record{Token: s.token, User: s.user}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}
