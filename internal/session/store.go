// Package session owns the client session identity: a single durable slot
// holding the identifier that correlates this client's activity with
// server-side state. The slot is read-then-write, never read-modify-write;
// last write wins.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"eventually/internal/logging"

	"github.com/google/uuid"
)

// Store persists the session identifier to a single file and caches it
// in memory. After Set, Get observes the new value without re-reading disk.
type Store struct {
	path string

	mu     sync.RWMutex
	cached string
	loaded bool
}

// NewStore creates a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// NewID generates a fresh UUID-v4 session identifier. Never empty.
func NewID() string {
	return uuid.NewString()
}

// Get returns the stored session id, reading the file only on first use.
func (s *Store) Get() (string, bool) {
	s.mu.RLock()
	if s.loaded {
		id := s.cached
		s.mu.RUnlock()
		return id, id != ""
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.cached, s.cached != ""
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		// Absent file means no session yet.
		s.cached = ""
		s.loaded = true
		return "", false
	}

	id := strings.TrimSpace(string(data))
	s.cached = id
	s.loaded = true
	logging.SessionDebug("loaded session id from %s", s.path)
	return id, id != ""
}

// Set writes the id durably and to the in-memory cache.
func (s *Store) Set(id string) error {
	if id == "" {
		return fmt.Errorf("session id must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(id+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to persist session id: %w", err)
	}

	s.cached = id
	s.loaded = true
	logging.SessionInfo("session id set: %s", id)
	return nil
}

// Clear removes the stored id. Only called on explicit user request,
// never as part of normal navigation.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear session id: %w", err)
	}

	s.cached = ""
	s.loaded = true
	logging.SessionInfo("session id cleared")
	return nil
}
