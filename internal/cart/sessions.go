package cart

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// ErrInvalidSession reports a session id that is not a UUID. Session
// ids become snapshot file names, so anything else is rejected before
// touching the filesystem.
var ErrInvalidSession = errors.New("invalid cart session id")

// Sessions hands out one Manager per session id, each backed by its
// own snapshot file under dir. Managers live for the process lifetime;
// snapshots have no expiry and survive restarts.
type Sessions struct {
	mu       sync.Mutex
	dir      string
	managers map[string]*Manager
}

// NewSessions creates a session registry storing snapshots under dir.
func NewSessions(dir string) *Sessions {
	return &Sessions{
		dir:      dir,
		managers: make(map[string]*Manager),
	}
}

// New creates a fresh session with an empty cart and returns its id.
func (s *Sessions) New() (string, *Manager, error) {
	id := uuid.New().String()
	m, err := s.Get(id)
	return id, m, err
}

// Get returns the Manager for the session id, creating it on first
// use. The returned error is ErrSnapshotCorrupt when a pre-existing
// snapshot could not be parsed; the Manager is still usable then.
func (s *Sessions) Get(id string) (*Manager, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if m, ok := s.managers[id]; ok {
		return m, nil
	}

	path := filepath.Join(s.dir, fmt.Sprintf("%s.json", id))
	m, err := NewManager(NewFileStore(path))
	s.managers[id] = m
	return m, err
}
