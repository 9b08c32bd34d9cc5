// Package session persists the operator's role selection and cached chart
// series between console runs.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fd1az/trade-console/internal/catalog"
)

// Role is the operator's access role.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStore Role = "store"
)

// Session is the persisted operator session.
type Session struct {
	Role      Role            `json:"role"`
	StoreID   catalog.StoreID `json:"storeId,omitempty"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// IsAdmin reports whether the session has the admin role.
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// Store persists sessions to a JSON file.
//
// A flat file is deliberate here: the session is a single small record owned
// by one local process, so a database would add nothing but a dependency.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a session store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the persisted session. A missing file yields the default
// admin session rather than an error.
func (s *Store) Load() (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Session{Role: RoleAdmin}, nil
		}
		return Session{}, fmt.Errorf("session: read %s: %w", s.path, err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		// Corrupt file: start over instead of wedging the console.
		return Session{Role: RoleAdmin}, nil
	}

	if sess.Role != RoleAdmin && sess.Role != RoleStore {
		sess.Role = RoleAdmin
	}
	return sess, nil
}

// Save persists the session, creating parent directories as needed.
func (s *Store) Save(sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess.UpdatedAt = time.Now()

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("session: marshal: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("session: mkdir %s: %w", dir, err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("session: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("session: rename: %w", err)
	}
	return nil
}

// Clear removes the persisted session.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("session: remove %s: %w", s.path, err)
	}
	return nil
}
