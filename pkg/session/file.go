package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// FileStore persists the session as a JSON file. Writes replace the whole
// file, so a concurrent reader sees either the old record or the new one,
// never a torn write worse than "stale/missing session".
type FileStore struct {
	path string
}

// DefaultSessionPath returns the conventional session file location,
// ~/.synapse/session.json.
func DefaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return filepath.Join(home, ".synapse", "session.json")
}

// NewFileStore creates a file-backed session store at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Put writes the session, stamping CreatedAt and creating the parent
// directory if absent.
func (s *FileStore) Put(session *Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	session.CreatedAt = time.Now()
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Get returns the saved session. A missing, unparsable, or expired file
// all yield ErrNoSession; an expired file is deleted as a side effect.
func (s *FileStore) Get() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoSession
		}
		return nil, ErrNoSession
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		// Corrupt record: fail open to "not authenticated".
		return nil, ErrNoSession
	}

	if session.IsExpired() {
		_ = s.Delete()
		return nil, ErrNoSession
	}
	return &session, nil
}

// Delete removes the session file. It is idempotent.
func (s *FileStore) Delete() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete session file: %w", err)
	}
	return nil
}
