// Package session persists the signed-in user's email, the app's sole
// identity token, under a fixed file path. It stands in for the mobile
// device's key-value storage.
package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Save(email string) error {
	if err := os.WriteFile(s.path, []byte(email+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Load returns the persisted email. A missing file means no active session,
// not an error.
func (s *Store) Load() (string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to load session: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
