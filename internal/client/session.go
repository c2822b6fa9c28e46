package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go-recordshop/internal/model"
)

// Session is the locally cached login.
type Session struct {
	User  model.Principal `json:"user"`
	Token string          `json:"token,omitempty"`
}

// SessionStore keeps one session in a JSON file.
type SessionStore struct {
	path string
}

func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path}
}

// DefaultSessionPath is <user config dir>/recordctl/session.json.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "recordctl", "session.json"), nil
}

func (s *SessionStore) Path() string {
	return s.path
}

// Load returns the cached session, or nil when there is none.
// A file that cannot be decoded, or names an unknown role, is removed and treated as no session.
func (s *SessionStore) Load() (*Session, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil || sess.User.Email == "" || !model.IsValidRole(sess.User.Role) {
		_ = os.Remove(s.path)
		return nil, nil
	}
	return &sess, nil
}

func (s *SessionStore) Save(sess Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	return os.WriteFile(s.path, raw, 0o600)
}

// Clear logs out. Clearing an absent session is not an error.
func (s *SessionStore) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
