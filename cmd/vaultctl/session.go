package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

var errNoSession = errors.New("not logged in: run vaultctl login")

// session is the persisted admin session.
type session struct {
	Server    string     `yaml:"server"`
	Token     string     `yaml:"token"`
	ExpiresAt *time.Time `yaml:"expires_at,omitempty"`
}

func (s session) expired(now time.Time) bool {
	return s.ExpiresAt != nil && !now.Before(*s.ExpiresAt)
}

// sessionStore reads and writes the session file.
type sessionStore struct {
	path string
}

func openSessionStore(path string) (*sessionStore, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("locate config dir: %w", err)
		}
		path = filepath.Join(dir, "prompt-vault", "session.yaml")
	}
	return &sessionStore{path: path}, nil
}

func (s *sessionStore) Load() (session, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return session{}, errNoSession
	}
	if err != nil {
		return session{}, fmt.Errorf("read session: %w", err)
	}

	var sess session
	if err := yaml.Unmarshal(data, &sess); err != nil {
		return session{}, fmt.Errorf("parse session %s: %w", s.path, err)
	}
	if sess.Token == "" {
		return session{}, errNoSession
	}
	if sess.expired(time.Now()) {
		return session{}, fmt.Errorf("session expired at %s: run vaultctl login", sess.ExpiresAt.Format(time.RFC3339))
	}
	return sess, nil
}

func (s *sessionStore) Save(sess session) error {
	data, err := yaml.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Clear removes the session file. Clearing a missing session is not an error.
func (s *sessionStore) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
