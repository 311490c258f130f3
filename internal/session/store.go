package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
)

// Store persists a session as a JSON object of string keys to string values.
// Every Save replaces the whole file; the last write wins.
type Store struct {
	path string
}

// NewStore returns a store backed by the file at path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file
func (s *Store) Path() string {
	return s.path
}

// Load reads the saved session. A missing file is a fresh session.
func (s *Store) Load() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if len(data) == 0 {
		return New(), nil
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("session file %s is not valid JSON", s.path)
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("session file %s must hold a JSON object", s.path)
	}

	snap := make(map[string]string)
	root.ForEach(func(key, value gjson.Result) bool {
		snap[key.String()] = value.String()
		return true
	})

	slog.Debug("Loaded session", slog.String("path", s.path), slog.Int("keys", len(snap)))
	return FromSnapshot(snap), nil
}

// Save writes the session atomically
func (s *Store) Save(sess *Session) error {
	snap, err := sess.Snapshot()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp session file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace session: %w", err)
	}

	slog.Debug("Saved session", slog.String("path", s.path), slog.Int("keys", len(snap)))
	return nil
}

// Update loads the session, applies fn and saves the result.
// Nothing is written when fn fails.
func (s *Store) Update(fn func(*Session) error) (*Session, error) {
	sess, err := s.Load()
	if err != nil {
		return nil, err
	}
	if err := fn(sess); err != nil {
		return nil, err
	}
	if err := s.Save(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Reset forgets everything and returns a fresh session
func (s *Store) Reset() (*Session, error) {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to clear session: %w", err)
	}
	slog.Info("Session cleared", slog.String("path", s.path))
	return New(), nil
}
