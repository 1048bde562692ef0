// Package localstore is a file-backed string key/value store, the local
// persistence medium behind the autosave bridge. The whole store is a single
// JSON document; every Set rewrites it. Access is serialized by the single
// event-driven caller, so the store carries no locking of its own.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Store persists string keys and values in one JSON file.
type Store struct {
	path string
}

// New creates a store rooted at path, creating the parent directory when
// missing. The backing file itself is created lazily on first Set.
func New(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("localstore: path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("localstore: mkdir %s: %w", dir, err)
		}
	}
	return &Store{path: path}, nil
}

// DefaultPath returns the conventional store location under the user config
// directory.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("localstore: resolve config dir: %w", err)
	}
	return filepath.Join(base, "candidateform", "storage.json"), nil
}

// Path reports the backing file location.
func (s *Store) Path() string {
	return s.path
}

// Get returns the value stored under key. The second return reports presence:
// a missing file or key is not an error, while an unreadable or corrupted
// store is.
func (s *Store) Get(key string) (string, bool, error) {
	entries, err := s.read()
	if err != nil {
		return "", false, err
	}
	value, ok := entries[key]
	return value, ok, nil
}

// Set writes the value under key, rewriting the backing file.
func (s *Store) Set(key, value string) error {
	entries, err := s.read()
	if err != nil {
		// A corrupted store should not wedge writes forever; start over.
		entries = map[string]string{}
	}
	entries[key] = value

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("localstore: encode: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("localstore: write %s: %w", s.path, err)
	}
	return nil
}

// Delete removes a key, rewriting the backing file when the key existed.
func (s *Store) Delete(key string) error {
	entries, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := entries[key]; !ok {
		return nil
	}
	delete(entries, key)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("localstore: encode: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("localstore: write %s: %w", s.path, err)
	}
	return nil
}

func (s *Store) read() (map[string]string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("localstore: read %s: %w", s.path, err)
	}
	entries := map[string]string{}
	if len(raw) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("localstore: decode %s: %w", s.path, err)
	}
	return entries, nil
}
