package kv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

var validKey = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// FileStore keeps one file per key under a base directory.
type FileStore struct {
	base string
}

// NewFileStore creates the base directory if needed.
func NewFileStore(base string) (*FileStore, error) {
	if base == "" {
		return nil, fmt.Errorf("storage error: empty data directory")
	}
	if err := os.MkdirAll(base, 0o700); err != nil {
		return nil, fmt.Errorf("storage error creating %s: %w", base, err)
	}
	return &FileStore{base: base}, nil
}

func (s *FileStore) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("storage error: invalid key %q", key)
	}
	return filepath.Join(s.base, key+".json"), nil
}

// Get reads the value stored under key.
func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage error reading %s: %w", path, err)
	}
	return data, nil
}

// Set atomically replaces the value stored under key.
func (s *FileStore) Set(_ context.Context, key string, value []byte) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	// Atomic write: write to temp file then rename.
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, value, 0o600); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *FileStore) Delete(_ context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage error removing %s: %w", path, err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }
