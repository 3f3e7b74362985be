// Package kv is the flat key-value store application state is persisted in.
package kv

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when a key has never been written.
var ErrNotFound = errors.New("key not found")

// Store persists opaque values by key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Backend    string
	DataDir    string
	SQLitePath string
}

// Open returns the store selected by opts.Backend.
func Open(opts Options) (Store, error) {
	switch opts.Backend {
	case BackendFile, "":
		return NewFileStore(opts.DataDir)
	case BackendSQLite:
		return NewSQLiteStore(opts.SQLitePath)
	case BackendMemory:
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q (want file or sqlite)", opts.Backend)
}
