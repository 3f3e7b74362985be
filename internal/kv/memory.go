package kv

import (
	"bytes"
	"context"
)

// MemoryStore is a process-local Store, used in tests.
type MemoryStore struct {
	data map[string][]byte
	// FailWrites makes every Set return this error when non-nil.
	FailWrites error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string][]byte{}}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return bytes.Clone(v), nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	if m.FailWrites != nil {
		return m.FailWrites
	}
	m.data[key] = bytes.Clone(value)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *MemoryStore) Close() error { return nil }
