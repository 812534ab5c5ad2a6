package store

import (
	"context"
	"sync"
)

// Persister is the key-value provider the ledger document is stored in.
type Persister interface {
	// Load returns the value stored under key. found is false when the key
	// has never been written.
	Load(ctx context.Context, key string) (value []byte, found bool, err error)
	// Save replaces the value stored under key.
	Save(ctx context.Context, key string, value []byte) error
}

// MemoryPersister keeps documents in process memory.
type MemoryPersister struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryPersister creates an empty MemoryPersister.
func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{data: make(map[string][]byte)}
}

// Load implements Persister.
func (m *MemoryPersister) Load(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

// Save implements Persister.
func (m *MemoryPersister) Save(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	m.data[key] = v
	return nil
}
