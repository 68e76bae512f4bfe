package store

import (
	"context"
	"sync"
)

// memoryKV keeps buckets in a map. Used by tests and --store memory runs.
type memoryKV struct {
	mu      sync.RWMutex
	buckets map[string][]byte
}

// NewMemory returns a Store backed by process memory.
func NewMemory() *Store {
	return New(&memoryKV{buckets: make(map[string][]byte)})
}

func (m *memoryKV) Load(_ context.Context, bucket string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.buckets[bucket]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m *memoryKV) Save(_ context.Context, bucket string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	m.buckets[bucket] = cp
	return nil
}

func (m *memoryKV) Delete(_ context.Context, bucket string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.buckets, bucket)
	return nil
}

func (m *memoryKV) Close() error { return nil }
