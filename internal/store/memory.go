package store

import (
	"context"
	"sync"
)

// MemoryKV is an in-process KV.
type MemoryKV struct {
	mu   sync.Mutex
	vals map[string][]byte
	sets int
}

// NewMemory returns an empty MemoryKV for tests.
func NewMemory() *MemoryKV {
	return &MemoryKV{vals: map[string][]byte{}}
}

func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vals[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemoryKV) Set(_ context.Context, key string, val []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vals[key] = append([]byte(nil), val...)
	m.sets++
	return nil
}

// Sets counts writes (tests assert debounced saves).
func (m *MemoryKV) Sets() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sets
}

func (m *MemoryKV) Close() error { return nil }
