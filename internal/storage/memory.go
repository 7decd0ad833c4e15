package storage

import (
	"context"
	"sync"
)

// Memory is an in-process KV. Values do not survive the process; it backs
// tests and the "memory" driver.
type Memory struct {
	mu     sync.RWMutex
	values map[string][]byte
	puts   int
}

// NewMemory returns an empty in-process KV.
func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

// Get implements KV.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	if err := ValidateKey(key); err != nil {
		return nil, false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return cloneBytes(v), ok, nil
}

// Put implements KV.
func (m *Memory) Put(_ context.Context, key string, value []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = cloneBytes(value)
	m.puts++
	return nil
}

// Puts reports how many writes have been made.
func (m *Memory) Puts() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.puts
}

// Close implements KV.
func (m *Memory) Close() error { return nil }
