package store

import (
	"context"
	"sync"
)

// MemoryCell is an in-process [Cell] for tests and embedded use.
type MemoryCell struct {
	mu    sync.RWMutex
	value []byte
	set   bool
}

// NewMemoryCell creates an empty in-memory cell.
func NewMemoryCell() *MemoryCell {
	return &MemoryCell{}
}

// Get describes the get operation and its observable behavior.
func (c *MemoryCell) Get(_ context.Context) ([]byte, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.set {
		return nil, false, nil
	}
	out := make([]byte, len(c.value))
	copy(out, c.value)
	return out, true, nil
}

// Set describes the set operation and its observable behavior.
func (c *MemoryCell) Set(_ context.Context, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.value = make([]byte, len(value))
	copy(c.value, value)
	c.set = true
	return nil
}

// MemoryMap is an in-process [Map] for tests and embedded use.
type MemoryMap struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemoryMap creates an empty in-memory map.
func NewMemoryMap() *MemoryMap {
	return &MemoryMap{entries: make(map[string][]byte)}
}

// Get describes the get operation and its observable behavior.
func (m *MemoryMap) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

// Insert describes the insert operation and its observable behavior.
func (m *MemoryMap) Insert(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	m.entries[key] = stored
	return nil
}

// Remove describes the remove operation and its observable behavior.
func (m *MemoryMap) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
	return nil
}

// Contains describes the contains operation and its observable behavior.
func (m *MemoryMap) Contains(_ context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.entries[key]
	return ok, nil
}

// Len describes the len operation and its observable behavior.
func (m *MemoryMap) Len(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return int64(len(m.entries)), nil
}
