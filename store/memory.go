package store

import (
	"context"
	"slices"

	"github.com/maypok86/otter/v2"
)

// memoryCapacity bounds the in-memory store; the dashboard uses a handful of keys
const memoryCapacity = 10_000

// Memory keeps values in process memory
type Memory struct {
	cache *otter.Cache[string, []byte]
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{
		cache: otter.Must(&otter.Options[string, []byte]{
			MaximumSize: memoryCapacity,
		}),
	}
}

// Get returns a copy of the value stored under key
func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.cache.GetIfPresent(key)
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(v), nil
}

// Set stores a copy of value under key
func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.cache.Set(key, slices.Clone(value))
	return nil
}

// Delete removes key; missing keys are ignored
func (m *Memory) Delete(_ context.Context, key string) error {
	m.cache.Invalidate(key)
	return nil
}

// Keys returns every stored key in sorted order
func (m *Memory) Keys(_ context.Context) ([]string, error) {
	keys := make([]string, 0, m.cache.EstimatedSize())
	for k := range m.cache.All() {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}

// Close drops all values
func (m *Memory) Close() error {
	m.cache.InvalidateAll()
	return nil
}
