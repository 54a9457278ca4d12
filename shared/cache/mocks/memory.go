package mocks

import (
	"context"
	"encoding/json"
	"errors"
	"path"
	"sync"

	"billiard/shared/cache"
)

var ErrMiss = errors.New("cache miss")

var _ cache.RedisCache = (*MemoryCache)(nil)

// MemoryCache is a map backed RedisCache for tests that need real read-after-write behaviour.
type MemoryCache struct {
	mu          sync.Mutex
	values      map[string][]byte
	generations map[string]int64
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		values:      map[string][]byte{},
		generations: map[string]int64{},
	}
}

func (m *MemoryCache) Save(_ context.Context, key string, value any, _ int) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = encoded

	return nil
}

func (m *MemoryCache) Get(_ context.Context, key string, value any) error {
	m.mu.Lock()
	encoded, ok := m.values[key]
	m.mu.Unlock()

	if !ok {
		return ErrMiss
	}

	return json.Unmarshal(encoded, value)
}

func (m *MemoryCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)

	return nil
}

func (m *MemoryCache) Clear(_ context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key := range m.values {
		if matched, _ := path.Match(pattern, key); matched {
			delete(m.values, key)
		}
	}

	return nil
}

func (m *MemoryCache) Generation(_ context.Context, namespace string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.generations[namespace], nil
}

func (m *MemoryCache) BumpGeneration(_ context.Context, namespace string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.generations[namespace]++

	return nil
}

func (m *MemoryCache) SaveIfGeneration(_ context.Context, key string, value any, _ int, namespace string, generation int64) (bool, error) {
	encoded, err := json.Marshal(value)
	if err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.generations[namespace] != generation {
		return false, nil
	}

	m.values[key] = encoded

	return true, nil
}

// Has reports whether key currently holds a value.
func (m *MemoryCache) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.values[key]

	return ok
}
