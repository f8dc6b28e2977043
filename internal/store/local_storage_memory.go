package store

import (
	"context"
	"sync"
)

type memoryLocalStorage struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemoryLocalStorage returns a LocalStorage that lives only as long as
// the process.
func NewMemoryLocalStorage() LocalStorage {
	return &memoryLocalStorage{items: make(map[string]string)}
}

func (s *memoryLocalStorage) GetItem(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.items[key]
	return value, ok, nil
}

func (s *memoryLocalStorage) SetItem(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[key] = value
	return nil
}

func (s *memoryLocalStorage) RemoveItem(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		delete(s.items, key)
	}
	return nil
}

func (s *memoryLocalStorage) Close() error {
	return nil
}
