package storage

import (
	"context"
	"sync"
)

type MemoryRepository struct {
	mu      sync.RWMutex
	entries map[string]string
	// FailPut makes every Put return this error, for exercising write failures.
	FailPut error
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{entries: make(map[string]string)}
}

func (r *MemoryRepository) Get(_ context.Context, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	value, ok := r.entries[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (r *MemoryRepository) Put(_ context.Context, entries ...Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailPut != nil {
		return r.FailPut
	}
	for _, e := range entries {
		r.entries[e.Key] = e.Value
	}
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[key]; !ok {
		return ErrNotFound
	}
	delete(r.entries, key)
	return nil
}

func (r *MemoryRepository) Close() error { return nil }
