package custid

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu      sync.Mutex
	current string
	failing bool
}

// NewMemoryRepository builds an in-memory allocator for tests and dev mode.
func NewMemoryRepository(prefix string) Repository {
	return &memoryRepository{current: Seed(prefix)}
}

func (r *memoryRepository) Next(_ context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	next, err := Increment(r.current)
	if err != nil {
		return "", err
	}
	if r.failing {
		return "", ErrContention
	}
	r.current = next
	return next, nil
}

func (r *memoryRepository) Current(_ context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current, nil
}
