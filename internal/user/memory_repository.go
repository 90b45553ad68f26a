package user

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu    sync.RWMutex
	users map[string]User
}

// NewMemoryRepository builds an in-memory user store for tests and dev mode.
func NewMemoryRepository() Repository {
	return &memoryRepository{users: make(map[string]User)}
}

func (r *memoryRepository) Create(_ context.Context, user User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.PhoneNumber]; exists {
		return ErrConflict
	}
	r.users[user.PhoneNumber] = user
	return nil
}

func (r *memoryRepository) FindByPhone(_ context.Context, phone string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[phone]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

func (r *memoryRepository) FindByPhones(_ context.Context, phones []string) ([]User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var users []User
	for _, phone := range phones {
		if user, ok := r.users[phone]; ok {
			users = append(users, user)
		}
	}
	return users, nil
}

func (r *memoryRepository) UpdateProfileImage(_ context.Context, phone, imageRef string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[phone]
	if !ok {
		return User{}, ErrNotFound
	}
	user.ProfileImage = imageRef
	r.users[phone] = user
	return user, nil
}
