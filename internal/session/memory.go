package session

import (
	"context"
	"sync"
)

type MemoryStore struct {
	token string
	mu    sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (ms *MemoryStore) Get(_ context.Context) (string, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	if ms.token == "" {
		return "", ErrNoCredential
	}
	return ms.token, nil
}

func (ms *MemoryStore) Set(_ context.Context, token string) error {
	if token == "" {
		return ErrEmptyToken
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.token = token
	return nil
}

func (ms *MemoryStore) Clear(_ context.Context) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.token = ""
	return nil
}
