package clients

import (
	"context"
	"sync"
	"time"
)

type memoryStore struct {
	mu      sync.RWMutex
	records map[int64]Client
}

// NewMemoryStore constructs an in-memory Store for tests and development.
func NewMemoryStore() Store {
	return &memoryStore{records: make(map[int64]Client)}
}

func (s *memoryStore) Upsert(_ context.Context, client Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if prev, ok := s.records[client.TelegramID]; ok {
		client.CreatedAt = prev.CreatedAt
	} else {
		client.CreatedAt = now
	}
	client.UpdatedAt = now
	s.records[client.TelegramID] = client
	return nil
}

func (s *memoryStore) Get(_ context.Context, telegramID int64) (*Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	client, ok := s.records[telegramID]
	if !ok {
		return nil, nil
	}
	return &client, nil
}
