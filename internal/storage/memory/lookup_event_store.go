package memory

import (
	"context"
	"sync"

	"token-mention-bot/internal/domain"
	"token-mention-bot/internal/storage"
)

// LookupEventStore is an in-memory implementation of storage.LookupEventStore.
type LookupEventStore struct {
	mu     sync.RWMutex
	events []*domain.LookupEvent
}

// NewLookupEventStore creates a new in-memory lookup event store.
func NewLookupEventStore() *LookupEventStore {
	return &LookupEventStore{}
}

// InsertBulk appends a batch of lookup events.
func (s *LookupEventStore) InsertBulk(_ context.Context, events []*domain.LookupEvent) error {
	for _, e := range events {
		if e == nil || e.Address == "" {
			return storage.ErrInvalidInput
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range events {
		eCopy := *e
		s.events = append(s.events, &eCopy)
	}
	return nil
}

// GetByAddress retrieves all events for an address, oldest first.
func (s *LookupEventStore) GetByAddress(_ context.Context, address string) ([]*domain.LookupEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.LookupEvent
	for _, e := range s.events {
		if e.Address != address {
			continue
		}
		eCopy := *e
		result = append(result, &eCopy)
	}
	return result, nil
}

var _ storage.LookupEventStore = (*LookupEventStore)(nil)
