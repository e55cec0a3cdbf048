package memory

import (
	"context"
	"sync"

	"token-mention-bot/internal/domain"
	"token-mention-bot/internal/storage"
)

// MentionLogStore is an in-memory implementation of storage.MentionLogStore.
type MentionLogStore struct {
	mu      sync.RWMutex
	records []*domain.MentionRecord
	nextID  int64
}

// NewMentionLogStore creates a new in-memory mention log.
func NewMentionLogStore() *MentionLogStore {
	return &MentionLogStore{nextID: 1}
}

// Insert appends a dispatched notification. The store assigns ID.
func (s *MentionLogStore) Insert(_ context.Context, rec *domain.MentionRecord) error {
	if rec == nil || rec.Address == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	recCopy := *rec
	recCopy.ID = s.nextID
	s.nextID++
	s.records = append(s.records, &recCopy)
	rec.ID = recCopy.ID
	return nil
}

// GetByChat retrieves the most recent records for a chat, newest first.
func (s *MentionLogStore) GetByChat(_ context.Context, chatID int64, limit int) ([]*domain.MentionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.MentionRecord
	for i := len(s.records) - 1; i >= 0; i-- {
		if s.records[i].ChatID != chatID {
			continue
		}
		recCopy := *s.records[i]
		result = append(result, &recCopy)
		if limit > 0 && len(result) >= limit {
			break
		}
	}
	return result, nil
}

// GetByAddress retrieves all records for an address, newest first.
func (s *MentionLogStore) GetByAddress(_ context.Context, address string) ([]*domain.MentionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.MentionRecord
	for i := len(s.records) - 1; i >= 0; i-- {
		if s.records[i].Address != address {
			continue
		}
		recCopy := *s.records[i]
		result = append(result, &recCopy)
	}
	return result, nil
}

var _ storage.MentionLogStore = (*MentionLogStore)(nil)
