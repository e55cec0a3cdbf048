package storage

import (
	"context"

	"token-mention-bot/internal/domain"
)

// MentionLogStore persists successfully dispatched notifications.
// Writes are best-effort from the pipeline's point of view: a store failure
// is logged and never aborts message handling.
type MentionLogStore interface {
	// Insert appends a dispatched notification. The store assigns ID.
	Insert(ctx context.Context, rec *domain.MentionRecord) error

	// GetByChat retrieves the most recent records for a chat, newest first,
	// at most limit entries.
	GetByChat(ctx context.Context, chatID int64, limit int) ([]*domain.MentionRecord, error)

	// GetByAddress retrieves all records for an address, newest first.
	GetByAddress(ctx context.Context, address string) ([]*domain.MentionRecord, error)
}

// LookupEventStore persists provider resolution attempts for health review.
type LookupEventStore interface {
	// InsertBulk appends a batch of lookup events.
	InsertBulk(ctx context.Context, events []*domain.LookupEvent) error

	// GetByAddress retrieves all events for an address, oldest first.
	GetByAddress(ctx context.Context, address string) ([]*domain.LookupEvent, error)
}
