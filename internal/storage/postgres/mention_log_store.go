package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"token-mention-bot/internal/domain"
	"token-mention-bot/internal/storage"
)

// MentionLogStore implements storage.MentionLogStore using PostgreSQL.
type MentionLogStore struct {
	pool *Pool
}

// NewMentionLogStore creates a new MentionLogStore.
func NewMentionLogStore(pool *Pool) *MentionLogStore {
	return &MentionLogStore{pool: pool}
}

// Compile-time interface check.
var _ storage.MentionLogStore = (*MentionLogStore)(nil)

// Insert appends a dispatched notification. The store assigns ID.
func (s *MentionLogStore) Insert(ctx context.Context, rec *domain.MentionRecord) error {
	if rec == nil || rec.Address == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO mention_log (
			address, family, chain, chat_id, thread_id,
			trigger_message_id, reply_message_id, symbol, sent_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	err := s.pool.QueryRow(ctx, query,
		rec.Address,
		rec.Family.String(),
		rec.Chain.String(),
		rec.ChatID,
		rec.ThreadID,
		rec.TriggerMessageID,
		rec.ReplyMessageID,
		rec.Symbol,
		rec.SentAt,
	).Scan(&rec.ID)
	if err != nil {
		return fmt.Errorf("insert mention record: %w", err)
	}
	return nil
}

// GetByChat retrieves the most recent records for a chat, newest first.
func (s *MentionLogStore) GetByChat(ctx context.Context, chatID int64, limit int) ([]*domain.MentionRecord, error) {
	query := `
		SELECT id, address, family, chain, chat_id, thread_id,
		       trigger_message_id, reply_message_id, symbol, sent_at
		FROM mention_log
		WHERE chat_id = $1
		ORDER BY sent_at DESC, id DESC
	`
	args := []any{chatID}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query mentions by chat: %w", err)
	}
	defer rows.Close()

	return scanMentionRecords(rows)
}

// GetByAddress retrieves all records for an address, newest first.
func (s *MentionLogStore) GetByAddress(ctx context.Context, address string) ([]*domain.MentionRecord, error) {
	query := `
		SELECT id, address, family, chain, chat_id, thread_id,
		       trigger_message_id, reply_message_id, symbol, sent_at
		FROM mention_log
		WHERE address = $1
		ORDER BY sent_at DESC, id DESC
	`

	rows, err := s.pool.Query(ctx, query, address)
	if err != nil {
		return nil, fmt.Errorf("query mentions by address: %w", err)
	}
	defer rows.Close()

	return scanMentionRecords(rows)
}

// scanMentionRecords scans all rows into MentionRecords.
func scanMentionRecords(rows pgx.Rows) ([]*domain.MentionRecord, error) {
	var records []*domain.MentionRecord

	for rows.Next() {
		var (
			rec    domain.MentionRecord
			family string
			chain  string
		)
		err := rows.Scan(
			&rec.ID,
			&rec.Address,
			&family,
			&chain,
			&rec.ChatID,
			&rec.ThreadID,
			&rec.TriggerMessageID,
			&rec.ReplyMessageID,
			&rec.Symbol,
			&rec.SentAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan mention record: %w", err)
		}
		rec.Family = domain.ChainFamily(family)
		rec.Chain = domain.Chain(chain)
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mention records: %w", err)
	}
	return records, nil
}
