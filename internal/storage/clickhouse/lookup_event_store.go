package clickhouse

import (
	"context"
	"fmt"

	"token-mention-bot/internal/domain"
	"token-mention-bot/internal/storage"
)

// LookupEventStore implements storage.LookupEventStore using ClickHouse.
type LookupEventStore struct {
	conn *Conn
}

// NewLookupEventStore creates a new LookupEventStore.
func NewLookupEventStore(conn *Conn) *LookupEventStore {
	return &LookupEventStore{conn: conn}
}

// Compile-time interface check.
var _ storage.LookupEventStore = (*LookupEventStore)(nil)

// InsertBulk appends a batch of lookup events.
func (s *LookupEventStore) InsertBulk(ctx context.Context, events []*domain.LookupEvent) error {
	if len(events) == 0 {
		return nil
	}
	for _, e := range events {
		if e == nil || e.Address == "" {
			return storage.ErrInvalidInput
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO lookup_events (
			address, family, chain, outcome, duration_ms, at_ms
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, e := range events {
		err = batch.Append(
			e.Address, e.Family.String(), e.Chain.String(),
			string(e.Outcome), uint32(e.DurationMs), uint64(e.AtMs),
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

// GetByAddress retrieves all events for an address, oldest first.
func (s *LookupEventStore) GetByAddress(ctx context.Context, address string) ([]*domain.LookupEvent, error) {
	query := `
		SELECT address, family, chain, outcome, duration_ms, at_ms
		FROM lookup_events
		WHERE address = ?
		ORDER BY at_ms ASC
	`

	rows, err := s.conn.Query(ctx, query, address)
	if err != nil {
		return nil, fmt.Errorf("query lookup events: %w", err)
	}
	defer rows.Close()

	var events []*domain.LookupEvent
	for rows.Next() {
		var (
			e          domain.LookupEvent
			family     string
			chain      string
			outcome    string
			durationMs uint32
			atMs       uint64
		)
		if err := rows.Scan(&e.Address, &family, &chain, &outcome, &durationMs, &atMs); err != nil {
			return nil, fmt.Errorf("scan lookup event: %w", err)
		}
		e.Family = domain.ChainFamily(family)
		e.Chain = domain.Chain(chain)
		e.Outcome = domain.LookupOutcome(outcome)
		e.DurationMs = int64(durationMs)
		e.AtMs = int64(atMs)
		events = append(events, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lookup events: %w", err)
	}
	return events, nil
}
