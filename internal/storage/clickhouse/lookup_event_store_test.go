package clickhouse_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"token-mention-bot/internal/domain"
	"token-mention-bot/internal/storage"
	"token-mention-bot/internal/storage/clickhouse"
)

func TestLookupEventStore_InsertBulkAndGet(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := clickhouse.NewLookupEventStore(conn)
	ctx := context.Background()

	events := []*domain.LookupEvent{
		{Address: "0xabc", Family: domain.FamilyEVM, Chain: domain.ChainBSC, Outcome: domain.LookupNotFound, DurationMs: 130, AtMs: 1700000000000},
		{Address: "0xabc", Family: domain.FamilyEVM, Chain: domain.ChainBase, Outcome: domain.LookupOK, DurationMs: 90, AtMs: 1700000000500},
		{Address: "mint", Family: domain.FamilySolana, Chain: domain.ChainSolana, Outcome: domain.LookupOK, DurationMs: 60, AtMs: 1700000001000},
	}
	require.NoError(t, store.InsertBulk(ctx, events))

	got, err := store.GetByAddress(ctx, "0xabc")
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Oldest first
	require.Equal(t, domain.LookupNotFound, got[0].Outcome)
	require.Equal(t, domain.ChainBSC, got[0].Chain)
	require.Equal(t, int64(130), got[0].DurationMs)
	require.Equal(t, domain.LookupOK, got[1].Outcome)
	require.Equal(t, domain.ChainBase, got[1].Chain)
}

func TestLookupEventStore_EmptyBatch(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := clickhouse.NewLookupEventStore(conn)
	require.NoError(t, store.InsertBulk(context.Background(), nil))
}

func TestLookupEventStore_InvalidInput(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := clickhouse.NewLookupEventStore(conn)
	err := store.InsertBulk(context.Background(), []*domain.LookupEvent{{}})
	require.ErrorIs(t, err, storage.ErrInvalidInput)
}
