package memory

import (
	"context"
	"errors"
	"testing"

	"token-mention-bot/internal/domain"
	"token-mention-bot/internal/storage"
)

func TestMentionLogStore_InsertAssignsIDs(t *testing.T) {
	store := NewMentionLogStore()
	ctx := context.Background()

	a := &domain.MentionRecord{Address: "mint1", Family: domain.FamilySolana, Chain: domain.ChainSolana, ChatID: 100, SentAt: 1}
	b := &domain.MentionRecord{Address: "mint2", Family: domain.FamilySolana, Chain: domain.ChainSolana, ChatID: 100, SentAt: 2}

	if err := store.Insert(ctx, a); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := store.Insert(ctx, b); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	if a.ID == 0 || b.ID == 0 || a.ID == b.ID {
		t.Errorf("expected distinct assigned ids, got %d and %d", a.ID, b.ID)
	}
}

func TestMentionLogStore_InvalidInput(t *testing.T) {
	store := NewMentionLogStore()
	ctx := context.Background()

	if err := store.Insert(ctx, nil); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("nil record: got %v, want ErrInvalidInput", err)
	}
	if err := store.Insert(ctx, &domain.MentionRecord{}); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("empty address: got %v, want ErrInvalidInput", err)
	}
}

func TestMentionLogStore_GetByChat(t *testing.T) {
	store := NewMentionLogStore()
	ctx := context.Background()

	for i, addr := range []string{"mint1", "mint2", "mint3"} {
		rec := &domain.MentionRecord{Address: addr, ChatID: 100, SentAt: int64(i)}
		if err := store.Insert(ctx, rec); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}
	other := &domain.MentionRecord{Address: "mint4", ChatID: 200, SentAt: 10}
	if err := store.Insert(ctx, other); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := store.GetByChat(ctx, 100, 2)
	if err != nil {
		t.Fatalf("GetByChat failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].Address != "mint3" || got[1].Address != "mint2" {
		t.Errorf("expected newest first, got [%s %s]", got[0].Address, got[1].Address)
	}
}

func TestMentionLogStore_GetByAddress(t *testing.T) {
	store := NewMentionLogStore()
	ctx := context.Background()

	thread := int64(7)
	first := &domain.MentionRecord{Address: "mint1", ChatID: 100, SentAt: 1}
	second := &domain.MentionRecord{Address: "mint1", ChatID: 200, ThreadID: &thread, SentAt: 2}
	if err := store.Insert(ctx, first); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := store.Insert(ctx, second); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := store.GetByAddress(ctx, "mint1")
	if err != nil {
		t.Fatalf("GetByAddress failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].ChatID != 200 || got[0].ThreadID == nil || *got[0].ThreadID != 7 {
		t.Errorf("newest record mismatch: %+v", got[0])
	}
}

func TestMentionLogStore_ReturnsCopies(t *testing.T) {
	store := NewMentionLogStore()
	ctx := context.Background()

	rec := &domain.MentionRecord{Address: "mint1", ChatID: 100, Symbol: "TKN", SentAt: 1}
	if err := store.Insert(ctx, rec); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := store.GetByAddress(ctx, "mint1")
	if err != nil {
		t.Fatalf("GetByAddress failed: %v", err)
	}
	got[0].Symbol = "MUTATED"

	again, _ := store.GetByAddress(ctx, "mint1")
	if again[0].Symbol != "TKN" {
		t.Error("store must not expose internal records to mutation")
	}
}
