package telegram

import (
	"testing"
	"time"

	"github.com/go-telegram/bot/models"
)

func TestMapMessage(t *testing.T) {
	m := &models.Message{
		ID:              41,
		Date:            1700000000,
		Chat:            models.Chat{ID: -1001234},
		MessageThreadID: 7,
		From:            &models.User{ID: 42, IsBot: false},
		Text:            "check " + testMint,
	}

	got := mapMessage(m)
	if got == nil {
		t.Fatal("expected a mapped message")
	}
	if got.ID != 41 || got.ChatID != -1001234 || got.SenderID != 42 {
		t.Errorf("unexpected identity fields: %+v", got)
	}
	if got.ThreadID == nil || *got.ThreadID != 7 {
		t.Errorf("thread id not mapped: %+v", got.ThreadID)
	}
	if !got.SentAt.Equal(time.Unix(1700000000, 0)) {
		t.Errorf("unexpected sent time %v", got.SentAt)
	}
	if got.Text != "check "+testMint {
		t.Errorf("unexpected text %q", got.Text)
	}
}

func TestMapMessage_CaptionFallback(t *testing.T) {
	m := &models.Message{
		ID:      42,
		Chat:    models.Chat{ID: 1},
		Caption: "photo of " + testMint,
	}

	got := mapMessage(m)
	if got.Text != "photo of "+testMint {
		t.Errorf("caption must stand in for absent text, got %q", got.Text)
	}
}

func TestMapMessage_NoThread(t *testing.T) {
	m := &models.Message{ID: 43, Chat: models.Chat{ID: 1}, Text: "x"}

	got := mapMessage(m)
	if got.ThreadID != nil {
		t.Errorf("messages outside a thread must map to a nil thread id, got %v", *got.ThreadID)
	}
}

func TestMapMessage_ViaBot(t *testing.T) {
	m := &models.Message{
		ID:     44,
		Chat:   models.Chat{ID: 1},
		From:   &models.User{ID: 42, IsBot: true},
		ViaBot: &models.User{ID: 999, IsBot: true},
		Text:   "x",
	}

	got := mapMessage(m)
	if !got.SenderIsBot {
		t.Error("bot sender flag not mapped")
	}
	if got.ViaBotID != 999 {
		t.Errorf("via-bot id not mapped, got %d", got.ViaBotID)
	}
}

func TestMapMessage_Nil(t *testing.T) {
	if mapMessage(nil) != nil {
		t.Error("nil message must map to nil")
	}
}
