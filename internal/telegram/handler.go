package telegram

import (
	"context"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"token-mention-bot/internal/pipeline"
)

// Handler consumes long-polled updates and feeds message events into the
// mention pipeline. Non-message updates are ignored.
type Handler struct {
	api  *bot.Bot
	pipe *pipeline.Pipeline
	log  *zap.Logger
}

// NewHandler registers a match-all message handler on the bot and returns
// the wrapper. Run must be called to start polling.
func NewHandler(api *bot.Bot, pipe *pipeline.Pipeline, log *zap.Logger) *Handler {
	h := &Handler{api: api, pipe: pipe, log: log}
	api.RegisterHandlerMatchFunc(func(update *models.Update) bool {
		return update.Message != nil
	}, h.onUpdate)
	return h
}

// Run blocks polling for updates until ctx is cancelled.
func (h *Handler) Run(ctx context.Context) {
	h.log.Info("starting telegram long polling")
	h.api.Start(ctx)
	h.log.Info("telegram long polling stopped")
}

func (h *Handler) onUpdate(ctx context.Context, _ *bot.Bot, update *models.Update) {
	msg := mapMessage(update.Message)
	if msg == nil {
		return
	}
	h.pipe.HandleMessage(ctx, msg)
}

// mapMessage converts a transport message into the pipeline's shape. Media
// messages contribute their caption where plain text is absent.
func mapMessage(m *models.Message) *pipeline.Message {
	if m == nil {
		return nil
	}

	out := &pipeline.Message{
		ID:     int64(m.ID),
		ChatID: m.Chat.ID,
		SentAt: time.Unix(int64(m.Date), 0),
		Text:   m.Text,
	}
	if out.Text == "" {
		out.Text = m.Caption
	}
	if m.MessageThreadID != 0 {
		threadID := int64(m.MessageThreadID)
		out.ThreadID = &threadID
	}
	if m.From != nil {
		out.SenderID = m.From.ID
		out.SenderIsBot = m.From.IsBot
	}
	if m.ViaBot != nil {
		out.ViaBotID = m.ViaBot.ID
	}
	return out
}
