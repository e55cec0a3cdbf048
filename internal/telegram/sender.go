package telegram

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"token-mention-bot/internal/pipeline"
)

// Sender posts formatted token summaries as silent replies to the message
// that mentioned the token.
type Sender struct {
	api *bot.Bot
}

var _ pipeline.Sender = (*Sender)(nil)

// NewSender creates a Sender over an initialized bot client.
func NewSender(api *bot.Bot) *Sender {
	return &Sender{api: api}
}

// SendReply delivers text as a MarkdownV2 reply and returns the id of the
// sent message. Link previews are disabled so the reply stays compact.
func (s *Sender) SendReply(ctx context.Context, msg *pipeline.Message, text string) (int64, error) {
	params := &bot.SendMessageParams{
		ChatID:              msg.ChatID,
		Text:                text,
		ParseMode:           models.ParseModeMarkdown,
		DisableNotification: true,
		LinkPreviewOptions:  &models.LinkPreviewOptions{IsDisabled: bot.True()},
		ReplyParameters:     &models.ReplyParameters{MessageID: int(msg.ID)},
	}
	if msg.ThreadID != nil {
		params.MessageThreadID = int(*msg.ThreadID)
	}

	sent, err := s.api.SendMessage(ctx, params)
	if err != nil {
		return 0, fmt.Errorf("send reply to chat %d: %w", msg.ChatID, err)
	}
	return int64(sent.ID), nil
}
