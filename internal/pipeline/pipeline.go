// Package pipeline orchestrates mention handling for one inbound message:
// extract → throttle check → resolve → dispatch → record.
package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"token-mention-bot/internal/domain"
	"token-mention-bot/internal/observability"
	"token-mention-bot/internal/provider"
	"token-mention-bot/internal/storage"
	"token-mention-bot/internal/throttle"
)

// MaxMessageAge is the freshness threshold; older messages are discarded.
const MaxMessageAge = 6 * time.Minute

// Message is an inbound chat event, already mapped from the transport.
type Message struct {
	ID          int64
	ChatID      int64
	ThreadID    *int64 // nil when the message is outside any sub-thread
	SenderID    int64
	SenderIsBot bool
	ViaBotID    int64 // bot the message was sent through, 0 if none
	SentAt      time.Time
	Text        string // text or caption
}

// Extractor yields family-tagged candidate addresses found in text.
type Extractor interface {
	ExtractAll(text string) []domain.CandidateMention
}

// Sender delivers a formatted reply to the originating conversation.
// Returns the id of the sent message.
type Sender interface {
	SendReply(ctx context.Context, msg *Message, text string) (int64, error)
}

// Formatter renders token metadata into transport-specific reply text.
type Formatter interface {
	FormatReply(meta *domain.TokenMetadata) string
}

// Options for creating a Pipeline.
type Options struct {
	Extractor Extractor
	Resolvers map[domain.ChainFamily]provider.Resolver
	Cache     *throttle.Cache
	Sender    Sender
	Formatter Formatter

	// Optional sinks, best-effort only.
	MentionLog   storage.MentionLogStore
	LookupEvents storage.LookupEventStore

	// WhitelistedChats gates processing entirely. Empty means nothing is
	// processed (fail-closed).
	WhitelistedChats []int64

	// SelfID is the bot's own identity, used to drop messages forwarded
	// through itself.
	SelfID int64

	Log *zap.Logger

	// Now overrides the time source. Used by tests.
	Now func() time.Time
}

// Pipeline processes inbound messages end-to-end. One invocation per
// message; invocations run concurrently and share only the throttle cache.
type Pipeline struct {
	extractor    Extractor
	resolvers    map[domain.ChainFamily]provider.Resolver
	cache        *throttle.Cache
	sender       Sender
	formatter    Formatter
	mentionLog   storage.MentionLogStore
	lookupEvents storage.LookupEventStore
	whitelist    map[int64]bool
	selfID       int64
	log          *zap.Logger
	now          func() time.Time
}

// New creates a Pipeline.
func New(opts Options) *Pipeline {
	whitelist := make(map[int64]bool, len(opts.WhitelistedChats))
	for _, id := range opts.WhitelistedChats {
		whitelist[id] = true
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Pipeline{
		extractor:    opts.Extractor,
		resolvers:    opts.Resolvers,
		cache:        opts.Cache,
		sender:       opts.Sender,
		formatter:    opts.Formatter,
		mentionLog:   opts.MentionLog,
		lookupEvents: opts.LookupEvents,
		whitelist:    whitelist,
		selfID:       opts.SelfID,
		log:          opts.Log,
		now:          now,
	}
}

// HandleMessage runs the full pipeline for one inbound message. No failure
// inside is fatal: every candidate is processed independently and failures
// are logged, never propagated.
func (p *Pipeline) HandleMessage(ctx context.Context, msg *Message) {
	if !p.passesGates(msg) {
		return
	}

	// Lookup events are flushed as one batch per message.
	var events []*domain.LookupEvent
	for _, cand := range p.extractor.ExtractAll(msg.Text) {
		observability.RecordMentionFound(cand.Family.String())
		p.log.Info("found token mention",
			zap.String("address", cand.Address),
			zap.String("family", cand.Family.String()),
			zap.Int64("chat_id", msg.ChatID),
			zap.Int64("message_id", msg.ID))

		if event := p.processCandidate(ctx, msg, cand.Family, cand.Address); event != nil {
			events = append(events, event)
		}
	}
	p.flushLookupEvents(ctx, events)
}

// passesGates applies the once-per-message checks, each short-circuiting.
func (p *Pipeline) passesGates(msg *Message) bool {
	observability.RecordMessageSeen()

	if p.now().Sub(msg.SentAt) > MaxMessageAge {
		p.log.Debug("message too old, skipping", zap.Int64("message_id", msg.ID))
		observability.RecordMessageGated("age")
		return false
	}

	if !p.whitelist[msg.ChatID] {
		p.log.Debug("chat not whitelisted, skipping", zap.Int64("chat_id", msg.ChatID))
		observability.RecordMessageGated("whitelist")
		return false
	}

	// Our own relayed messages and other bots never trigger lookups.
	if msg.SenderIsBot {
		p.log.Debug("message from a bot, skipping", zap.Int64("message_id", msg.ID))
		observability.RecordMessageGated("bot_sender")
		return false
	}
	if p.selfID != 0 && msg.ViaBotID == p.selfID {
		p.log.Debug("message sent via ourselves, skipping", zap.Int64("message_id", msg.ID))
		observability.RecordMessageGated("via_self")
		return false
	}

	if msg.Text == "" {
		p.log.Debug("message carries no text or caption", zap.Int64("message_id", msg.ID))
		observability.RecordMessageGated("no_text")
		return false
	}

	return true
}

// processCandidate walks one candidate through throttle check, resolution
// and dispatch, returning the lookup event when a resolution was attempted.
// The throttle entry is written only after a successful send, so a failed
// dispatch is not pre-suppressed on the next mention.
func (p *Pipeline) processCandidate(ctx context.Context, msg *Message, family domain.ChainFamily, address string) *domain.LookupEvent {
	key := throttle.NewKey(address, msg.ChatID, msg.ThreadID)
	if p.cache.ShouldSuppress(key) {
		p.log.Info("recently notified, suppressing",
			zap.String("address", address),
			zap.Int64("chat_id", msg.ChatID))
		observability.RecordMentionSuppressed()
		return nil
	}

	resolver, ok := p.resolvers[family]
	if !ok {
		p.log.Warn("no resolver configured for family", zap.String("family", family.String()))
		return nil
	}

	start := p.now()
	meta, err := resolver.Resolve(ctx, address)
	event := p.buildLookupEvent(family, address, meta, err, p.now().Sub(start))
	if err != nil {
		p.log.Warn("failed to resolve token",
			zap.String("address", address),
			zap.String("family", family.String()),
			zap.Error(err))
		return event
	}

	replyID, err := p.sender.SendReply(ctx, msg, p.formatter.FormatReply(meta))
	if err != nil {
		p.log.Warn("failed to send token reply",
			zap.String("address", address),
			zap.Int64("chat_id", msg.ChatID),
			zap.Error(err))
		observability.RecordReplyFailure()
		return event
	}
	observability.RecordReplySent()

	sentAt := p.now()
	p.cache.Record(key, sentAt)
	observability.UpdateThrottleEntries(p.cache.Len())
	p.recordMention(ctx, msg, family, address, meta, replyID, sentAt)
	return event
}

// buildLookupEvent classifies one resolution attempt and records its
// metrics. The caller batches the returned events per message.
func (p *Pipeline) buildLookupEvent(family domain.ChainFamily, address string, meta *domain.TokenMetadata, lookupErr error, elapsed time.Duration) *domain.LookupEvent {
	event := &domain.LookupEvent{
		Address:    address,
		Family:     family,
		Outcome:    domain.LookupOK,
		DurationMs: elapsed.Milliseconds(),
		AtMs:       p.now().UnixMilli(),
	}
	switch {
	case lookupErr == nil:
		event.Chain = meta.Chain
	case provider.IsNotFound(lookupErr):
		event.Outcome = domain.LookupNotFound
	default:
		event.Outcome = domain.LookupError
	}
	observability.RecordLookup(family.String(), event.Outcome.String(), elapsed.Seconds())
	return event
}

// flushLookupEvents appends the message's resolution attempts to the lookup
// event sink in one batch.
func (p *Pipeline) flushLookupEvents(ctx context.Context, events []*domain.LookupEvent) {
	if p.lookupEvents == nil || len(events) == 0 {
		return
	}
	if err := p.lookupEvents.InsertBulk(ctx, events); err != nil {
		p.log.Warn("failed to record lookup events", zap.Int("count", len(events)), zap.Error(err))
	}
}

// recordMention appends the dispatched notification to the mention log.
func (p *Pipeline) recordMention(ctx context.Context, msg *Message, family domain.ChainFamily, address string, meta *domain.TokenMetadata, replyID int64, sentAt time.Time) {
	if p.mentionLog == nil {
		return
	}

	rec := &domain.MentionRecord{
		Address:          address,
		Family:           family,
		Chain:            meta.Chain,
		ChatID:           msg.ChatID,
		ThreadID:         msg.ThreadID,
		TriggerMessageID: msg.ID,
		ReplyMessageID:   replyID,
		Symbol:           meta.Symbol,
		SentAt:           sentAt.UnixMilli(),
	}
	if err := p.mentionLog.Insert(ctx, rec); err != nil {
		p.log.Warn("failed to record mention", zap.String("address", address), zap.Error(err))
	}
}
