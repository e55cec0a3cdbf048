package domain

// MentionRecord is one successfully dispatched token notification.
// Corresponds to the mention_log table in PostgreSQL.
type MentionRecord struct {
	ID               int64       // assigned by the store
	Address          string      // extracted contract address / mint
	Family           ChainFamily // SOLANA | EVM
	Chain            Chain       // chain the token resolved on
	ChatID           int64       // conversation the mention came from
	ThreadID         *int64      // sub-thread id (nullable)
	TriggerMessageID int64       // message that carried the mention
	ReplyMessageID   int64       // our reply message
	Symbol           string      // resolved ticker symbol
	SentAt           int64       // dispatch timestamp (ms)
}

// LookupOutcome classifies a provider resolution attempt.
type LookupOutcome string

const (
	LookupOK       LookupOutcome = "ok"
	LookupNotFound LookupOutcome = "not_found"
	LookupError    LookupOutcome = "error"
)

// String returns the string representation of LookupOutcome.
func (o LookupOutcome) String() string {
	return string(o)
}

// LookupEvent is one resolution attempt, kept for provider health review.
// Corresponds to the lookup_events table in ClickHouse.
type LookupEvent struct {
	Address    string
	Family     ChainFamily
	Chain      Chain // empty when resolution failed on every chain
	Outcome    LookupOutcome
	DurationMs int64
	AtMs       int64 // attempt timestamp (ms)
}
