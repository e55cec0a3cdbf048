// Package throttle suppresses repeat notifications for a token within a
// fixed window, keyed by (address, chat, optional thread).
package throttle

import (
	"sync"
	"time"
)

// DefaultWindow is the suppression window after a successful notification.
const DefaultWindow = 5 * time.Minute

// Key identifies one suppression entry. A message outside any thread is a
// different key space than any concrete thread id, including zero.
type Key struct {
	Address  string
	ChatID   int64
	ThreadID int64
	InThread bool
}

// NewKey builds a Key. threadID may be nil for messages outside a thread.
func NewKey(address string, chatID int64, threadID *int64) Key {
	k := Key{Address: address, ChatID: chatID}
	if threadID != nil {
		k.ThreadID = *threadID
		k.InThread = true
	}
	return k
}

// Cache maps keys to the time of the last successful notification.
// Safe for concurrent use. Entries are never evicted; staleness is
// evaluated lazily at lookup time.
type Cache struct {
	mu      sync.RWMutex
	entries map[Key]time.Time
	window  time.Duration
	now     func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithWindow overrides the suppression window.
func WithWindow(d time.Duration) Option {
	return func(c *Cache) {
		c.window = d
	}
}

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// NewCache creates an empty cache with the default window.
func NewCache(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[Key]time.Time),
		window:  DefaultWindow,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ShouldSuppress reports whether a notification for key was recorded within
// the suppression window. Pure read; does not mutate the cache.
func (c *Cache) ShouldSuppress(key Key) bool {
	c.mu.RLock()
	sentAt, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return false
	}
	return c.now().Sub(sentAt) < c.window
}

// Record inserts or overwrites the entry for key with sentAt.
func (c *Cache) Record(key Key, sentAt time.Time) {
	c.mu.Lock()
	c.entries[key] = sentAt
	c.mu.Unlock()
}

// Len returns the number of entries held. The cache never evicts, so this
// grows over process lifetime; exposed for operational visibility.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
