package newscache

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/anazmuhdd/jarvis-acsia/internal/store"
)

// TTL is how long a cached feed stays valid. Expired entries are evicted
// lazily on the read that discovers them; there is no background sweep.
const TTL = 2 * time.Hour

const keyPrefix = "news_cache_"

// Key returns the storage key for a user partition.
func Key(userKey string) string {
	return keyPrefix + userKey
}

// Prefix returns the namespace shared by all cache records, for diagnostics.
func Prefix() string {
	return keyPrefix
}

// Cache is the TTL layer over the raw store. It never propagates storage
// errors: the cache is an optimization, not a source of truth.
type Cache struct {
	kv     store.KV
	now    func() time.Time
	logger *slog.Logger
}

type Option func(*Cache)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Cache) { c.logger = l }
}

func New(kv store.KV, opts ...Option) *Cache {
	c := &Cache{
		kv:     kv,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Read returns the entry for a user key, or absent. A missing, corrupt, or
// expired record all read as absent; expired records are deleted so the next
// read is a plain miss.
func (c *Cache) Read(userKey string) (Entry, bool) {
	raw, ok := c.kv.Get(Key(userKey))
	if !ok {
		return Entry{}, false
	}

	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		c.logger.Warn("discarding unreadable cache record", "key", userKey, "err", err)
		return Entry{}, false
	}

	age := c.now().UnixMilli() - e.CachedAt
	if age > TTL.Milliseconds() {
		if err := c.kv.Delete(Key(userKey)); err != nil {
			c.logger.Warn("evicting expired cache record", "key", userKey, "err", err)
		}
		return Entry{}, false
	}

	return e, true
}

// Write replaces the entry for a user key with a freshly stamped one.
// Persistence failures are swallowed: callers already hold the live data.
func (c *Cache) Write(userKey string, articles []Article, topics []string) {
	e := Entry{
		Articles: articles,
		Topics:   topics,
		CachedAt: c.now().UnixMilli(),
		UserID:   userKey,
	}
	raw, err := json.Marshal(e)
	if err != nil {
		c.logger.Warn("encoding cache record", "key", userKey, "err", err)
		return
	}
	if err := c.kv.Set(Key(userKey), raw); err != nil {
		c.logger.Warn("persisting cache record", "key", userKey, "err", err)
	}
}

// Clear removes the entry for a user key. Clearing an absent key is fine.
func (c *Cache) Clear(userKey string) {
	if err := c.kv.Delete(Key(userKey)); err != nil {
		c.logger.Warn("clearing cache record", "key", userKey, "err", err)
	}
}

// RemainingMinutes reports whole minutes until natural expiry, 0 if the
// entry is absent or already expired. Diagnostic only; never evicts.
func (c *Cache) RemainingMinutes(userKey string) int {
	raw, ok := c.kv.Get(Key(userKey))
	if !ok {
		return 0
	}
	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return 0
	}
	remaining := TTL - time.Duration(c.now().UnixMilli()-e.CachedAt)*time.Millisecond
	if remaining <= 0 {
		return 0
	}
	return int(remaining.Minutes())
}
