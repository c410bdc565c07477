// Package cache provides a typed expiring cache on top of freecache. Time is
// read from an injected clock so expiry can be tested without sleeping.
package cache

import (
	"encoding/json"
	"time"

	"github.com/coocood/freecache"

	"github.com/julianstephens/fittrack/internal/clock"
	"github.com/julianstephens/fittrack/internal/logger"
)

// DefaultSize is the memory reserved for one cache. freecache rounds smaller
// sizes up to 512KB.
const DefaultSize = 1024 * 1024

type clockTimer struct {
	clock clock.Clock
}

func (t clockTimer) Now() uint32 {
	return uint32(t.clock.Now().Unix())
}

// TTL holds JSON-encoded values that expire ttl after they were set.
type TTL[V any] struct {
	cache *freecache.Cache
	ttl   time.Duration
}

// New creates a cache whose entries expire after ttl, rounded down to whole
// seconds with a minimum of one.
func New[V any](ttl time.Duration, clk clock.Clock, sizeBytes int) *TTL[V] {
	if clk == nil {
		clk = clock.Real()
	}
	if sizeBytes <= 0 {
		sizeBytes = DefaultSize
	}
	return &TTL[V]{
		cache: freecache.NewCacheCustomTimer(sizeBytes, clockTimer{clock: clk}),
		ttl:   ttl,
	}
}

func (c *TTL[V]) expireSeconds() int {
	secs := int(c.ttl / time.Second)
	if secs < 1 {
		secs = 1
	}
	return secs
}

// Get returns the value for key if present and not expired.
func (c *TTL[V]) Get(key string) (V, bool) {
	var v V
	data, err := c.cache.Get([]byte(key))
	if err != nil {
		return v, false
	}
	if err := json.Unmarshal(data, &v); err != nil {
		logger.Warn("Dropping unreadable cache entry", "key", key, "error", err)
		c.cache.Del([]byte(key))
		var zero V
		return zero, false
	}
	return v, true
}

func (c *TTL[V]) Set(key string, v V) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.cache.Set([]byte(key), data, c.expireSeconds())
}

// Delete removes key and reports whether it was present.
func (c *TTL[V]) Delete(key string) bool {
	return c.cache.Del([]byte(key))
}

func (c *TTL[V]) Clear() {
	c.cache.Clear()
}

// Len counts stored entries. Expired entries are dropped lazily on Get.
func (c *TTL[V]) Len() int {
	return int(c.cache.EntryCount())
}

// TTL returns the configured lifetime of an entry.
func (c *TTL[V]) TTL() time.Duration {
	return c.ttl
}
