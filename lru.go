package cache

import (
	"container/list"
	"context"
	"strings"
	"sync"
	"time"

	"github.com/bool64/ctxd"
	"github.com/bool64/stats"
)

// Config controls local cache instance.
type Config struct {
	// Logger is an instance of contextualized logger, can be nil.
	Logger ctxd.Logger

	// Stats is metrics collector, can be nil.
	Stats stats.Tracker

	// Name is cache instance name, used in stats and logging.
	Name string

	// MaxItems bounds the count of live entries, default 500.
	//
	// When a write would exceed the bound, the least-recently-used entry is
	// evicted. Expired entries do not count toward the bound and are
	// reclaimed before any live entry is evicted.
	MaxItems int

	// CleanupInterval is delay between two consecutive janitor sweeps of
	// expired entries, default 1m.
	CleanupInterval time.Duration
}

// entry is a cache entry.
type entry struct {
	key string
	val interface{}
	ins time.Time
	exp time.Time
}

func (e *entry) Value() interface{} {
	return e.val
}

func (e *entry) ExpireAt() time.Time {
	return e.exp
}

var (
	_ Backend           = &LRU{}
	_ PrefixInvalidator = &LRU{}
	_ Walker            = &LRU{}
)

// LRU is a bounded in-memory cache backend with entry expiration and
// least-recently-used eviction. Please use NewLRU to create instance.
//
// A single mutex guards the recency sequence, the key index and the
// pending build table together, so operations on one key are linearizable.
type LRU struct {
	mu      sync.Mutex
	lru     *list.List // Front of the list is the most recently used entry.
	items   map[string]*list.Element
	pending map[string]*pendingFetch
	closed  chan struct{}

	config Config
	log    ctxd.Logger
	stat   stats.Tracker
}

// NewLRU creates an instance of local cache with optional configuration.
func NewLRU(cfg ...Config) *LRU {
	config := Config{}

	if len(cfg) >= 1 {
		config = cfg[0]
	}

	if config.MaxItems <= 0 {
		config.MaxItems = DefaultMaxItems
	}

	if config.CleanupInterval == 0 {
		config.CleanupInterval = time.Minute
	}

	c := &LRU{
		lru:     list.New(),
		items:   make(map[string]*list.Element),
		pending: make(map[string]*pendingFetch),
		closed:  make(chan struct{}, 1),
		config:  config,
		log:     config.Logger,
		stat:    config.Stats,
	}

	go c.janitor()

	return c
}

// Read gets value.
//
// Expired entries are treated as absent and removed on access.
func (c *LRU) Read(ctx context.Context, key string) (interface{}, error) {
	if SkipRead(ctx) {
		return nil, ErrNotFound
	}

	now := time.Now()

	c.mu.Lock()
	el, found := c.items[key]

	if found {
		e := el.Value.(*entry)

		if !e.exp.After(now) {
			c.removeElement(el)
			c.mu.Unlock()

			if c.log != nil {
				c.log.Debug(ctx, "cache key expired",
					"name", c.config.Name,
					"key", key)
			}

			if c.stat != nil {
				c.stat.Add(ctx, MetricExpired, 1, "name", c.config.Name)
			}

			return nil, ErrNotFound
		}

		c.lru.MoveToFront(el)
		val := e.val
		c.mu.Unlock()

		c.hit(ctx, key)

		return val, nil
	}
	c.mu.Unlock()

	if c.log != nil {
		c.log.Debug(ctx, "cache miss",
			"name", c.config.Name,
			"key", key)
	}

	if c.stat != nil {
		c.stat.Add(ctx, MetricMiss, 1, "name", c.config.Name)
	}

	return nil, ErrNotFound
}

// Write sets value.
//
// A non-positive ttl means the value is already expired: any previous entry
// is dropped and nothing is stored.
func (c *LRU) Write(ctx context.Context, key string, val interface{}, ttl time.Duration) error {
	if ttl <= 0 {
		c.mu.Lock()
		if el, ok := c.items[key]; ok {
			c.removeElement(el)
		}
		c.mu.Unlock()

		if c.log != nil {
			c.log.Debug(ctx, "skipped write of already expired value",
				"name", c.config.Name,
				"key", key,
				"ttl", ttl)
		}

		return nil
	}

	now := time.Now()

	c.mu.Lock()
	if el, ok := c.items[key]; ok {
		c.removeElement(el)
	}

	c.items[key] = c.lru.PushFront(&entry{key: key, val: val, ins: now, exp: now.Add(ttl)})
	evicted := c.evictOverflow(now)
	c.mu.Unlock()

	if c.log != nil {
		c.log.Debug(ctx, "wrote to cache",
			"name", c.config.Name,
			"key", key,
			"value", val,
			"ttl", ttl)
	}

	if c.stat != nil {
		c.stat.Add(ctx, MetricWrite, 1, "name", c.config.Name)

		if evicted > 0 {
			c.stat.Add(ctx, MetricEvict, float64(evicted), "name", c.config.Name)
		}
	}

	return nil
}

// Delete removes entry unconditionally, deleting a missing key is a no-op.
//
// A pending build registration for the key is discarded too, so a Fetch that
// arrives after Delete starts a fresh build. The in-flight build itself is
// not cancelled and its eventual write may recreate the entry, deletion
// during a build is last-write-wins.
func (c *LRU) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	el, found := c.items[key]
	if found {
		c.removeElement(el)
	}

	delete(c.pending, key)
	c.mu.Unlock()

	if !found {
		return nil
	}

	if c.log != nil {
		c.log.Debug(ctx, "deleted cache entry",
			"name", c.config.Name,
			"key", key)
	}

	if c.stat != nil {
		c.stat.Add(ctx, MetricDelete, 1, "name", c.config.Name)
	}

	return nil
}

// InvalidatePrefix removes every live entry whose key starts with prefix.
//
// Cost is proportional to the number of stored entries, which is acceptable
// at bounded capacity. Atomicity is per affected key, entries written
// concurrently may or may not be included.
func (c *LRU) InvalidatePrefix(ctx context.Context, prefix string) error {
	removed := 0

	c.mu.Lock()
	for k, el := range c.items {
		if strings.HasPrefix(k, prefix) {
			c.removeElement(el)
			removed++
		}
	}
	c.mu.Unlock()

	if c.log != nil {
		c.log.Debug(ctx, "invalidated cache entries by prefix",
			"name", c.config.Name,
			"prefix", prefix,
			"count", removed)
	}

	if c.stat != nil {
		c.stat.Add(ctx, MetricInvalidate, float64(removed), "name", c.config.Name)
	}

	return nil
}

// ExpireAll marks all entries as expired.
func (c *LRU) ExpireAll() {
	now := time.Now()

	c.mu.Lock()
	for _, el := range c.items {
		el.Value.(*entry).exp = now
	}
	c.mu.Unlock()
}

// RemoveAll deletes all entries.
func (c *LRU) RemoveAll() {
	c.mu.Lock()
	c.lru = list.New()
	c.items = make(map[string]*list.Element)
	c.mu.Unlock()
}

// Len returns number of elements in cache, expired entries that were not
// reclaimed yet included.
func (c *LRU) Len() int {
	c.mu.Lock()
	cnt := len(c.items)
	c.mu.Unlock()

	return cnt
}

// Walk walks cached entries from most to least recently used.
//
// The cache is locked for the duration of the walk.
func (c *LRU) Walk(walkFn func(key string, value Entry) error) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0

	for el := c.lru.Front(); el != nil; el = el.Next() {
		e := el.Value.(*entry)

		if err := walkFn(e.key, e); err != nil {
			return n, err
		}

		n++
	}

	return n, nil
}

// Close stops background maintenance.
func (c *LRU) Close() {
	c.closed <- struct{}{}
}

// hit reports a served cache value, every read path that returns a stored
// value goes through it so concurrent hits are not undercounted.
func (c *LRU) hit(ctx context.Context, key string) {
	if c.log != nil {
		c.log.Debug(ctx, "cache hit",
			"name", c.config.Name,
			"key", key)
	}

	if c.stat != nil {
		c.stat.Add(ctx, MetricHit, 1, "name", c.config.Name)
	}
}

// removeElement unlinks entry from both index and recency sequence.
// Caller must hold mu.
func (c *LRU) removeElement(el *list.Element) {
	delete(c.items, el.Value.(*entry).key)
	c.lru.Remove(el)
}

// evictOverflow restores the capacity bound after a write. Caller must hold mu.
//
// Expired entries are reclaimed first since they do not count as live, then
// the least-recently-used tail of the list is trimmed. Entries with equal
// recency keep list order, so the oldest inserted is evicted first.
func (c *LRU) evictOverflow(now time.Time) int {
	if len(c.items) <= c.config.MaxItems {
		return 0
	}

	for _, el := range c.items {
		if !el.Value.(*entry).exp.After(now) {
			c.removeElement(el)
		}
	}

	evicted := 0

	for len(c.items) > c.config.MaxItems {
		el := c.lru.Back()
		if el == nil {
			break
		}

		c.removeElement(el)
		evicted++
	}

	return evicted
}

func (c *LRU) janitor() {
	for {
		select {
		case <-time.After(c.config.CleanupInterval):
			c.clearExpired()
		case <-c.closed:
			return
		}
	}
}

func (c *LRU) clearExpired() {
	now := time.Now()

	c.mu.Lock()
	for _, el := range c.items {
		if !el.Value.(*entry).exp.After(now) {
			c.removeElement(el)
		}
	}
	count := len(c.items)
	c.mu.Unlock()

	if c.log != nil {
		c.log.Debug(context.Background(), "cleared expired cache items",
			"name", c.config.Name,
			"count", count)
	}

	if c.stat != nil {
		c.stat.Set(context.Background(), MetricItems, float64(count), "name", c.config.Name)
	}
}
