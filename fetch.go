package cache

import (
	"context"
	"fmt"
	"time"
)

// pendingFetch is an in-flight build shared by concurrent Fetch callers.
//
// Fields are written once before done is closed.
type pendingFetch struct {
	done    chan struct{}
	val     interface{}
	err     error
	settled bool
}

// Fetch returns the cached value for key, or builds, stores and returns it.
//
// Build is locked per key: under concurrent callers requesting the same
// missing key the build function runs exactly once and every caller
// receives its outcome. A failed build is not cached and does not prevent
// the next call from retrying.
//
// Fetch itself does not bound build duration, a build that never settles
// keeps all attached callers waiting. Wrap the build with a deadline when
// bounded latency is required.
func (c *LRU) Fetch(ctx context.Context, key string, ttl time.Duration, build func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	val, err := c.Read(ctx, key)
	if err == nil {
		return val, nil
	}

	c.mu.Lock()

	// Re-check under lock, another caller may have stored the value between
	// the miss and this point.
	if el, ok := c.items[key]; ok && !SkipRead(ctx) {
		e := el.Value.(*entry)

		if e.exp.After(time.Now()) {
			c.lru.MoveToFront(el)
			val := e.val
			c.mu.Unlock()

			c.hit(ctx, key)

			return val, nil
		}
	}

	if p, ok := c.pending[key]; ok {
		c.mu.Unlock()

		if c.log != nil {
			c.log.Debug(ctx, "waiting for cache value",
				"name", c.config.Name,
				"key", key)
		}

		<-p.done

		// A value served from the shared build counts as a hit too.
		if p.err == nil {
			c.hit(ctx, key)
		}

		return p.val, p.err
	}

	p := &pendingFetch{done: make(chan struct{})}
	c.pending[key] = p
	c.mu.Unlock()

	// A panicking build must still release waiters and unregister the
	// build, the key stays absent and the panic continues to the caller.
	defer func() {
		if r := recover(); r != nil {
			c.settle(p, key, nil, fmt.Errorf("cache build panic: %v", r))
			panic(r)
		}
	}()

	if c.log != nil {
		c.log.Debug(ctx, "building cache value",
			"name", c.config.Name,
			"key", key)
	}

	if c.stat != nil {
		c.stat.Add(ctx, MetricBuild, 1, "name", c.config.Name)
	}

	val, err = build(ctx)
	if err != nil {
		if c.stat != nil {
			c.stat.Add(ctx, MetricFailed, 1, "name", c.config.Name)
		}

		c.settle(p, key, nil, err)

		return nil, err
	}

	if writeErr := c.Write(ctx, key, val, ttl); writeErr != nil {
		c.settle(p, key, nil, writeErr)

		return nil, writeErr
	}

	c.settle(p, key, val, nil)

	return val, nil
}

// settle resolves an in-flight build and releases its waiters, the first
// settlement wins.
func (c *LRU) settle(p *pendingFetch, key string, val interface{}, err error) {
	c.mu.Lock()
	if p.settled {
		c.mu.Unlock()

		return
	}

	p.settled = true
	p.val = val
	p.err = err

	// Delete may have discarded the registration, only remove our own.
	if c.pending[key] == p {
		delete(c.pending, key)
	}
	c.mu.Unlock()

	close(p.done)
}
