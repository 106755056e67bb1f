package cache

import (
	"context"
	"time"
)

// Reader reads from cache.
type Reader interface {
	// Read returns cached value or ErrNotFound.
	// A hit refreshes recency of the entry.
	Read(ctx context.Context, key string) (interface{}, error)
}

// Writer writes to cache.
type Writer interface {
	// Write stores value with a given key for ttl.
	// A non-positive ttl means the value is already expired, nothing is stored.
	Write(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// Deleter removes values from cache.
type Deleter interface {
	// Delete removes key unconditionally, deleting a missing key is a no-op.
	Delete(ctx context.Context, key string) error
}

// Fetcher reads through cache.
type Fetcher interface {
	// Fetch returns the cached value for key, or builds, stores and returns it.
	//
	// Concurrent calls for the same missing key share a single build
	// invocation. Build failures are delivered to every waiting caller and
	// are not cached, so a subsequent call retries the build.
	Fetch(ctx context.Context, key string, ttl time.Duration, build func(ctx context.Context) (interface{}, error)) (interface{}, error)
}

// Backend is the capability contract every cache backend satisfies.
type Backend interface {
	Reader
	Writer
	Deleter
	Fetcher
}

// PrefixInvalidator is an optional backend capability to remove every live
// entry whose key starts with a literal prefix.
//
// Callers discover the capability with a type assertion. A backend that can
// not enumerate keys by prefix omits the interface instead of ignoring calls.
type PrefixInvalidator interface {
	InvalidatePrefix(ctx context.Context, prefix string) error
}

// Entry is a stored cache unit.
type Entry interface {
	Value() interface{}
}

// Expirable exposes entry expiration time.
type Expirable interface {
	ExpireAt() time.Time
}

// Walker calls function for every entry in cache and fails on first error returned by that function.
//
// Count of processed entries is returned.
type Walker interface {
	Walk(func(key string, entry Entry) error) (int, error)
}
