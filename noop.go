package cache

import (
	"context"
	"time"
)

// NoOp is a Backend stub that disables caching explicitly.
//
// Unlike Remote it never errors: reads miss, writes are discarded and Fetch
// always builds. It intentionally omits PrefixInvalidator, there is nothing
// to invalidate.
type NoOp struct{}

var _ Backend = NoOp{}

// Read does not find anything.
func (NoOp) Read(_ context.Context, _ string) (interface{}, error) {
	return nil, ErrNotFound
}

// Write discards value.
func (NoOp) Write(_ context.Context, _ string, _ interface{}, _ time.Duration) error {
	return nil
}

// Delete is a no-op.
func (NoOp) Delete(_ context.Context, _ string) error {
	return nil
}

// Fetch invokes build on every call.
func (NoOp) Fetch(ctx context.Context, _ string, _ time.Duration, build func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	return build(ctx)
}
