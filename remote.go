package cache

import (
	"context"
	"time"
)

var (
	_ Backend           = Remote{}
	_ PrefixInvalidator = Remote{}
)

// Remote is a stand-in for a shared remote cache backend.
//
// The remote store is not wired up yet, every operation fails with
// ErrRemoteUnavailable immediately. Failing loudly is deliberate: a silent
// pass-through would disguise a misconfigured deployment as a cache that
// always misses.
type Remote struct{}

// Read fails with ErrRemoteUnavailable.
func (Remote) Read(_ context.Context, _ string) (interface{}, error) {
	return nil, ErrRemoteUnavailable
}

// Write fails with ErrRemoteUnavailable.
func (Remote) Write(_ context.Context, _ string, _ interface{}, _ time.Duration) error {
	return ErrRemoteUnavailable
}

// Delete fails with ErrRemoteUnavailable.
func (Remote) Delete(_ context.Context, _ string) error {
	return ErrRemoteUnavailable
}

// InvalidatePrefix fails with ErrRemoteUnavailable.
func (Remote) InvalidatePrefix(_ context.Context, _ string) error {
	return ErrRemoteUnavailable
}

// Fetch fails with ErrRemoteUnavailable without invoking build.
func (Remote) Fetch(_ context.Context, _ string, _ time.Duration, _ func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	return nil, ErrRemoteUnavailable
}
