package cache

import (
	"errors"

	"github.com/swaggest/usecase/status"
)

// SentinelError is an error.
type SentinelError string

// Error implements error.
func (e SentinelError) Error() string {
	return string(e)
}

const (
	// ErrNothingToInvalidate indicates no caches were added to Invalidator.
	ErrNothingToInvalidate = SentinelError("nothing to invalidate")

	// ErrAlreadyInvalidated indicates recent invalidation.
	ErrAlreadyInvalidated = SentinelError("already invalidated")
)

var (
	// ErrNotFound indicates missing cache entry.
	ErrNotFound = status.Wrap(errors.New("missing cache entry"), status.NotFound)

	// ErrRemoteUnavailable indicates an operation on the remote backend
	// that is not wired up yet.
	ErrRemoteUnavailable = status.Wrap(errors.New("remote cache backend is not implemented"), status.Unimplemented)
)
