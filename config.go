package cache

import (
	"os"
	"strconv"
)

// DefaultMaxItems bounds the local store when no explicit value is configured.
const DefaultMaxItems = 500

// Recognized environment variables.
const (
	// EnvMaxItems holds the capacity bound of the local store, positive integer.
	EnvMaxItems = "CACHE_MAX_ITEMS"

	// EnvBackend selects the backend implementation, "local" or "remote".
	EnvBackend = "CACHE_BACKEND"
)

// BackendKind selects a backend implementation.
type BackendKind string

// Known backend kinds.
const (
	BackendLocal  BackendKind = "local"
	BackendRemote BackendKind = "remote"
)

// EnvConfig is backend selection resolved once at process start.
type EnvConfig struct {
	Kind     BackendKind
	MaxItems int
}

// ConfigFromEnv reads backend selection from environment variables.
//
// Invalid values resolve to safe defaults instead of failing startup:
// a non-numeric or non-positive capacity falls back to DefaultMaxItems,
// an unrecognized backend kind falls back to BackendLocal.
func ConfigFromEnv() EnvConfig {
	cfg := EnvConfig{
		Kind:     BackendLocal,
		MaxItems: DefaultMaxItems,
	}

	if v := os.Getenv(EnvMaxItems); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxItems = n
		}
	}

	if BackendKind(os.Getenv(EnvBackend)) == BackendRemote {
		cfg.Kind = BackendRemote
	}

	return cfg
}

// NewBackend constructs the process-wide backend instance.
//
// The result is meant to be created once at startup and passed to every
// consumer. Per-request construction would silently defeat both caching and
// build deduplication.
func NewBackend(env EnvConfig, local Config) Backend {
	if env.Kind == BackendRemote {
		return Remote{}
	}

	if env.MaxItems > 0 {
		local.MaxItems = env.MaxItems
	}

	return NewLRU(local)
}
