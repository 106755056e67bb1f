// Package cache fronts expensive read queries of the trust center backend
// with a bounded, expiring, concurrency-safe store behind a pluggable
// backend contract.
//
// Features:
//
//   - Hard bound on live entry count with least-recently-used eviction.
//   - Per-entry TTL with lazy expiry on read and a background janitor.
//   - Fetch builds are locked per key, concurrent callers share one build.
//   - Prefix invalidation drops every cached view of an entity after a mutation.
//   - Backends are swappable behind a single capability contract.
//   - Allows logging, stats collection.
package cache
