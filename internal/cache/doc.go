// Package cache provides the namespaced TTL cache shared by search requests.
//
// The cache is partitioned into three namespaces (posters, metadata, links),
// each with its own lifetime fixed at construction. Clearing one namespace
// never touches another. Entries expire lazily: an expired entry reads as
// absent and is removed at that point, so no background sweeper is needed.
//
// Persistence across restarts is optional. When a path is configured the
// cache mirrors itself into a bbolt database, one bucket per namespace;
// when the path is empty the cache is memory-only and every operation on
// the persistence layer is a no-op.
package cache
