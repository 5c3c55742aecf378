// Package store persists per-user state in SQLite: search history, view
// statistics and source preferences. The shared namespaced cache is not
// stored here; it has its own lifecycle in the cache package.
package store
