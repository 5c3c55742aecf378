// Package search orchestrates movie lookups: it consults the namespaced
// cache, calls the enabled providers on a miss, and merges the answers into
// a single result. Provider failures degrade to absent fields rather than
// errors, and history/statistics persistence is left to the caller.
package search
