// Package main hosts the cinebot CLI entrypoint and command graph.
//
// The Cobra-based command tree surfaces the service facade in-process:
// movie search, history, view statistics, source toggles, cache
// maintenance and configuration scaffolding. Keep this package lean; new
// behavior belongs in the internal packages first and is surfaced here
// through dedicated commands or flags.
package main
