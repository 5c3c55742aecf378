// Package api exposes the service facade: one entry point per user-facing
// operation, hiding the store, cache, and orchestrator behind it.
package api
