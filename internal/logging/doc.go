// Package logging builds the application's slog loggers.
//
// Two output formats are supported: a compact console format for interactive
// use and JSON for machine consumption. Components obtain a child logger via
// NewComponentLogger so every line carries a component attribute.
package logging
