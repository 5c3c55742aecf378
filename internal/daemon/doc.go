// Package daemon wires the long-lived components together and enforces
// single-instance execution via a lock file.
package daemon
