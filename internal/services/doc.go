// Package services holds the shared error taxonomy for external provider
// clients. Concrete clients live in subpackages.
package services
