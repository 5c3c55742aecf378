// Package rutube implements the streaming link provider client backed by
// the public Rutube search API.
package rutube
