package cache

import (
	"fmt"
	"strings"
)

// Namespace identifies an isolated partition of the cache. Each namespace is
// independently clearable and carries its own TTL.
type Namespace int

const (
	// Poster maps poster URLs to image payloads.
	Poster Namespace = iota
	// Metadata maps normalized queries to movie metadata.
	Metadata
	// Links maps titles to streaming link lists.
	Links
)

// Namespaces returns all namespaces in declaration order.
func Namespaces() []Namespace {
	return []Namespace{Poster, Metadata, Links}
}

func (n Namespace) String() string {
	switch n {
	case Poster:
		return "posters"
	case Metadata:
		return "metadata"
	case Links:
		return "links"
	default:
		return fmt.Sprintf("namespace(%d)", int(n))
	}
}

// ParseNamespace resolves a user-supplied namespace name, accepting the
// historical command aliases.
func ParseNamespace(value string) (Namespace, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "posters", "poster":
		return Poster, nil
	case "metadata", "movie_data", "movies":
		return Metadata, nil
	case "links", "rutube":
		return Links, nil
	default:
		return 0, fmt.Errorf("unknown cache namespace %q", value)
	}
}
