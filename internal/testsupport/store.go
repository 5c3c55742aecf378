package testsupport

import (
	"testing"

	"cinebot/internal/cache"
	"cinebot/internal/config"
	"cinebot/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	s, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})
	return s
}

// MustOpenCache opens an in-memory cache with the config's TTLs.
func MustOpenCache(t testing.TB, cfg *config.Config) *cache.Cache {
	t.Helper()

	c, err := cache.Open("", cache.TTLs{
		Poster:   cfg.PosterTTL(),
		Metadata: cfg.MetadataTTL(),
		Links:    cfg.LinkTTL(),
	}, nil)
	if err != nil {
		t.Fatalf("cache.Open: %v", err)
	}
	t.Cleanup(func() {
		c.Close()
	})
	return c
}
