package cache

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"
)

func newTestCache(t *testing.T, path string) *Cache {
	t.Helper()
	c, err := Open(path, TTLs{
		Poster:   21 * 24 * time.Hour,
		Metadata: 12 * time.Hour,
		Links:    30 * time.Minute,
	}, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestPutGetRoundTrip(t *testing.T) {
	c := newTestCache(t, "")
	c.Put(Metadata, "inception", []byte(`{"title":"Inception"}`))

	got, ok := c.Get(Metadata, "inception")
	if !ok {
		t.Fatal("expected hit")
	}
	if !bytes.Equal(got, []byte(`{"title":"Inception"}`)) {
		t.Fatalf("payload mismatch: %s", got)
	}
}

func TestGetUnknownKey(t *testing.T) {
	c := newTestCache(t, "")
	if _, ok := c.Get(Links, "nope"); ok {
		t.Fatal("expected miss for unknown key")
	}
}

func TestExpiryPerNamespace(t *testing.T) {
	c := newTestCache(t, "")
	base := time.Now()
	c.now = func() time.Time { return base }

	c.Put(Links, "matrix", []byte(`[]`))
	c.Put(Metadata, "matrix", []byte(`{}`))

	// Past the link TTL but well inside the metadata TTL.
	c.now = func() time.Time { return base.Add(31 * time.Minute) }

	if _, ok := c.Get(Links, "matrix"); ok {
		t.Fatal("link entry should have expired")
	}
	if _, ok := c.Get(Metadata, "matrix"); !ok {
		t.Fatal("metadata entry should still be live")
	}
}

func TestExpiredEntryIsEvictedOnRead(t *testing.T) {
	c := newTestCache(t, "")
	base := time.Now()
	c.now = func() time.Time { return base }
	c.Put(Links, "k", []byte("v"))

	c.now = func() time.Time { return base.Add(time.Hour) }
	if _, ok := c.Get(Links, "k"); ok {
		t.Fatal("expected expiry")
	}
	c.stores[Links].mu.RLock()
	_, present := c.stores[Links].entries["k"]
	c.stores[Links].mu.RUnlock()
	if present {
		t.Fatal("expired entry should be removed on read")
	}
}

func TestOverwriteResetsCreatedAt(t *testing.T) {
	c := newTestCache(t, "")
	base := time.Now()
	c.now = func() time.Time { return base }
	c.Put(Links, "k", []byte("old"))

	c.now = func() time.Time { return base.Add(25 * time.Minute) }
	c.Put(Links, "k", []byte("new"))

	// 45 minutes after the first put, but only 20 after the overwrite.
	c.now = func() time.Time { return base.Add(45 * time.Minute) }
	got, ok := c.Get(Links, "k")
	if !ok {
		t.Fatal("overwritten entry should still be live")
	}
	if string(got) != "new" {
		t.Fatalf("latest write should win, got %s", got)
	}
}

func TestClearIsolation(t *testing.T) {
	c := newTestCache(t, "")
	c.Put(Metadata, "k", []byte("v"))
	c.Put(Links, "k", []byte("w"))

	if removed := c.Clear(Metadata); removed != 1 {
		t.Fatalf("Clear removed %d, want 1", removed)
	}
	if _, ok := c.Get(Metadata, "k"); ok {
		t.Fatal("cleared namespace should be empty")
	}
	if got, ok := c.Get(Links, "k"); !ok || string(got) != "w" {
		t.Fatal("sibling namespace must be untouched")
	}
}

func TestClearAll(t *testing.T) {
	c := newTestCache(t, "")
	c.Put(Poster, "p", []byte("img"))
	c.Put(Metadata, "m", []byte("{}"))
	c.Put(Links, "l", []byte("[]"))

	if total := c.ClearAll(); total != 3 {
		t.Fatalf("ClearAll removed %d, want 3", total)
	}
	for _, ns := range Namespaces() {
		if c.Len(ns) != 0 {
			t.Fatalf("namespace %s not empty after ClearAll", ns)
		}
	}
}

func TestPersistenceAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	c := newTestCache(t, path)
	c.Put(Metadata, "inception", []byte(`{"title":"Inception"}`))
	c.Put(Poster, "https://img/1.jpg", []byte{0xff, 0xd8})
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened := newTestCache(t, path)
	if got, ok := reopened.Get(Metadata, "inception"); !ok || !bytes.Contains(got, []byte("Inception")) {
		t.Fatal("metadata entry should survive reopen")
	}
	if _, ok := reopened.Get(Poster, "https://img/1.jpg"); !ok {
		t.Fatal("poster entry should survive reopen")
	}
}

func TestPersistedClearSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	c := newTestCache(t, path)
	c.Put(Links, "k", []byte("[]"))
	c.Clear(Links)
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened := newTestCache(t, path)
	if _, ok := reopened.Get(Links, "k"); ok {
		t.Fatal("cleared entry must not reappear after reopen")
	}
}
