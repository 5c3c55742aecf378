package cache

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"cinebot/internal/logging"
)

// TTLs configures the lifetime of each namespace at construction time.
type TTLs struct {
	Poster   time.Duration
	Metadata time.Duration
	Links    time.Duration
}

type entry struct {
	Payload   []byte        `json:"payload"`
	CreatedAt time.Time     `json:"created_at"`
	TTL       time.Duration `json:"ttl"`
}

func (e entry) expired(now time.Time) bool {
	return now.Sub(e.CreatedAt) > e.TTL
}

// store is one namespace's map. Each namespace has its own lock so reads in
// one namespace never block writes in another.
type store struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// Cache is a namespaced key/value store with per-namespace TTLs and lazy
// eviction. Expired entries are treated as absent on read and removed at
// that point. Operations never fail; persistence problems are logged and the
// in-memory state stays authoritative.
type Cache struct {
	stores  map[Namespace]*store
	ttls    map[Namespace]time.Duration
	logger  *slog.Logger
	persist *persistence
	now     func() time.Time
}

// Open creates a Cache. When path is non-empty, entries are persisted to a
// bbolt database at that path and reloaded on the next Open.
func Open(path string, ttls TTLs, logger *slog.Logger) (*Cache, error) {
	logger = logging.NewComponentLogger(logger, "cache")

	c := &Cache{
		stores: make(map[Namespace]*store, len(Namespaces())),
		ttls: map[Namespace]time.Duration{
			Poster:   ttls.Poster,
			Metadata: ttls.Metadata,
			Links:    ttls.Links,
		},
		logger: logger,
		now:    time.Now,
	}
	for _, ns := range Namespaces() {
		c.stores[ns] = &store{entries: make(map[string]entry)}
	}

	if strings.TrimSpace(path) != "" {
		p, err := openPersistence(path)
		if err != nil {
			return nil, err
		}
		c.persist = p
		if err := c.loadPersisted(); err != nil {
			logger.Warn("failed to load persisted cache",
				logging.Error(err))
		}
	}

	return c, nil
}

// Close releases the persistence handle, if any.
func (c *Cache) Close() error {
	if c == nil || c.persist == nil {
		return nil
	}
	return c.persist.close()
}

// Get returns the payload for key, or false when the key is unknown or its
// TTL has elapsed.
func (c *Cache) Get(ns Namespace, key string) ([]byte, bool) {
	s := c.stores[ns]
	now := c.now()

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if e.expired(now) {
		s.mu.Lock()
		// Re-check: a concurrent Put may have refreshed the entry.
		if cur, ok := s.entries[key]; ok && cur.expired(now) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		c.deletePersisted(ns, key)
		c.logger.Debug("entry expired",
			logging.String(logging.FieldNamespace, ns.String()),
			logging.String("key", key))
		return nil, false
	}
	return e.Payload, true
}

// Put stores payload under (ns, key), overwriting any existing entry and
// resetting its creation time.
func (c *Cache) Put(ns Namespace, key string, payload []byte) {
	e := entry{
		Payload:   payload,
		CreatedAt: c.now(),
		TTL:       c.ttls[ns],
	}

	s := c.stores[ns]
	s.mu.Lock()
	s.entries[key] = e
	s.mu.Unlock()

	c.putPersisted(ns, key, e)
}

// Clear removes every entry in one namespace and returns the number removed.
// Other namespaces are untouched.
func (c *Cache) Clear(ns Namespace) int {
	s := c.stores[ns]
	s.mu.Lock()
	removed := len(s.entries)
	s.entries = make(map[string]entry)
	s.mu.Unlock()

	c.clearPersisted(ns)
	c.logger.Info("cleared namespace",
		logging.String(logging.FieldNamespace, ns.String()),
		logging.Int("removed", removed))
	return removed
}

// ClearAll clears every namespace and returns the total number removed.
func (c *Cache) ClearAll() int {
	total := 0
	for _, ns := range Namespaces() {
		total += c.Clear(ns)
	}
	return total
}

// Len returns the number of live (non-expired) entries in a namespace.
func (c *Cache) Len(ns Namespace) int {
	s := c.stores[ns]
	now := c.now()

	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, e := range s.entries {
		if !e.expired(now) {
			count++
		}
	}
	return count
}
