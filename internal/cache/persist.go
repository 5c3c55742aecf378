package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"cinebot/internal/logging"
)

// persistence mirrors the in-memory cache into a bbolt database so warm
// entries survive restarts. One bucket per namespace; entries are stored as
// JSON. The in-memory maps stay authoritative: persistence failures are
// logged by the callers, never surfaced to cache users.
type persistence struct {
	db *bolt.DB
}

func openPersistence(path string) (*persistence, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	db, err := bolt.Open(path, 0o644, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, ns := range Namespaces() {
			if _, err := tx.CreateBucketIfNotExists([]byte(ns.String())); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("prepare cache buckets: %w", err)
	}
	return &persistence{db: db}, nil
}

func (p *persistence) close() error {
	return p.db.Close()
}

func (c *Cache) loadPersisted() error {
	now := c.now()
	return c.persist.db.View(func(tx *bolt.Tx) error {
		for _, ns := range Namespaces() {
			bucket := tx.Bucket([]byte(ns.String()))
			if bucket == nil {
				continue
			}
			s := c.stores[ns]
			loaded := 0
			err := bucket.ForEach(func(k, v []byte) error {
				var e entry
				if err := json.Unmarshal(v, &e); err != nil {
					return nil // skip corrupt entries, fresh fetches replace them
				}
				if e.expired(now) {
					return nil
				}
				s.mu.Lock()
				s.entries[string(k)] = e
				s.mu.Unlock()
				loaded++
				return nil
			})
			if err != nil {
				return err
			}
			if loaded > 0 {
				c.logger.Debug("loaded persisted entries",
					logging.String(logging.FieldNamespace, ns.String()),
					logging.Int("count", loaded))
			}
		}
		return nil
	})
}

func (c *Cache) putPersisted(ns Namespace, key string, e entry) {
	if c.persist == nil {
		return
	}
	data, err := json.Marshal(e)
	if err != nil {
		c.logger.Warn("failed to encode cache entry", logging.Error(err))
		return
	}
	err = c.persist.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(ns.String())).Put([]byte(key), data)
	})
	if err != nil {
		c.logger.Warn("failed to persist cache entry",
			logging.String(logging.FieldNamespace, ns.String()),
			logging.Error(err))
	}
}

func (c *Cache) deletePersisted(ns Namespace, key string) {
	if c.persist == nil {
		return
	}
	err := c.persist.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(ns.String())).Delete([]byte(key))
	})
	if err != nil {
		c.logger.Warn("failed to remove persisted cache entry",
			logging.String(logging.FieldNamespace, ns.String()),
			logging.Error(err))
	}
}

func (c *Cache) clearPersisted(ns Namespace) {
	if c.persist == nil {
		return
	}
	err := c.persist.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(ns.String())); err != nil {
			return err
		}
		_, err := tx.CreateBucket([]byte(ns.String()))
		return err
	})
	if err != nil {
		c.logger.Warn("failed to clear persisted namespace",
			logging.String(logging.FieldNamespace, ns.String()),
			logging.Error(err))
	}
}
