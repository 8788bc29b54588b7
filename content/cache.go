package content

import (
	"sync"
	"time"
)

// Cache holds the last loaded Collection. Once the TTL lapses it compares the
// repository fingerprint and reloads only when the file set has changed.
// A zero TTL checks the fingerprint on every read.
type Cache struct {
	mu          sync.RWMutex
	coll        *Collection
	fingerprint string
	checked     time.Time
	ttl         time.Duration
	repo        *Repository
	now         func() time.Time
}

// NewCache creates a Cache backed by the given Repository.
func NewCache(repo *Repository, ttl time.Duration) *Cache {
	return &Cache{repo: repo, ttl: ttl, now: time.Now}
}

func (c *Cache) fresh() bool {
	return c.coll != nil && c.ttl > 0 && c.now().Sub(c.checked) < c.ttl
}

// Invalidate drops the cached collection so the next read reloads from disk.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.coll = nil
	c.fingerprint = ""
	c.mu.Unlock()
}

func (c *Cache) load() error {
	if c.fresh() {
		return nil
	}
	fp, err := c.repo.Fingerprint()
	if err != nil {
		return err
	}
	if c.coll != nil && fp == c.fingerprint {
		c.checked = c.now()
		return nil
	}
	coll, err := c.repo.LoadAll()
	if err != nil {
		return err
	}
	c.coll = coll
	c.fingerprint = fp
	c.checked = c.now()
	return nil
}

// Collection returns the current collection, reloading it if stale.
// It tries a read lock first and only takes the write lock to reload.
func (c *Cache) Collection() (*Collection, error) {
	c.mu.RLock()
	if c.fresh() {
		coll := c.coll
		c.mu.RUnlock()
		return coll, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, err
	}
	return c.coll, nil
}

// Records returns every post ordered by slug.
func (c *Cache) Records() ([]Record, error) {
	coll, err := c.Collection()
	if err != nil {
		return nil, err
	}
	return coll.All(), nil
}

// Get returns a single post by slug, or ErrNotFound.
func (c *Cache) Get(slug string) (Record, error) {
	coll, err := c.Collection()
	if err != nil {
		return Record{}, err
	}
	rec, ok := coll.Get(slug)
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}
