package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Backend is the remote key/value store sitting behind a CachedStore.
type Backend interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// CachedStore caches reads from a slower backend with TTL to avoid repeated round trips.
// Writes go straight through and invalidate the cached entry.
type CachedStore struct {
	backend Backend
	ttl     time.Duration
	clock   func() time.Time
	sf      singleflight.Group
	rnd     *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedValue
}

type cachedValue struct {
	value     string
	found     bool
	expiresAt time.Time
}

type lookup struct {
	value string
	found bool
}

func NewCachedStore(backend Backend, ttl time.Duration) *CachedStore {
	return &CachedStore{
		backend: backend,
		ttl:     ttl,
		clock:   time.Now,
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:   make(map[string]cachedValue),
	}
}

func (c *CachedStore) Get(ctx context.Context, key string) (string, bool, error) {
	if entry, ok := c.fresh(key); ok {
		return entry.value, entry.found, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		if entry, ok := c.fresh(key); ok {
			return lookup{value: entry.value, found: entry.found}, nil
		}

		value, found, err := c.backend.Get(ctx, key)
		if err != nil {
			return lookup{}, err
		}

		c.mu.Lock()
		c.cache[key] = cachedValue{
			value:     value,
			found:     found,
			expiresAt: c.clock().Add(c.ttlWithJitter()),
		}
		c.mu.Unlock()
		return lookup{value: value, found: found}, nil
	})
	if err != nil {
		return "", false, err
	}
	l := result.(lookup)
	return l.value, l.found, nil
}

func (c *CachedStore) Set(ctx context.Context, key, value string) error {
	c.invalidate(key)
	return c.backend.Set(ctx, key, value)
}

func (c *CachedStore) Delete(ctx context.Context, key string) error {
	c.invalidate(key)
	return c.backend.Delete(ctx, key)
}

func (c *CachedStore) fresh(key string) (cachedValue, bool) {
	now := c.clock()
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.cache[key]
	if !ok || !entry.expiresAt.After(now) {
		return cachedValue{}, false
	}
	return entry, true
}

func (c *CachedStore) invalidate(key string) {
	c.mu.Lock()
	delete(c.cache, key)
	c.mu.Unlock()
	c.sf.Forget(key)
}

func (c *CachedStore) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
