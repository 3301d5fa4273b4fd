package common

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// Cache is an in-process store whose entries expire after the ttl given to
// NewCache unless stored with SetFor.
type Cache struct {
	items *cache.Cache
}

// NewCache returns a cache that evicts expired entries every cleanupInterval.
// A zero ttl keeps entries until they are deleted.
func NewCache(ttl, cleanupInterval time.Duration) *Cache {
	return &Cache{items: cache.New(ttl, cleanupInterval)}
}

func (c *Cache) Set(key string, value any) {
	c.items.SetDefault(key, value)
}

func (c *Cache) SetFor(key string, value any, ttl time.Duration) {
	c.items.Set(key, value, ttl)
}

func (c *Cache) Get(key string) (any, bool) {
	return c.items.Get(key)
}

func (c *Cache) Delete(key string) {
	c.items.Delete(key)
}

func (c *Cache) Flush() {
	c.items.Flush()
}

func (c *Cache) Len() int {
	return c.items.ItemCount()
}

// Lookup returns the value stored under key when it is present and holds a T.
func Lookup[T any](c *Cache, key string) (T, bool) {
	var zero T

	v, ok := c.Get(key)
	if !ok {
		return zero, false
	}

	t, ok := v.(T)
	if !ok {
		return zero, false
	}

	return t, true
}

func CacheKeyUser(id uuid.UUID) string {
	return "user:" + id.String()
}
