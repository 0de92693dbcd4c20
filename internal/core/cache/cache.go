package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// DisplayCache keeps the public widget payload (profile + FAQ list) per
// slug. Mutations to a chatbot or its Q&A list must call Invalidate so the
// widget never serves stale content for longer than one request.
type DisplayCache struct {
	cache *gocache.Cache
}

// New creates a display cache with the given TTL
func New(ttl time.Duration) *DisplayCache {
	return &DisplayCache{
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Get returns the cached payload for a slug
func (c *DisplayCache) Get(slug string) (interface{}, bool) {
	return c.cache.Get(slug)
}

// Set stores the payload for a slug
func (c *DisplayCache) Set(slug string, payload interface{}) {
	c.cache.SetDefault(slug, payload)
}

// Invalidate drops the cached payload for a slug
func (c *DisplayCache) Invalidate(slug string) {
	c.cache.Delete(slug)
}
