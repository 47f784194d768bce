package cache

import (
	"context"
	"strings"
	"time"

	"lapak-storefront/internal/domain"
	"lapak-storefront/pkg/cache"

	gocache "github.com/patrickmn/go-cache"
)

type memoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache creates a new in-memory cache service
// defaultExpiration: default TTL for items
// cleanupInterval: how often to scan for expired items
func NewMemoryCache(defaultExpiration, cleanupInterval time.Duration) cache.CacheService {
	return &memoryCache{
		store: gocache.New(defaultExpiration, cleanupInterval),
	}
}

func (c *memoryCache) Get(key string) (interface{}, bool) {
	return c.store.Get(key)
}

func (c *memoryCache) Set(key string, value interface{}, duration time.Duration) {
	c.store.Set(key, value, duration)
}

func (c *memoryCache) Delete(key string) {
	c.store.Delete(key)
}

func (c *memoryCache) DeletePrefix(prefix string) {
	for key := range c.store.Items() {
		if strings.HasPrefix(key, prefix) {
			c.store.Delete(key)
		}
	}
}

func (c *memoryCache) Flush() {
	c.store.Flush()
}

// MemorySlots is a domain.SlotStore held in process memory. Slots vanish on
// restart, so it suits development and single-instance deployments.
type MemorySlots struct {
	store *gocache.Cache
}

func NewMemorySlots(cleanupInterval time.Duration) *MemorySlots {
	return &MemorySlots{
		store: gocache.New(gocache.NoExpiration, cleanupInterval),
	}
}

func (m *MemorySlots) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.store.Get(key)
	if !ok {
		return nil, domain.ErrSlotNotFound
	}
	b, ok := v.([]byte)
	if !ok {
		return nil, domain.ErrSlotNotFound
	}
	return append([]byte(nil), b...), nil
}

func (m *MemorySlots) Put(_ context.Context, key string, value []byte, ttl time.Duration) error {
	exp := ttl
	if ttl <= 0 {
		exp = gocache.NoExpiration
	}
	m.store.Set(key, append([]byte(nil), value...), exp)
	return nil
}

func (m *MemorySlots) Delete(_ context.Context, key string) error {
	m.store.Delete(key)
	return nil
}
