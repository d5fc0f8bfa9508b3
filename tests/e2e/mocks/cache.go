package mocks

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// InMemoryCache always misses, so e2e requests exercise the full fetch path.
type InMemoryCache struct{}

func (c *InMemoryCache) Get(ctx context.Context, key string, dest any) error {
	return redis.Nil
}

func (c *InMemoryCache) Set(ctx context.Context, key string, value any, exp time.Duration) error {
	return nil
}

func (c *InMemoryCache) DeleteByPrefix(ctx context.Context, prefix string) error {
	return nil
}

func (c *InMemoryCache) Close() error {
	return nil
}

// TrackingCache counts cache traffic for caching-behavior assertions.
type TrackingCache struct {
	mu          sync.Mutex
	GetCalls    int
	SetCalls    int
	DeleteCalls int
	data        map[string]cacheEntry
}

type cacheEntry struct {
	value  any
	expiry time.Time
}

func NewTrackingCache() *TrackingCache {
	return &TrackingCache{
		data: make(map[string]cacheEntry),
	}
}

func (c *TrackingCache) Get(ctx context.Context, key string, dest any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.GetCalls++
	if entry, exists := c.data[key]; exists && time.Now().Before(entry.expiry) {
		return nil
	}
	return redis.Nil
}

func (c *TrackingCache) Set(ctx context.Context, key string, value any, exp time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.SetCalls++
	c.data[key] = cacheEntry{
		value:  value,
		expiry: time.Now().Add(exp),
	}
	return nil
}

func (c *TrackingCache) DeleteByPrefix(ctx context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.DeleteCalls++
	for key := range c.data {
		if strings.HasPrefix(key, prefix) {
			delete(c.data, key)
		}
	}
	return nil
}

func (c *TrackingCache) Close() error {
	return nil
}

func (c *TrackingCache) Stats() (gets, sets int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.GetCalls, c.SetCalls
}
