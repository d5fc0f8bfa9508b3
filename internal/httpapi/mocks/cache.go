package mocks

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// MockCacher is a mock implementation of the cache interface
// for testing the handler layer. It uses function-based mocking for flexibility.
type MockCacher struct {
	GetFunc            func(ctx context.Context, key string, dest any) error
	SetFunc            func(ctx context.Context, key string, value any, expiration time.Duration) error
	DeleteByPrefixFunc func(ctx context.Context, prefix string) error
	CloseFunc          func() error
}

// Get implements the cache interface
func (m *MockCacher) Get(ctx context.Context, key string, dest any) error {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key, dest)
	}
	return errors.New("cache miss")
}

// Set implements the cache interface
func (m *MockCacher) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, expiration)
	}
	return nil
}

// DeleteByPrefix implements the cache interface
func (m *MockCacher) DeleteByPrefix(ctx context.Context, prefix string) error {
	if m.DeleteByPrefixFunc != nil {
		return m.DeleteByPrefixFunc(ctx, prefix)
	}
	return nil
}

// Close implements the cache interface
func (m *MockCacher) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// PassthroughCacher always misses and records sets and invalidations, so
// handler tests hit the service on every call without a redis instance.
type PassthroughCacher struct {
	mu      sync.Mutex
	sets    map[string]any
	deletes []string
}

// Get implements the cache interface
func (c *PassthroughCacher) Get(ctx context.Context, key string, dest any) error {
	return redis.Nil
}

// Set implements the cache interface
func (c *PassthroughCacher) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sets == nil {
		c.sets = make(map[string]any)
	}
	c.sets[key] = value
	return nil
}

// DeleteByPrefix implements the cache interface
func (c *PassthroughCacher) DeleteByPrefix(ctx context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deletes = append(c.deletes, prefix)
	return nil
}

// Close implements the cache interface
func (c *PassthroughCacher) Close() error { return nil }

// SetKeys returns the keys written so far.
func (c *PassthroughCacher) SetKeys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]string, 0, len(c.sets))
	for k := range c.sets {
		keys = append(keys, k)
	}
	return keys
}

// DeletedPrefixes returns the prefixes invalidated so far.
func (c *PassthroughCacher) DeletedPrefixes() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.deletes...)
}
