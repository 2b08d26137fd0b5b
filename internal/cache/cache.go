// Package cache is a thin optional Redis layer for report payloads. A nil
// *Cache is valid and does nothing, so callers never branch on whether
// Redis is configured.
package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

const defaultTTL = 30 * time.Second

type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New connects to Redis at addr. An empty addr, or an unreachable server,
// yields nil: the application runs without caching.
func New(addr string) *Cache {
	if addr == "" {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		PoolSize:     10,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis unavailable at %s, running without cache: %v", addr, err)
		return nil
	}
	return &Cache{rdb: rdb, ttl: defaultTTL}
}

// Get unmarshals the cached value for key into dest, reporting whether a
// usable entry was found.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil {
		return false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

// Set stores val under key with the cache TTL. Failures are ignored.
func (c *Cache) Set(ctx context.Context, key string, val any) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(val)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, key, raw, c.ttl)
}

// Invalidate drops the given keys.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	c.rdb.Del(ctx, keys...)
}
