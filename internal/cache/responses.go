// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// responses.go provides a Valkey-backed cache of rendered API responses (L2).
// Content is immutable for the lifetime of a build, so keys carry the
// content version and a deploy with new content never serves stale bodies.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// responseKeyPrefix is the Valkey key prefix for cached responses.
	responseKeyPrefix = "resp:"

	// DefaultResponseTTL is how long a rendered response stays cached.
	DefaultResponseTTL = 5 * time.Minute
)

// ResponseCache manages rendered-response caching in Valkey.
type ResponseCache struct {
	client  *redis.Client
	ttl     time.Duration
	version string
}

// NewResponseCache creates a response cache backed by the given Valkey
// client. version namespaces the keys, typically the content fingerprint.
func NewResponseCache(client *redis.Client, ttl time.Duration, version string) *ResponseCache {
	if ttl == 0 {
		ttl = DefaultResponseTTL
	}
	return &ResponseCache{client: client, ttl: ttl, version: version}
}

func (rc *ResponseCache) key(k string) string {
	return responseKeyPrefix + rc.version + ":" + k
}

// Get retrieves a cached body. Errors are logged and reported as a miss.
func (rc *ResponseCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := rc.client.Get(ctx, rc.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		slog.Warn("response cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("response cache hit", "key", key)
	return val, true
}

// Set stores a body with the configured TTL.
func (rc *ResponseCache) Set(ctx context.Context, key string, body []byte) {
	if err := rc.client.Set(ctx, rc.key(key), body, rc.ttl).Err(); err != nil {
		slog.Warn("response cache set error", "key", key, "error", err)
	}
}

// InvalidateAll removes every cached response, across all versions, by
// scanning for the prefix. It returns the number of keys deleted.
func (rc *ResponseCache) InvalidateAll(ctx context.Context) int {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := rc.client.Scan(ctx, cursor, responseKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("response cache scan error", "error", err)
			return deleted
		}
		if len(keys) > 0 {
			if err := rc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("response cache bulk delete error", "error", err)
			} else {
				deleted += len(keys)
			}
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("response cache cleared", "deleted", deleted)
	}
	return deleted
}
