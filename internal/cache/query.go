// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// query.go provides a Valkey-backed cache for serialized catalog query
// results. The catalog only changes on an explicit reload, so filtered
// pages can be cached aggressively and flushed wholesale afterwards.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// queryKeyPrefix is the Valkey key prefix for cached query results.
	queryKeyPrefix = "query:"

	// DefaultQueryTTL is how long a cached query result stays valid.
	DefaultQueryTTL = 5 * time.Minute
)

// QueryCache stores serialized query responses in Valkey. A nil client
// disables the cache: every lookup misses and every store is a no-op.
type QueryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewQueryCache creates a query cache backed by the given Valkey client.
func NewQueryCache(client *redis.Client, ttl time.Duration) *QueryCache {
	if ttl == 0 {
		ttl = DefaultQueryTTL
	}
	return &QueryCache{client: client, ttl: ttl}
}

// Get retrieves a cached response body for a canonical query key.
func (qc *QueryCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if qc == nil || qc.client == nil {
		return nil, false
	}
	val, err := qc.client.Get(ctx, queryKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("query cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("query cache hit", "key", key)
	return val, true
}

// Set stores a serialized response body for a canonical query key.
func (qc *QueryCache) Set(ctx context.Context, key string, body []byte) {
	if qc == nil || qc.client == nil {
		return
	}
	if err := qc.client.Set(ctx, queryKeyPrefix+key, body, qc.ttl).Err(); err != nil {
		slog.Warn("query cache set error", "key", key, "error", err)
	}
}

// InvalidateAll removes every cached query result. Called after a catalog
// reload, since any cached page could now be stale.
func (qc *QueryCache) InvalidateAll(ctx context.Context) {
	if qc == nil || qc.client == nil {
		return
	}
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := qc.client.Scan(ctx, cursor, queryKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("query cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := qc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("query cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("query cache fully cleared", "deleted", deleted)
	}
}
