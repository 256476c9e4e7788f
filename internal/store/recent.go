// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// recent.go keeps each visitor's recently-viewed trees as a Valkey list,
// most recent first, capped at RecentLimit unique ids.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	recentKeyPrefix = "recent:"

	// RecentLimit is the maximum number of recently-viewed trees kept.
	RecentLimit = 5

	recentTTL = 30 * 24 * time.Hour
)

// RecentStore manages per-visitor recently-viewed lists in Valkey.
type RecentStore struct {
	client *redis.Client
}

// NewRecentStore returns a new RecentStore.
func NewRecentStore(client *redis.Client) *RecentStore {
	return &RecentStore{client: client}
}

func recentKey(visitorID string) string {
	return recentKeyPrefix + visitorID
}

// Record notes that the visitor viewed a tree. A repeat view moves the id
// to the front instead of duplicating it; the list is truncated to
// RecentLimit entries.
func (s *RecentStore) Record(ctx context.Context, visitorID, treeID string) error {
	key := recentKey(visitorID)
	pipe := s.client.TxPipeline()
	pipe.LRem(ctx, key, 0, treeID)
	pipe.LPush(ctx, key, treeID)
	pipe.LTrim(ctx, key, 0, RecentLimit-1)
	pipe.Expire(ctx, key, recentTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("recent record: %w", err)
	}
	return nil
}

// List returns the visitor's recently-viewed tree ids, most recent first.
func (s *RecentStore) List(ctx context.Context, visitorID string) ([]string, error) {
	ids, err := s.client.LRange(ctx, recentKey(visitorID), 0, RecentLimit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("recent list: %w", err)
	}
	return ids, nil
}

// Clear empties the visitor's recently-viewed list.
func (s *RecentStore) Clear(ctx context.Context, visitorID string) error {
	if err := s.client.Del(ctx, recentKey(visitorID)).Err(); err != nil {
		return fmt.Errorf("recent clear: %w", err)
	}
	return nil
}
