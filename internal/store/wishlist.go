// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// wishlist.go keeps each visitor's wishlist as a Valkey set of tree ids.
// Set semantics make toggle and add idempotent for free.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	wishlistKeyPrefix = "wishlist:"

	// wishlistTTL matches the visitor cookie lifetime so abandoned
	// wishlists age out with their owner.
	wishlistTTL = 30 * 24 * time.Hour
)

// WishlistStore manages per-visitor wishlists in Valkey.
type WishlistStore struct {
	client *redis.Client
}

// NewWishlistStore returns a new WishlistStore.
func NewWishlistStore(client *redis.Client) *WishlistStore {
	return &WishlistStore{client: client}
}

func wishlistKey(visitorID string) string {
	return wishlistKeyPrefix + visitorID
}

// List returns the visitor's wishlisted tree ids. Order is unspecified.
func (s *WishlistStore) List(ctx context.Context, visitorID string) ([]string, error) {
	ids, err := s.client.SMembers(ctx, wishlistKey(visitorID)).Result()
	if err != nil {
		return nil, fmt.Errorf("wishlist list: %w", err)
	}
	return ids, nil
}

// Contains reports whether a tree is on the visitor's wishlist.
func (s *WishlistStore) Contains(ctx context.Context, visitorID, treeID string) (bool, error) {
	ok, err := s.client.SIsMember(ctx, wishlistKey(visitorID), treeID).Result()
	if err != nil {
		return false, fmt.Errorf("wishlist contains: %w", err)
	}
	return ok, nil
}

// Add puts a tree on the wishlist. Adding an id twice is a no-op.
func (s *WishlistStore) Add(ctx context.Context, visitorID, treeID string) error {
	key := wishlistKey(visitorID)
	if err := s.client.SAdd(ctx, key, treeID).Err(); err != nil {
		return fmt.Errorf("wishlist add: %w", err)
	}
	s.client.Expire(ctx, key, wishlistTTL)
	return nil
}

// Remove takes a tree off the wishlist. Removing an absent id is a no-op.
func (s *WishlistStore) Remove(ctx context.Context, visitorID, treeID string) error {
	if err := s.client.SRem(ctx, wishlistKey(visitorID), treeID).Err(); err != nil {
		return fmt.Errorf("wishlist remove: %w", err)
	}
	return nil
}

// Toggle flips a tree's membership and reports whether it is now present.
func (s *WishlistStore) Toggle(ctx context.Context, visitorID, treeID string) (bool, error) {
	present, err := s.Contains(ctx, visitorID, treeID)
	if err != nil {
		return false, err
	}
	if present {
		return false, s.Remove(ctx, visitorID, treeID)
	}
	return true, s.Add(ctx, visitorID, treeID)
}

// Clear empties the visitor's wishlist.
func (s *WishlistStore) Clear(ctx context.Context, visitorID string) error {
	if err := s.client.Del(ctx, wishlistKey(visitorID)).Err(); err != nil {
		return fmt.Errorf("wishlist clear: %w", err)
	}
	return nil
}

// Count returns the number of trees on the visitor's wishlist.
func (s *WishlistStore) Count(ctx context.Context, visitorID string) (int, error) {
	n, err := s.client.SCard(ctx, wishlistKey(visitorID)).Result()
	if err != nil {
		return 0, fmt.Errorf("wishlist count: %w", err)
	}
	return int(n), nil
}
