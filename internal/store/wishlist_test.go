// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestWishlistAddRemoveIdempotent(t *testing.T) {
	s := NewWishlistStore(testValkey(t))
	ctx := context.Background()
	visitor := "test-" + uuid.NewString()

	// Adding twice keeps one entry.
	if err := s.Add(ctx, visitor, "42"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.Add(ctx, visitor, "42"); err != nil {
		t.Fatalf("Add again: %v", err)
	}
	n, err := s.Count(ctx, visitor)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 1 {
		t.Errorf("Count = %d, want 1", n)
	}

	// Removing an absent id is a no-op.
	if err := s.Remove(ctx, visitor, "999"); err != nil {
		t.Fatalf("Remove absent: %v", err)
	}
	if err := s.Remove(ctx, visitor, "42"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	ids, err := s.List(ctx, visitor)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("List = %v, want empty", ids)
	}
}

func TestWishlistToggle(t *testing.T) {
	s := NewWishlistStore(testValkey(t))
	ctx := context.Background()
	visitor := "test-" + uuid.NewString()

	present, err := s.Toggle(ctx, visitor, "7")
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !present {
		t.Error("first toggle should add")
	}

	present, err = s.Toggle(ctx, visitor, "7")
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if present {
		t.Error("second toggle should remove")
	}

	if ok, _ := s.Contains(ctx, visitor, "7"); ok {
		t.Error("id still present after toggle off")
	}
}

func TestWishlistClear(t *testing.T) {
	s := NewWishlistStore(testValkey(t))
	ctx := context.Background()
	visitor := "test-" + uuid.NewString()

	for _, id := range []string{"1", "2", "3"} {
		if err := s.Add(ctx, visitor, id); err != nil {
			t.Fatalf("Add %s: %v", id, err)
		}
	}
	if err := s.Clear(ctx, visitor); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	n, err := s.Count(ctx, visitor)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 0 {
		t.Errorf("Count after clear = %d, want 0", n)
	}
}

func TestWishlistIsolatedPerVisitor(t *testing.T) {
	s := NewWishlistStore(testValkey(t))
	ctx := context.Background()
	a := "test-" + uuid.NewString()
	b := "test-" + uuid.NewString()

	if err := s.Add(ctx, a, "5"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if ok, _ := s.Contains(ctx, b, "5"); ok {
		t.Error("wishlist leaked between visitors")
	}
}
