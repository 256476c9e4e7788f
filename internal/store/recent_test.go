// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
)

func TestRecentMostRecentFirst(t *testing.T) {
	s := NewRecentStore(testValkey(t))
	ctx := context.Background()
	visitor := "test-" + uuid.NewString()

	for _, id := range []string{"1", "2", "3"} {
		if err := s.Record(ctx, visitor, id); err != nil {
			t.Fatalf("Record %s: %v", id, err)
		}
	}

	ids, err := s.List(ctx, visitor)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"3", "2", "1"}
	if len(ids) != len(want) {
		t.Fatalf("List = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("List = %v, want %v", ids, want)
		}
	}
}

func TestRecentRepeatViewMovesToFront(t *testing.T) {
	s := NewRecentStore(testValkey(t))
	ctx := context.Background()
	visitor := "test-" + uuid.NewString()

	for _, id := range []string{"1", "2", "3", "1"} {
		if err := s.Record(ctx, visitor, id); err != nil {
			t.Fatalf("Record %s: %v", id, err)
		}
	}

	ids, err := s.List(ctx, visitor)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(ids) != 3 {
		t.Fatalf("List = %v, want 3 unique ids", ids)
	}
	if ids[0] != "1" {
		t.Errorf("front = %s, want 1", ids[0])
	}
}

func TestRecentCappedAtLimit(t *testing.T) {
	s := NewRecentStore(testValkey(t))
	ctx := context.Background()
	visitor := "test-" + uuid.NewString()

	for i := 1; i <= RecentLimit+3; i++ {
		if err := s.Record(ctx, visitor, fmt.Sprintf("%d", i)); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	ids, err := s.List(ctx, visitor)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(ids) != RecentLimit {
		t.Fatalf("List has %d entries, want %d", len(ids), RecentLimit)
	}
	// Oldest views fell off the end.
	if ids[0] != fmt.Sprintf("%d", RecentLimit+3) {
		t.Errorf("front = %s, want %d", ids[0], RecentLimit+3)
	}
	for _, id := range ids {
		if id == "1" || id == "2" || id == "3" {
			t.Errorf("expired id %s still present", id)
		}
	}
}

func TestRecentClear(t *testing.T) {
	s := NewRecentStore(testValkey(t))
	ctx := context.Background()
	visitor := "test-" + uuid.NewString()

	if err := s.Record(ctx, visitor, "9"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := s.Clear(ctx, visitor); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	ids, err := s.List(ctx, visitor)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("List after clear = %v", ids)
	}
}
