// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"

	"greentree/internal/models"
)

func TestRequestStoreCreateAndFind(t *testing.T) {
	db := testDB(t)
	s := NewRequestStore(db)
	t.Cleanup(func() { cleanRequests(t, db, "create-test@example.com") })

	created, err := s.Create(&models.ClientRequest{
		Name:           "Create Test",
		Email:          "create-test@example.com",
		Phone:          "555-0100",
		Message:        "Looking for shade trees.",
		RequestedTrees: []string{"Bur Oak", "Cedar Elm"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Error("expected generated id")
	}
	if created.Status != models.RequestStatusPending {
		t.Errorf("Status = %q, want pending", created.Status)
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}

	found, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil {
		t.Fatal("FindByID returned nil for existing request")
	}
	if len(found.RequestedTrees) != 2 || found.RequestedTrees[0] != "Bur Oak" {
		t.Errorf("RequestedTrees = %v", found.RequestedTrees)
	}
}

func TestRequestStoreFindByIDMissing(t *testing.T) {
	db := testDB(t)
	s := NewRequestStore(db)

	found, err := s.FindByID(uuid.New())
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found != nil {
		t.Errorf("FindByID = %+v, want nil", found)
	}
}

func TestRequestStoreListFiltersByStatus(t *testing.T) {
	db := testDB(t)
	s := NewRequestStore(db)
	t.Cleanup(func() { cleanRequests(t, db, "list-test@example.com") })

	created, err := s.Create(&models.ClientRequest{
		Name:    "List Test",
		Email:   "list-test@example.com",
		Message: "Bulk inquiry.",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	pending, err := s.List(models.RequestStatusPending)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var seen bool
	for _, r := range pending {
		if r.ID == created.ID {
			seen = true
		}
		if r.Status != models.RequestStatusPending {
			t.Errorf("status filter leaked %q", r.Status)
		}
	}
	if !seen {
		t.Error("created request missing from pending list")
	}

	all, err := s.List("")
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	if len(all) < len(pending) {
		t.Errorf("unfiltered list smaller than filtered: %d < %d", len(all), len(pending))
	}
}

func TestRequestStoreUpdateStatus(t *testing.T) {
	db := testDB(t)
	s := NewRequestStore(db)
	t.Cleanup(func() { cleanRequests(t, db, "status-test@example.com") })

	created, err := s.Create(&models.ClientRequest{
		Name:    "Status Test",
		Email:   "status-test@example.com",
		Message: "Please review.",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := s.UpdateStatus(created.ID, models.RequestStatusReviewed); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	found, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found.Status != models.RequestStatusReviewed {
		t.Errorf("Status = %q, want reviewed", found.Status)
	}

	if err := s.UpdateStatus(created.ID, "bogus"); err == nil {
		t.Error("expected error for invalid status")
	}
	if err := s.UpdateStatus(uuid.New(), models.RequestStatusCompleted); err != sql.ErrNoRows {
		t.Errorf("UpdateStatus on missing id = %v, want sql.ErrNoRows", err)
	}
}
