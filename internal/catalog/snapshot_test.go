// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"greentree/internal/builder"
)

func writeCatalogFile(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if _, err := builder.WriteCatalog(dir, sampleTrees()); err != nil {
		t.Fatalf("WriteCatalog: %v", err)
	}
	return filepath.Join(dir, builder.CatalogFileName)
}

func TestLoadSnapshotDerivesLookups(t *testing.T) {
	snap, err := LoadSnapshot(writeCatalogFile(t))
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}

	if snap.Len() != 6 {
		t.Fatalf("Len = %d, want 6", snap.Len())
	}
	if got := snap.Categories(); len(got) != 2 || got[0] != "Large Trees" || got[1] != "Small Trees" {
		t.Fatalf("Categories = %v", got)
	}
	min, max := snap.PriceBounds()
	if min != 20 || max != 85 {
		t.Fatalf("PriceBounds = %.2f, %.2f, want 20, 85", min, max)
	}
	if tr := snap.FindByID("4"); tr == nil || tr.CommonName != "Texas Redbud" {
		t.Fatalf("FindByID(4) = %+v", tr)
	}
	if tr := snap.FindByID("999"); tr != nil {
		t.Fatalf("FindByID(999) = %+v, want nil", tr)
	}
	if snap.GeneratedAt().IsZero() {
		t.Fatal("GeneratedAt is zero")
	}
}

func TestLoadSnapshotRejectsUnknownSchemaVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), builder.CatalogFileName)
	payload := []byte(`{"schemaVersion":99,"generatedAt":"2026-01-01T00:00:00Z","trees":[]}`)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadSnapshot(path); err == nil {
		t.Fatal("expected error for schema version 99")
	}
}

func TestLoadSnapshotRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), builder.CatalogFileName)
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadSnapshot(path); err == nil {
		t.Fatal("expected error for malformed catalog")
	}
}

func TestStoreReloadSwapsSnapshot(t *testing.T) {
	dir := t.TempDir()
	if _, err := builder.WriteCatalog(dir, sampleTrees()[:2]); err != nil {
		t.Fatalf("WriteCatalog: %v", err)
	}
	path := filepath.Join(dir, builder.CatalogFileName)

	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if store.Snapshot().Len() != 2 {
		t.Fatalf("initial Len = %d, want 2", store.Snapshot().Len())
	}

	if _, err := builder.WriteCatalog(dir, sampleTrees()); err != nil {
		t.Fatalf("rewrite catalog: %v", err)
	}
	if err := store.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if store.Snapshot().Len() != 6 {
		t.Fatalf("reloaded Len = %d, want 6", store.Snapshot().Len())
	}
}

func TestStoreReloadKeepsSnapshotOnFailure(t *testing.T) {
	dir := t.TempDir()
	if _, err := builder.WriteCatalog(dir, sampleTrees()); err != nil {
		t.Fatalf("WriteCatalog: %v", err)
	}
	path := filepath.Join(dir, builder.CatalogFileName)

	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	if err := os.WriteFile(path, []byte("broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := store.Reload(); err == nil {
		t.Fatal("expected reload error for broken file")
	}
	if store.Snapshot().Len() != 6 {
		t.Fatalf("snapshot lost after failed reload: Len = %d", store.Snapshot().Len())
	}
}
