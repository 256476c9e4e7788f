// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package catalog loads the persisted tree catalog and answers queries
// over it: filtering, sorting, pagination, CSV export, and the dashboard
// metrics. The catalog is read-only at serve time; all query work is pure
// computation over an in-memory snapshot.
package catalog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"greentree/internal/builder"
	"greentree/internal/models"
)

// Snapshot is one immutable, fully loaded catalog: the sorted tree list
// plus derived lookup structures. Never mutated after construction.
type Snapshot struct {
	trees       []models.Tree
	byID        map[string]int
	categories  []string
	priceMin    float64
	priceMax    float64
	generatedAt time.Time
}

// newSnapshot builds the derived structures over a tree list.
func newSnapshot(trees []models.Tree, generatedAt time.Time) *Snapshot {
	s := &Snapshot{
		trees:       trees,
		byID:        make(map[string]int, len(trees)),
		generatedAt: generatedAt,
	}

	seen := map[string]bool{}
	for i, t := range trees {
		s.byID[t.ID] = i
		if !seen[t.Category] {
			seen[t.Category] = true
			s.categories = append(s.categories, t.Category)
		}
		if i == 0 || t.Price < s.priceMin {
			s.priceMin = t.Price
		}
		if t.Price > s.priceMax {
			s.priceMax = t.Price
		}
	}
	return s
}

// LoadSnapshot reads a catalog file written by the builder. Files with an
// unknown schema version are rejected.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	var envelope builder.CatalogFile
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", path, err)
	}
	if envelope.SchemaVersion != builder.CatalogSchemaVersion {
		return nil, fmt.Errorf("catalog %s: unsupported schema version %d (want %d)",
			path, envelope.SchemaVersion, builder.CatalogSchemaVersion)
	}

	return newSnapshot(envelope.Trees, envelope.GeneratedAt), nil
}

// Trees returns the full catalog in its persisted (category, commonName)
// order. Callers must treat the slice as read-only.
func (s *Snapshot) Trees() []models.Tree {
	return s.trees
}

// FindByID returns the tree with the given id, or nil if absent.
func (s *Snapshot) FindByID(id string) *models.Tree {
	i, ok := s.byID[id]
	if !ok {
		return nil
	}
	return &s.trees[i]
}

// Categories returns the distinct categories in first-appearance order.
func (s *Snapshot) Categories() []string {
	return s.categories
}

// PriceBounds returns the catalog-wide minimum and maximum price, the
// defaults for an unconstrained price-range filter.
func (s *Snapshot) PriceBounds() (min, max float64) {
	return s.priceMin, s.priceMax
}

// Len returns the number of varieties in the catalog.
func (s *Snapshot) Len() int {
	return len(s.trees)
}

// GeneratedAt reports when the builder produced this catalog.
func (s *Snapshot) GeneratedAt() time.Time {
	return s.generatedAt
}

// Store holds the process-wide catalog snapshot and supports wholesale
// reload from disk. Queries read a consistent snapshot pointer; a reload
// swaps the pointer without touching in-flight readers.
type Store struct {
	mu   sync.RWMutex
	path string
	snap *Snapshot
}

// NewStore loads the catalog at path and returns the shared store.
func NewStore(path string) (*Store, error) {
	snap, err := LoadSnapshot(path)
	if err != nil {
		return nil, err
	}
	return &Store{path: path, snap: snap}, nil
}

// Snapshot returns the current catalog snapshot.
func (st *Store) Snapshot() *Snapshot {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.snap
}

// Reload re-reads the catalog file and swaps it in. On failure the
// previous snapshot stays active.
func (st *Store) Reload() error {
	snap, err := LoadSnapshot(st.path)
	if err != nil {
		return fmt.Errorf("reload catalog: %w", err)
	}

	st.mu.Lock()
	st.snap = snap
	st.mu.Unlock()

	slog.Info("catalog reloaded", "path", st.path, "varieties", snap.Len())
	return nil
}
