// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"

	"greentree/internal/cache"
	"greentree/internal/catalog"
	"greentree/internal/models"
	"greentree/internal/session"
	"greentree/internal/store"
)

// Trees groups the public catalog query handlers. It reads a consistent
// catalog snapshot per request and checks the Valkey query cache before
// filtering. recentStore may be nil if Valkey is not configured.
type Trees struct {
	catalog     *catalog.Store
	queryCache  *cache.QueryCache
	recentStore *store.RecentStore
}

// NewTrees creates a new Trees handler group.
func NewTrees(cat *catalog.Store, queryCache *cache.QueryCache, recentStore *store.RecentStore) *Trees {
	return &Trees{
		catalog:     cat,
		queryCache:  queryCache,
		recentStore: recentStore,
	}
}

// parseFilter builds a catalog filter from the request's query string.
// Missing and malformed parameters fall back to defaults; the engine
// normalizes out-of-domain values itself.
func parseFilter(r *http.Request) catalog.Filter {
	q := r.URL.Query()

	f := catalog.Filter{
		SearchTerm:   q.Get("searchTerm"),
		Category:     q.Get("category"),
		SizeFilter:   q.Get("sizeFilter"),
		Availability: models.Availability(q.Get("availabilityFilter")),
		SortBy:       q.Get("sortBy"),
		SortOrder:    q.Get("sortOrder"),
	}

	if v := q.Get("priceMin"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			f.PriceMin = &p
		}
	}
	if v := q.Get("priceMax"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			f.PriceMax = &p
		}
	}
	if v := q.Get("page"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			f.Page = p
		}
	}
	return f
}

// List handles GET /api/trees: filter, sort, and paginate the catalog.
func (t *Trees) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	f := parseFilter(r)

	key := f.CacheKey()
	if cached, ok := t.queryCache.Get(ctx, key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(cached)
		return
	}

	result := catalog.Query(t.catalog.Snapshot().Trees(), f)

	body, err := json.Marshal(result)
	if err != nil {
		slog.Error("marshal query result failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	t.queryCache.Set(ctx, key, body)

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

// Detail handles GET /api/trees/{id}. A view from a cookied visitor is
// recorded on their recently-viewed list.
func (t *Trees) Detail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	tree := t.catalog.Snapshot().FindByID(id)
	if tree == nil {
		writeError(w, http.StatusNotFound, "tree not found")
		return
	}

	if t.recentStore != nil {
		visitorID, err := session.VisitorID(w, r)
		if err == nil {
			if err := t.recentStore.Record(r.Context(), visitorID, id); err != nil {
				slog.Warn("record recent view failed", "error", err, "tree", id)
			}
		}
	}

	writeJSON(w, http.StatusOK, tree)
}

// Export handles GET /api/trees/export: the filtered catalog as CSV.
// An empty result returns 204 instead of a header-only file.
func (t *Trees) Export(w http.ResponseWriter, r *http.Request) {
	f := parseFilter(r)
	trees := catalog.Search(t.catalog.Snapshot().Trees(), f)

	if len(trees) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	var buf bytes.Buffer
	if err := catalog.WriteCSV(&buf, trees); err != nil {
		slog.Error("csv export failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="tree-inventory.csv"`)
	w.Write(buf.Bytes())
}

// Filters handles GET /api/filters: the values the catalog actually
// contains, for populating filter controls.
func (t *Trees) Filters(w http.ResponseWriter, r *http.Request) {
	snap := t.catalog.Snapshot()
	min, max := snap.PriceBounds()

	counts := make(map[models.Availability]int)
	for _, tree := range snap.Trees() {
		counts[tree.Availability()]++
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"categories": snap.Categories(),
		"sizes": []string{
			models.SizeBucketSmall,
			models.SizeBucketMedium,
			models.SizeBucketLarge,
		},
		"availability": counts,
		"priceRange":   map[string]float64{"min": min, "max": max},
	})
}

// Tag handles GET /api/trees/{id}/tag: a printable QR code PNG linking
// the physical plant tag to the tree's iNaturalist page.
func (t *Trees) Tag(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	tree := t.catalog.Snapshot().FindByID(id)
	if tree == nil {
		writeError(w, http.StatusNotFound, "tree not found")
		return
	}

	png, err := qrcode.Encode(tree.INaturalistURL, qrcode.Medium, 256)
	if err != nil {
		slog.Error("qr code generation failed", "error", err, "tree", id)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="%s-tag.png"`, tree.SKU))
	w.Write(png)
}
