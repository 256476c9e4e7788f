// handler_test.go provides shared helpers for handler tests. The catalog
// handlers only need a catalog file on disk; Valkey- and PostgreSQL-backed
// features degrade to 503 when their stores are nil, so these tests run
// without any services.
package handlers

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"

	"greentree/internal/builder"
	"greentree/internal/catalog"
	"greentree/internal/models"
)

func testTrees() []models.Tree {
	return []models.Tree{
		{ID: "1", CommonName: "Bur Oak", BotanicalName: "Quercus macrocarpa", INaturalistURL: "https://www.inaturalist.org/search?q=Quercus+macrocarpa", Category: "Large Trees", Size: "3-5 Gallon", Price: 65, QuantityInStock: 12, SKU: "BUR-OAK-001"},
		{ID: "2", CommonName: "Live Oak", BotanicalName: "Quercus virginiana", INaturalistURL: "https://www.inaturalist.org/search?q=Quercus+virginiana", Category: "Large Trees", Size: "1 Gallon", Price: 25, QuantityInStock: 3, SKU: "LIV-OAK-002"},
		{ID: "3", CommonName: "Cedar Elm", BotanicalName: "Ulmus crassifolia", INaturalistURL: "https://www.inaturalist.org/search?q=Ulmus+crassifolia", Category: "Large Trees", Size: "3-5 Gallon", Price: 45, QuantityInStock: 0, SKU: "CED-ELM-003"},
		{ID: "4", CommonName: "Texas Redbud", BotanicalName: "Cercis canadensis", INaturalistURL: "https://www.inaturalist.org/search?q=Cercis+canadensis", Category: "Small Trees", Size: "1 Gallon", Price: 20, QuantityInStock: 8, SKU: "TEX-RED-004"},
	}
}

// testCatalog writes a catalog file to a temp dir and loads a store over it.
func testCatalog(t *testing.T) *catalog.Store {
	t.Helper()

	dir := t.TempDir()
	if _, err := builder.WriteCatalog(dir, testTrees()); err != nil {
		t.Fatalf("WriteCatalog: %v", err)
	}
	store, err := catalog.NewStore(filepath.Join(dir, builder.CatalogFileName))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

// newTestRouter wires the handler groups onto a chi router the way the
// real server does, with no Valkey or PostgreSQL behind them.
func newTestRouter(t *testing.T, cat *catalog.Store) chi.Router {
	t.Helper()

	trees := NewTrees(cat, nil, nil)
	wishlist := NewWishlist(cat, nil, nil)
	requests := NewRequests(nil)
	admin := NewAdmin(cat, nil, nil)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Route("/trees", func(r chi.Router) {
			r.Get("/", trees.List)
			r.Get("/export", trees.Export)
			r.Get("/{id}", trees.Detail)
			r.Get("/{id}/tag", trees.Tag)
		})
		r.Get("/filters", trees.Filters)
		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", wishlist.List)
			r.Post("/{id}", wishlist.Toggle)
		})
		r.Get("/requests", requests.List)
		r.Post("/requests", requests.Create)
	})
	r.Route("/admin/api", func(r chi.Router) {
		r.Get("/metrics", admin.Metrics)
		r.Get("/requests", admin.ListRequests)
		r.Post("/catalog/reload", admin.ReloadCatalog)
	})
	return r
}

// get runs a GET request through the router and returns the recorder.
func get(t *testing.T, r chi.Router, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}
