// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"greentree/internal/catalog"
	"greentree/internal/models"
	"greentree/internal/session"
	"greentree/internal/store"
)

// Wishlist groups the per-visitor wishlist and recently-viewed handlers.
// All endpoints identify the visitor by cookie, minting one on first use.
type Wishlist struct {
	catalog       *catalog.Store
	wishlistStore *store.WishlistStore
	recentStore   *store.RecentStore
}

// NewWishlist creates a new Wishlist handler group.
func NewWishlist(cat *catalog.Store, wishlistStore *store.WishlistStore, recentStore *store.RecentStore) *Wishlist {
	return &Wishlist{
		catalog:       cat,
		wishlistStore: wishlistStore,
		recentStore:   recentStore,
	}
}

// resolveTrees maps stored ids to catalog entries, dropping ids that no
// longer exist after a catalog rebuild.
func (h *Wishlist) resolveTrees(ids []string) []models.Tree {
	snap := h.catalog.Snapshot()
	trees := make([]models.Tree, 0, len(ids))
	for _, id := range ids {
		if t := snap.FindByID(id); t != nil {
			trees = append(trees, *t)
		}
	}
	return trees
}

// List handles GET /api/wishlist: the visitor's wishlisted trees.
func (h *Wishlist) List(w http.ResponseWriter, r *http.Request) {
	if h.wishlistStore == nil {
		writeError(w, http.StatusServiceUnavailable, "wishlist is not available")
		return
	}
	visitorID, err := session.VisitorID(w, r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	ids, err := h.wishlistStore.List(r.Context(), visitorID)
	if err != nil {
		slog.Error("wishlist list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"trees": h.resolveTrees(ids)})
}

// Toggle handles POST /api/wishlist/{id}: flip a tree's wishlist
// membership. Responds with the resulting state.
func (h *Wishlist) Toggle(w http.ResponseWriter, r *http.Request) {
	if h.wishlistStore == nil {
		writeError(w, http.StatusServiceUnavailable, "wishlist is not available")
		return
	}
	id := chi.URLParam(r, "id")
	if h.catalog.Snapshot().FindByID(id) == nil {
		writeError(w, http.StatusNotFound, "tree not found")
		return
	}

	visitorID, err := session.VisitorID(w, r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	present, err := h.wishlistStore.Toggle(r.Context(), visitorID, id)
	if err != nil {
		slog.Error("wishlist toggle failed", "error", err, "tree", id)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"id": id, "wishlisted": present})
}

// Remove handles DELETE /api/wishlist/{id}. Removing an absent id succeeds.
func (h *Wishlist) Remove(w http.ResponseWriter, r *http.Request) {
	if h.wishlistStore == nil {
		writeError(w, http.StatusServiceUnavailable, "wishlist is not available")
		return
	}
	visitorID, err := session.VisitorID(w, r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.wishlistStore.Remove(r.Context(), visitorID, id); err != nil {
		slog.Error("wishlist remove failed", "error", err, "tree", id)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Clear handles DELETE /api/wishlist.
func (h *Wishlist) Clear(w http.ResponseWriter, r *http.Request) {
	if h.wishlistStore == nil {
		writeError(w, http.StatusServiceUnavailable, "wishlist is not available")
		return
	}
	visitorID, err := session.VisitorID(w, r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if err := h.wishlistStore.Clear(r.Context(), visitorID); err != nil {
		slog.Error("wishlist clear failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Export handles GET /api/wishlist/export: the visitor's wishlist as CSV,
// in the same column layout as the catalog export.
func (h *Wishlist) Export(w http.ResponseWriter, r *http.Request) {
	if h.wishlistStore == nil {
		writeError(w, http.StatusServiceUnavailable, "wishlist is not available")
		return
	}
	visitorID, err := session.VisitorID(w, r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	ids, err := h.wishlistStore.List(r.Context(), visitorID)
	if err != nil {
		slog.Error("wishlist export failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	trees := h.resolveTrees(ids)
	if len(trees) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	var buf bytes.Buffer
	if err := catalog.WriteCSV(&buf, trees); err != nil {
		slog.Error("wishlist csv failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="wishlist.csv"`)
	w.Write(buf.Bytes())
}

// Recent handles GET /api/recent: the visitor's recently-viewed trees,
// most recent first.
func (h *Wishlist) Recent(w http.ResponseWriter, r *http.Request) {
	if h.recentStore == nil {
		writeError(w, http.StatusServiceUnavailable, "recently viewed is not available")
		return
	}
	visitorID, err := session.VisitorID(w, r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	ids, err := h.recentStore.List(r.Context(), visitorID)
	if err != nil {
		slog.Error("recent list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"trees": h.resolveTrees(ids)})
}
