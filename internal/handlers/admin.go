// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"greentree/internal/cache"
	"greentree/internal/catalog"
	"greentree/internal/models"
	"greentree/internal/store"
)

// Admin groups the dashboard handlers: inventory metrics, the client
// request workflow, and catalog reload. requestStore may be nil if
// PostgreSQL is not configured.
type Admin struct {
	catalog      *catalog.Store
	requestStore *store.RequestStore
	queryCache   *cache.QueryCache
}

// NewAdmin creates a new Admin handler group.
func NewAdmin(cat *catalog.Store, requestStore *store.RequestStore, queryCache *cache.QueryCache) *Admin {
	return &Admin{
		catalog:      cat,
		requestStore: requestStore,
		queryCache:   queryCache,
	}
}

// Metrics handles GET /admin/api/metrics: inventory statistics over the
// full catalog, plus request counts per status when the database is up.
func (h *Admin) Metrics(w http.ResponseWriter, r *http.Request) {
	snap := h.catalog.Snapshot()
	metrics := catalog.ComputeMetrics(snap.Trees())

	payload := map[string]any{
		"generatedAt": snap.GeneratedAt(),
		"inventory":   metrics,
	}

	if h.requestStore != nil {
		counts, err := h.requestStore.CountByStatus()
		if err != nil {
			slog.Warn("request counts failed", "error", err)
		} else {
			payload["requests"] = counts
		}
	}

	writeJSON(w, http.StatusOK, payload)
}

// ListRequests handles GET /admin/api/requests, optionally filtered by
// ?status=pending|reviewed|completed.
func (h *Admin) ListRequests(w http.ResponseWriter, r *http.Request) {
	if h.requestStore == nil {
		writeError(w, http.StatusServiceUnavailable, "requests are not available")
		return
	}

	status := models.RequestStatus(r.URL.Query().Get("status"))
	if status != "" && !models.ValidRequestStatus(status) {
		writeError(w, http.StatusBadRequest, "unknown status")
		return
	}

	requests, err := h.requestStore.List(status)
	if err != nil {
		slog.Error("list requests failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if requests == nil {
		requests = []models.ClientRequest{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"requests": requests})
}

// UpdateRequestStatus handles PUT /admin/api/requests/{id}/status.
func (h *Admin) UpdateRequestStatus(w http.ResponseWriter, r *http.Request) {
	if h.requestStore == nil {
		writeError(w, http.StatusServiceUnavailable, "requests are not available")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	var in struct {
		Status models.RequestStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if !models.ValidRequestStatus(in.Status) {
		writeError(w, http.StatusUnprocessableEntity, "unknown status")
		return
	}

	err = h.requestStore.UpdateStatus(id, in.Status)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "request not found")
		return
	}
	if err != nil {
		slog.Error("update request status failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	slog.Info("request status updated", "id", id, "status", in.Status)
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "status": in.Status})
}

// ReloadCatalog handles POST /admin/api/catalog/reload: re-read the
// catalog file after a rebuild and flush the query cache.
func (h *Admin) ReloadCatalog(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.Reload(); err != nil {
		slog.Error("catalog reload failed", "error", err)
		writeError(w, http.StatusInternalServerError, "catalog reload failed")
		return
	}

	h.queryCache.InvalidateAll(r.Context())

	snap := h.catalog.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"varieties":   snap.Len(),
		"generatedAt": snap.GeneratedAt(),
	})
}
