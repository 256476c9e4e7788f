// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"greentree/internal/models"
	"greentree/internal/store"
)

// Requests groups the public client-request intake handlers.
type Requests struct {
	requestStore *store.RequestStore
}

// NewRequests creates a new Requests handler group.
func NewRequests(requestStore *store.RequestStore) *Requests {
	return &Requests{requestStore: requestStore}
}

// requestInput is the POST /api/requests payload.
type requestInput struct {
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone"`
	Message        string   `json:"message"`
	RequestedTrees []string `json:"requestedTrees"`
}

// Create handles POST /api/requests: a client inquiry from the public
// request form. New requests always start pending.
func (h *Requests) Create(w http.ResponseWriter, r *http.Request) {
	var in requestInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if msg := validateRequest(in.Name, in.Email, in.Message, in.RequestedTrees); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	if msg := validatePhone(in.Phone); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	if h.requestStore == nil {
		writeError(w, http.StatusServiceUnavailable, "request intake is not available")
		return
	}

	created, err := h.requestStore.Create(&models.ClientRequest{
		Name:           strings.TrimSpace(in.Name),
		Email:          strings.TrimSpace(in.Email),
		Phone:          strings.TrimSpace(in.Phone),
		Message:        strings.TrimSpace(in.Message),
		RequestedTrees: in.RequestedTrees,
	})
	if err != nil {
		slog.Error("create client request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	slog.Info("client request received", "id", created.ID, "email", created.Email)
	writeJSON(w, http.StatusCreated, created)
}

// List handles GET /api/requests: recent submissions, newest first, for
// the request page's submission history.
func (h *Requests) List(w http.ResponseWriter, r *http.Request) {
	if h.requestStore == nil {
		writeError(w, http.StatusServiceUnavailable, "request intake is not available")
		return
	}

	requests, err := h.requestStore.List("")
	if err != nil {
		slog.Error("list client requests failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if requests == nil {
		requests = []models.ClientRequest{}
	}

	writeJSON(w, http.StatusOK, requests)
}
