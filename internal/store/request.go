// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store persists client requests in PostgreSQL and per-visitor
// wishlist and recently-viewed state in Valkey.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"greentree/internal/models"
)

// RequestStore manages client requests in the database.
type RequestStore struct {
	db *sql.DB
}

// NewRequestStore returns a new RequestStore.
func NewRequestStore(db *sql.DB) *RequestStore {
	return &RequestStore{db: db}
}

const requestColumns = `id, name, email, phone, message, requested_trees, status, created_at`

// scanRequest scans a row into a ClientRequest struct.
func scanRequest(scanner interface{ Scan(...any) error }) (*models.ClientRequest, error) {
	var r models.ClientRequest
	var trees []byte
	err := scanner.Scan(
		&r.ID, &r.Name, &r.Email, &r.Phone,
		&r.Message, &trees, &r.Status, &r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	// requested_trees is a jsonb column.
	if len(trees) > 0 {
		if err := json.Unmarshal(trees, &r.RequestedTrees); err != nil {
			return nil, fmt.Errorf("decode requested_trees: %w", err)
		}
	}
	return &r, nil
}

// Create inserts a new client request with pending status and returns it.
func (s *RequestStore) Create(r *models.ClientRequest) (*models.ClientRequest, error) {
	if r.RequestedTrees == nil {
		r.RequestedTrees = []string{}
	}
	trees, err := json.Marshal(r.RequestedTrees)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	row := s.db.QueryRow(`
		INSERT INTO client_requests (name, email, phone, message, requested_trees, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+requestColumns,
		r.Name, r.Email, r.Phone, r.Message, trees, models.RequestStatusPending,
	)
	result, err := scanRequest(row)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return result, nil
}

// List returns client requests newest first, optionally filtered by status.
func (s *RequestStore) List(status models.RequestStatus) ([]models.ClientRequest, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if status == "" {
		rows, err = s.db.Query(`SELECT ` + requestColumns + ` FROM client_requests ORDER BY created_at DESC`)
	} else {
		rows, err = s.db.Query(`SELECT `+requestColumns+` FROM client_requests WHERE status = $1 ORDER BY created_at DESC`, status)
	}
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer rows.Close()

	var items []models.ClientRequest
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		items = append(items, *r)
	}
	return items, rows.Err()
}

// FindByID retrieves a client request by ID. Returns nil if not found.
func (s *RequestStore) FindByID(id uuid.UUID) (*models.ClientRequest, error) {
	row := s.db.QueryRow(`SELECT `+requestColumns+` FROM client_requests WHERE id = $1`, id)
	r, err := scanRequest(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find request by id: %w", err)
	}
	return r, nil
}

// UpdateStatus moves a request through the pending/reviewed/completed
// workflow. Returns sql.ErrNoRows if the request does not exist.
func (s *RequestStore) UpdateStatus(id uuid.UUID, status models.RequestStatus) error {
	if !models.ValidRequestStatus(status) {
		return fmt.Errorf("update request status: invalid status %q", status)
	}
	result, err := s.db.Exec(`UPDATE client_requests SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("update request status: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update request status: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CountByStatus returns the number of requests per status.
func (s *RequestStore) CountByStatus() (map[models.RequestStatus]int, error) {
	rows, err := s.db.Query(`SELECT status, COUNT(*) FROM client_requests GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count requests: %w", err)
	}
	defer rows.Close()

	counts := map[models.RequestStatus]int{}
	for rows.Next() {
		var status models.RequestStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan request count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
