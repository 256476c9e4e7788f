// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// RequestStatus represents the review state of a client request.
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusReviewed  RequestStatus = "reviewed"
	RequestStatusCompleted RequestStatus = "completed"
)

// ValidRequestStatus reports whether s is one of the known statuses.
func ValidRequestStatus(s RequestStatus) bool {
	switch s {
	case RequestStatusPending, RequestStatusReviewed, RequestStatusCompleted:
		return true
	}
	return false
}

// ClientRequest is an inquiry submitted through the public request form:
// contact details, a free-text message, and the common names of any trees
// the client is interested in.
type ClientRequest struct {
	ID             uuid.UUID     `json:"id"`
	Name           string        `json:"name"`
	Email          string        `json:"email"`
	Phone          string        `json:"phone,omitempty"`
	Message        string        `json:"message"`
	RequestedTrees []string      `json:"requestedTrees"`
	Status         RequestStatus `json:"status"`
	CreatedAt      time.Time     `json:"createdAt"`
}
