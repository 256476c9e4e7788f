package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// Seed populates the database with sample client requests for development.
// It is a no-op when any requests already exist.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM client_requests").Scan(&count); err != nil {
		return fmt.Errorf("seed check requests: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	samples := []struct {
		name, email, phone, message, trees, status string
	}{
		{
			name:    "John Smith",
			email:   "john@example.com",
			phone:   "555-0123",
			message: "Looking for native shade trees for a new residential development.",
			trees:   `["Bur Oak","Cedar Elm"]`,
			status:  "pending",
		},
		{
			name:    "Sarah Johnson",
			email:   "sarah@landscapeco.com",
			phone:   "555-0456",
			message: "Need ornamental trees for a commercial project, spring delivery.",
			trees:   `["Texas Redbud","Mexican Plum"]`,
			status:  "reviewed",
		},
		{
			name:    "Mike Davis",
			email:   "mike.davis@example.com",
			phone:   "",
			message: "Interested in bulk pricing on one-gallon stock.",
			trees:   `[]`,
			status:  "completed",
		},
	}

	for _, s := range samples {
		_, err := db.Exec(`
			INSERT INTO client_requests (name, email, phone, message, requested_trees, status)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, s.name, s.email, s.phone, s.message, s.trees, s.status)
		if err != nil {
			return fmt.Errorf("seed insert request: %w", err)
		}
	}

	slog.Info("database seeded with sample client requests", "count", len(samples))
	return nil
}
