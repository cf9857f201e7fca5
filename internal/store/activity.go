// Package store persists the console's own data in PostgreSQL. The backend
// owns clients, topics and posts; the only console-side table is the
// activity log, an audit trail of every mutation the console issued.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"postdesk/internal/models"
)

// ActivityStore handles activity log operations.
type ActivityStore struct {
	db *sql.DB
}

// NewActivityStore creates a new ActivityStore.
func NewActivityStore(db *sql.DB) *ActivityStore {
	return &ActivityStore{db: db}
}

// Record logs one mutation attempt against the backend. Logging is
// best-effort: a failed insert is reported but never fails the request
// that triggered it.
func (s *ActivityStore) Record(ctx context.Context, action, resource, resourceID, detail string, succeeded bool) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO activity_log (action, resource, resource_id, detail, succeeded)
		VALUES ($1, $2, $3, $4, $5)
	`, action, resource, resourceID, detail, succeeded)
	if err != nil {
		slog.Warn("failed to record activity",
			"action", action,
			"resource", resource,
			"resource_id", resourceID,
			"error", err,
		)
		return
	}
	slog.Debug("activity recorded",
		"action", action,
		"resource", resource,
		"resource_id", resourceID,
		"succeeded", succeeded,
	)
}

// Recent returns the most recent activity entries, newest first. Limited
// to the specified count.
func (s *ActivityStore) Recent(ctx context.Context, limit int) ([]models.Activity, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, action, resource, resource_id, detail, succeeded, created_at
		FROM activity_log
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query activity log: %w", err)
	}
	defer rows.Close()

	var entries []models.Activity
	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(&a.ID, &a.Action, &a.Resource, &a.ResourceID, &a.Detail, &a.Succeeded, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity log: %w", err)
		}
		entries = append(entries, a)
	}
	return entries, rows.Err()
}
