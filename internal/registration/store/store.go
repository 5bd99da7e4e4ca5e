// Package store persists registration records. The collection is append-only:
// inserts and status updates only, never deletes.
package store

import (
	"context"

	"crease/internal/registration/models"
	"crease/internal/sentinel"
)

// ErrNotFound is returned when the requested registration does not exist.
var ErrNotFound = sentinel.ErrNotFound

// Error Contract:
// All store methods follow this error pattern:
// - Return ErrNotFound when the requested record does not exist
// - Return nil for successful operations
// - Return wrapped errors with context for infrastructure failures
type Store interface {
	// Insert assigns id, pending status, and a server-side timestamp, then
	// persists the record. The returned registration is the stored form.
	Insert(ctx context.Context, sub models.Submission) (*models.Registration, error)

	// ListAll returns a full snapshot ordered by RegisteredAt descending.
	// There is no partial-result contract: it is all-or-nothing.
	ListAll(ctx context.Context) ([]*models.Registration, error)

	// UpdateStatus sets the record's status. Setting the same status twice is
	// an observable no-op. Concurrent writers resolve last-write-wins.
	UpdateStatus(ctx context.Context, id string, status models.Status) error
}
