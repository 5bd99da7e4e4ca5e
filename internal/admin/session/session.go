// Package session stores admin dashboard sessions. A session lives from
// login until explicit logout; there is no idle or absolute expiry.
package session

import (
	"context"

	"crease/internal/sentinel"
)

// ErrNotFound is returned when the session does not exist or was logged out.
var ErrNotFound = sentinel.ErrNotFound

// Session is one admin login.
type Session struct {
	ID                string
	Actor             string
	DeviceDisplayName string
	CreatedAtUnix     int64
}

// Store persists admin sessions.
type Store interface {
	// Create persists the session. Sessions carry no TTL: they survive until
	// Delete removes them.
	Create(ctx context.Context, s *Session) error

	// FindByID returns the session or ErrNotFound.
	FindByID(ctx context.Context, id string) (*Session, error)

	// Delete removes the session. Deleting an absent session returns
	// ErrNotFound.
	Delete(ctx context.Context, id string) error
}
