package models

import (
	"fmt"
	"time"
)

// Status is the moderation state of a registration.
type Status string

const (
	StatusPending  Status = "pending"
	StatusVerified Status = "verified"
	StatusRejected Status = "rejected"
)

// ParseStatus validates a status string against the three moderation states.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusVerified, StatusRejected:
		return Status(s), nil
	}
	return "", fmt.Errorf("invalid status %q", s)
}

// StatusFilter extends Status with the "all" wildcard used by moderation listings.
type StatusFilter string

const FilterAll StatusFilter = "all"

// ParseStatusFilter accepts the three statuses plus "all". Empty means "all".
func ParseStatusFilter(s string) (StatusFilter, error) {
	if s == "" || StatusFilter(s) == FilterAll {
		return FilterAll, nil
	}
	status, err := ParseStatus(s)
	if err != nil {
		return "", err
	}
	return StatusFilter(status), nil
}

// Matches reports whether a registration status passes the filter.
func (f StatusFilter) Matches(s Status) bool {
	return f == FilterAll || StatusFilter(s) == f
}

// Registration is one team's submission. ID, Status, and RegisteredAt are
// store-assigned at insert time; everything else comes from the submitter.
// Records are never deleted; only Status changes after creation.
type Registration struct {
	ID            string
	TeamName      string
	LeaderName    string
	LeaderContact string
	Location      string
	Date          string // free-text tournament-date label, not validated against a schedule
	PaymentProof  string // public URL of the uploaded proof image
	TermsAccepted bool
	Status        Status
	RegisteredAt  time.Time
}

// Submission is the submitter-supplied portion of a registration,
// handed to the store which assigns identity, status, and timestamp.
type Submission struct {
	TeamName      string
	LeaderName    string
	LeaderContact string
	Location      string
	Date          string
	PaymentProof  string
	TermsAccepted bool
}
