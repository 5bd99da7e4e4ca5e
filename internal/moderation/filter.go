// Package moderation implements the admin review workflow: filtered listings
// of registrations and one-at-a-time status transitions.
package moderation

import (
	"strings"

	"crease/internal/registration/models"
)

// Filter narrows a registration snapshot by free-text query and status.
// The query matches case-insensitively as a substring of team name, leader
// name, or location (OR semantics); the status filter intersects the result.
// Pure function: input order is preserved and the slice is never mutated.
func Filter(records []*models.Registration, query string, status models.StatusFilter) []*models.Registration {
	query = strings.ToLower(strings.TrimSpace(query))

	filtered := make([]*models.Registration, 0, len(records))
	for _, r := range records {
		if !status.Matches(r.Status) {
			continue
		}
		if query != "" && !matchesQuery(r, query) {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

func matchesQuery(r *models.Registration, query string) bool {
	return strings.Contains(strings.ToLower(r.TeamName), query) ||
		strings.Contains(strings.ToLower(r.LeaderName), query) ||
		strings.Contains(strings.ToLower(r.Location), query)
}

// StatusCounts tallies records per moderation state for the dashboard cards.
type StatusCounts struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Verified int `json:"verified"`
	Rejected int `json:"rejected"`
}

// Counts tallies a snapshot by status. Pure function.
func Counts(records []*models.Registration) StatusCounts {
	counts := StatusCounts{Total: len(records)}
	for _, r := range records {
		switch r.Status {
		case models.StatusPending:
			counts.Pending++
		case models.StatusVerified:
			counts.Verified++
		case models.StatusRejected:
			counts.Rejected++
		}
	}
	return counts
}
