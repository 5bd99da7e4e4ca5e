// Package validation holds input size limits shared across handlers.
package validation

// Registration form field limits. Generous for real teams while bounding
// what a hostile client can push into the store.
const (
	// MaxTeamNameLength is the maximum length of a team name.
	MaxTeamNameLength = 100

	// MaxLeaderNameLength is the maximum length of a leader name.
	MaxLeaderNameLength = 100

	// MaxContactLength is the maximum length of a contact number.
	MaxContactLength = 20

	// MaxLocationLength is the maximum length of a location string.
	MaxLocationLength = 150

	// MaxDateLength is the maximum length of the preferred-date string.
	MaxDateLength = 50

	// MaxProofURLLength is the maximum length of a payment proof URL.
	MaxProofURLLength = 2048
)

// ExceedsLength reports whether a value breaks its limit. Lengths are
// measured in bytes, matching what the store persists.
func ExceedsLength(value string, max int) bool {
	return len(value) > max
}
