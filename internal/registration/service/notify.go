package service

import (
	"fmt"
	"net/url"
	"strings"

	"crease/internal/registration/models"
)

// BuildWhatsAppURL constructs the prefilled message handoff for a persisted
// registration. Delivery is fire-and-forget: the client opens the URL (or
// doesn't) and the registration stands either way. Returns empty when no
// destination number is configured.
func BuildWhatsAppURL(number string, record *models.Registration) string {
	if number == "" {
		return ""
	}

	lines := []string{
		"*New Team Registration* 🏏",
		"",
		fmt.Sprintf("*Team Name:* %s", record.TeamName),
		fmt.Sprintf("*Leader Name:* %s", record.LeaderName),
		fmt.Sprintf("*Contact:* %s", record.LeaderContact),
		fmt.Sprintf("*Location:* %s", record.Location),
		fmt.Sprintf("*Date:* %s", record.Date),
		fmt.Sprintf("*Payment Proof:* %s", record.PaymentProof),
	}
	message := strings.Join(lines, "\n")

	return "https://wa.me/" + number + "?text=" + url.QueryEscape(message)
}
