package models

import (
	"strings"

	dErrors "crease/pkg/domain-errors"
	"crease/pkg/platform/validation"
)

// SubmitRequest is the request body for creating a registration.
// Field names mirror the public form so error keys map directly onto inputs.
type SubmitRequest struct {
	TeamName      string `json:"teamName"`
	LeaderName    string `json:"leaderName"`
	LeaderContact string `json:"leaderContact"`
	Location      string `json:"location"`
	Date          string `json:"date"`
	PaymentProof  string `json:"paymentProof"`
	TermsAccepted bool   `json:"termsAccepted"`
}

// Normalize trims surrounding whitespace from all text fields.
func (r *SubmitRequest) Normalize() {
	r.TeamName = strings.TrimSpace(r.TeamName)
	r.LeaderName = strings.TrimSpace(r.LeaderName)
	r.LeaderContact = strings.TrimSpace(r.LeaderContact)
	r.Location = strings.TrimSpace(r.Location)
	r.Date = strings.TrimSpace(r.Date)
	r.PaymentProof = strings.TrimSpace(r.PaymentProof)
}

// FieldErrors runs required-field checks and returns a field→message map.
// An empty map means the request may progress to persistence.
func (r *SubmitRequest) FieldErrors() map[string]string {
	errs := make(map[string]string)
	if r.TeamName == "" {
		errs["teamName"] = "Team Name is required"
	}
	if r.LeaderName == "" {
		errs["leaderName"] = "Leader Name is required"
	}
	if r.LeaderContact == "" {
		errs["leaderContact"] = "Contact Number is required"
	}
	if r.Location == "" {
		errs["location"] = "Location is required"
	}
	if r.Date == "" {
		errs["date"] = "Registration Date is required"
	}
	if r.PaymentProof == "" {
		errs["paymentProof"] = "Payment proof is required"
	}
	if !r.TermsAccepted {
		errs["termsAccepted"] = "You must agree to the terms"
	}

	// Length caps only apply to fields that passed the required checks, so a
	// missing field reports "required" rather than two messages.
	limits := []struct {
		field, value string
		max          int
		label        string
	}{
		{"teamName", r.TeamName, validation.MaxTeamNameLength, "Team Name"},
		{"leaderName", r.LeaderName, validation.MaxLeaderNameLength, "Leader Name"},
		{"leaderContact", r.LeaderContact, validation.MaxContactLength, "Contact Number"},
		{"location", r.Location, validation.MaxLocationLength, "Location"},
		{"date", r.Date, validation.MaxDateLength, "Registration Date"},
		{"paymentProof", r.PaymentProof, validation.MaxProofURLLength, "Payment proof"},
	}
	for _, l := range limits {
		if _, taken := errs[l.field]; taken {
			continue
		}
		if validation.ExceedsLength(l.value, l.max) {
			errs[l.field] = l.label + " is too long"
		}
	}
	return errs
}

// Validate implements httputil.Validatable.
func (r *SubmitRequest) Validate() error {
	if errs := r.FieldErrors(); len(errs) > 0 {
		return dErrors.NewValidation(errs)
	}
	return nil
}

// Submission converts a validated request into the store-facing submission.
func (r *SubmitRequest) Submission() Submission {
	return Submission{
		TeamName:      r.TeamName,
		LeaderName:    r.LeaderName,
		LeaderContact: r.LeaderContact,
		Location:      r.Location,
		Date:          r.Date,
		PaymentProof:  r.PaymentProof,
		TermsAccepted: r.TermsAccepted,
	}
}

// UpdateStatusRequest is the request body for a moderation status transition.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Validate implements httputil.Validatable.
func (r *UpdateStatusRequest) Validate() error {
	if _, err := ParseStatus(r.Status); err != nil {
		return dErrors.New(dErrors.CodeBadRequest, err.Error())
	}
	return nil
}
