package models

import "time"

// RegistrationView is the JSON representation of a registration record.
type RegistrationView struct {
	ID            string `json:"id"`
	TeamName      string `json:"teamName"`
	LeaderName    string `json:"leaderName"`
	LeaderContact string `json:"leaderContact"`
	Location      string `json:"location"`
	Date          string `json:"date"`
	PaymentProof  string `json:"paymentProof"`
	TermsAccepted bool   `json:"termsAccepted"`
	Status        string `json:"status"`
	RegisteredAt  string `json:"registeredAt"`
}

// ToView maps a domain registration to its JSON view.
func ToView(r *Registration) RegistrationView {
	return RegistrationView{
		ID:            r.ID,
		TeamName:      r.TeamName,
		LeaderName:    r.LeaderName,
		LeaderContact: r.LeaderContact,
		Location:      r.Location,
		Date:          r.Date,
		PaymentProof:  r.PaymentProof,
		TermsAccepted: r.TermsAccepted,
		Status:        string(r.Status),
		RegisteredAt:  r.RegisteredAt.UTC().Format(time.RFC3339),
	}
}

// ToViews maps a slice of registrations, preserving order.
func ToViews(records []*Registration) []RegistrationView {
	views := make([]RegistrationView, 0, len(records))
	for _, r := range records {
		views = append(views, ToView(r))
	}
	return views
}

// SubmitResponse is returned after a successful registration.
type SubmitResponse struct {
	ID              string `json:"id"`
	Status          string `json:"status"`
	RegisteredAt    string `json:"registeredAt"`
	NotificationURL string `json:"notificationUrl,omitempty"`
}
