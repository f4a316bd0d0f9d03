package models

import "time"

// Volunteer application statuses.
const (
	ApplicationPending  = "pending"
	ApplicationApproved = "approved"
	ApplicationRejected = "rejected"
)

// VolunteerApplication is a submitted volunteer form. Skills and
// languages come in as free-form multi-selects from the site.
type VolunteerApplication struct {
	ID               string    `json:"id"`
	FirstName        string    `json:"firstName"`
	LastName         string    `json:"lastName"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Address          string    `json:"address"`
	City             string    `json:"city"`
	Country          string    `json:"country"`
	DateOfBirth      string    `json:"dateOfBirth"`
	Occupation       string    `json:"occupation"`
	Skills           []string  `json:"skills"`
	Experience       string    `json:"experience"`
	Availability     string    `json:"availability"`
	Motivation       string    `json:"motivation"`
	Languages        []string  `json:"languages"`
	EmergencyContact string    `json:"emergencyContact"`
	EmergencyPhone   string    `json:"emergencyPhone"`
	BackgroundCheck  bool      `json:"backgroundCheck"`
	TermsAccepted    bool      `json:"termsAccepted"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
}
