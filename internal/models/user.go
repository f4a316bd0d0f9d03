// Package models contains the canonical domain types shared by the
// services, the HTTP layer and the storage layer. Provider-specific
// payloads are normalized into these shapes at the provider boundary
// and nothing outside that boundary depends on provider field names.
package models

import "time"

// Roles a user can hold. Admin is never assignable through the public
// registration path.
const (
	RoleDonor     = "donor"
	RoleVolunteer = "volunteer"
	RoleAdmin     = "admin"
)

// User is the single identity shape the rest of the system works with,
// regardless of which provider produced it.
type User struct {
	ID             string        `json:"id"`                       // immutable once assigned
	Email          string        `json:"email"`                    // unique, immutable
	Name           string        `json:"name"`                     // display name
	Role           string        `json:"role"`                     // donor | volunteer | admin
	ProfilePicture string        `json:"profilePicture,omitempty"` // optional reference
	Phone          string        `json:"phone,omitempty"`
	Address        string        `json:"address,omitempty"`
	Donations      int64         `json:"donations"`               // cumulative total in cents, donors
	VolunteerHours float64       `json:"volunteer_hours"`         // cumulative hours, volunteers
	AccessToken    string        `json:"accessToken,omitempty"`   // opaque credential token
	Subscription   *Subscription `json:"subscription,omitempty"`  // best-effort snapshot
	CreatedAt      time.Time     `json:"createdAt,omitempty"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
