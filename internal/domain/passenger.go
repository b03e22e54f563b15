package domain

import "time"

// Passenger represents a passenger profile owned 1:1 by a user.
type Passenger struct {
	ID                     string
	UserID                 string
	User                   *User
	PreferredPaymentMethod string
	HomeAddress            string
	ProfilePicture         string
	PreferredLanguage      string
	EmergencyContact       string
	IsVerified             bool
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// Owner returns the ID of the user the profile belongs to.
func (p *Passenger) Owner() string { return p.UserID }
