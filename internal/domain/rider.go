package domain

import "time"

// VerificationStatus represents the review state of a rider's documents.
type VerificationStatus string

const (
	VerificationStatusPending  VerificationStatus = "pending"
	VerificationStatusApproved VerificationStatus = "approved"
	VerificationStatusRejected VerificationStatus = "rejected"
)

// Rider represents a rider profile owned 1:1 by a user.
// AverageRating, TotalRides and TotalEarnings are server-computed
// and never accepted from clients.
type Rider struct {
	ID                 string
	UserID             string
	User               *User
	ProfilePicture     string
	LicenseNumber      string
	LicensePicture     string
	IDNumberPicture    string
	VerificationStatus VerificationStatus
	VerificationNotes  string
	IsAvailable        bool
	CurrentLatitude    *float64
	CurrentLongitude   *float64
	AverageRating      float64
	TotalRides         int
	TotalEarnings      float64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Owner returns the ID of the user the profile belongs to.
func (r *Rider) Owner() string { return r.UserID }
