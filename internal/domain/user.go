package domain

import "time"

// UserType represents the role a user registered as.
type UserType string

const (
	UserTypePassenger UserType = "passenger"
	UserTypeRider     UserType = "rider"
)

// User represents an account in the system.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	PhoneNumber  string
	UserType     UserType
	IsStaff      bool
	DateJoined   time.Time
}
