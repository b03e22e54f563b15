package service

import "errors"

var (
	// ErrPermissionDenied is returned when a non-owner, non-staff requester
	// mutates another user's profile. The message is the exact body clients see.
	ErrPermissionDenied = errors.New("Permission denied")

	// ErrPassengerProfileNotFound is returned when the requester has no passenger profile.
	ErrPassengerProfileNotFound = errors.New("Passenger profile not found")

	// ErrRiderProfileNotFound is returned when the requester has no rider profile.
	ErrRiderProfileNotFound = errors.New("Rider profile not found")

	// ErrEmailTaken is returned when registering with an email that is already in use.
	ErrEmailTaken = errors.New("user with this email already exists")

	// ErrPasswordMismatch is returned when password and password2 differ.
	ErrPasswordMismatch = errors.New("Password fields didn't match.")

	// ErrPasswordTooShort is returned when the password has fewer than 8 characters.
	ErrPasswordTooShort = errors.New("password must contain at least 8 characters")

	// ErrPasswordEntirelyNumeric is returned when the password is all digits.
	ErrPasswordEntirelyNumeric = errors.New("password cannot be entirely numeric")

	// ErrMissingRequiredFields is returned when registration fields are incomplete.
	ErrMissingRequiredFields = errors.New("email, password, first_name and last_name are required")

	// ErrInvalidEmail is returned when the email does not parse.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrInvalidUserType is returned when user_type is not passenger or rider.
	ErrInvalidUserType = errors.New("invalid user type")

	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidLocation is returned when coordinates are out of range.
	ErrInvalidLocation = errors.New("invalid location")

	// ErrInvalidVerificationStatus is returned for an unknown verification status value.
	ErrInvalidVerificationStatus = errors.New("invalid verification status")

	// ErrProfileExists is returned when a user already has a profile of that type.
	ErrProfileExists = errors.New("profile already exists for this user")
)
