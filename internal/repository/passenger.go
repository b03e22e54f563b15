package repository

import (
	"context"

	"ridehail/internal/domain"
)

// PassengerRepository defines the persistence operations for passenger profiles.
type PassengerRepository interface {
	// Create adds a new passenger profile. Returns ErrDuplicate if the
	// owning user already has one.
	Create(ctx context.Context, passenger *domain.Passenger) error

	// GetByID retrieves a passenger profile by ID, with its owning user.
	GetByID(ctx context.Context, id string) (*domain.Passenger, error)

	// GetByUserID retrieves the passenger profile owned by the given user.
	GetByUserID(ctx context.Context, userID string) (*domain.Passenger, error)

	// GetAll retrieves all passenger profiles, with owning users.
	GetAll(ctx context.Context) ([]*domain.Passenger, error)

	// Update persists edits to the writable passenger fields.
	Update(ctx context.Context, passenger *domain.Passenger) error

	// Delete removes a passenger profile.
	Delete(ctx context.Context, id string) error
}
