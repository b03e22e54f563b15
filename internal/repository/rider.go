package repository

import (
	"context"

	"ridehail/internal/domain"
)

// RiderRepository defines the persistence operations for rider profiles.
type RiderRepository interface {
	// Create adds a new rider profile. Returns ErrDuplicate if the owning
	// user already has one.
	Create(ctx context.Context, rider *domain.Rider) error

	// GetByID retrieves a rider profile by ID, with its owning user.
	GetByID(ctx context.Context, id string) (*domain.Rider, error)

	// GetByUserID retrieves the rider profile owned by the given user.
	GetByUserID(ctx context.Context, userID string) (*domain.Rider, error)

	// GetAll retrieves all rider profiles, with owning users.
	GetAll(ctx context.Context) ([]*domain.Rider, error)

	// GetAvailable retrieves riders that are available and approved.
	GetAvailable(ctx context.Context) ([]*domain.Rider, error)

	// Update persists edits to the writable rider fields.
	Update(ctx context.Context, rider *domain.Rider) error

	// UpdateLocation sets the coordinate fields that are non-nil,
	// leaving the other untouched.
	UpdateLocation(ctx context.Context, id string, lat, lng *float64) error

	// Delete removes a rider profile.
	Delete(ctx context.Context, id string) error
}
