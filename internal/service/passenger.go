package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"ridehail/internal/domain"
	"ridehail/internal/repository"
)

// PassengerService handles CRUD over passenger profiles, gated by the
// access policy.
type PassengerService struct {
	passengerRepo repository.PassengerRepository
	policy        AccessPolicy
}

// NewPassengerService creates a new PassengerService.
func NewPassengerService(passengerRepo repository.PassengerRepository) *PassengerService {
	return &PassengerService{passengerRepo: passengerRepo}
}

// PassengerInput contains the client-writable passenger fields. Nil fields
// are left untouched on update. There is no owner field; the owner is always
// the authenticated requester.
type PassengerInput struct {
	PreferredPaymentMethod *string
	HomeAddress            *string
	ProfilePicture         *string
	PreferredLanguage      *string
	EmergencyContact       *string
	IsVerified             *bool
}

// List returns the profiles the requester may see.
func (s *PassengerService) List(ctx context.Context, req Requester) ([]PassengerView, error) {
	passengers, err := s.passengerRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return NewPassengerViews(FilterOwned(s.policy, req, passengers)), nil
}

// Get returns a profile by ID. Records outside the requester's scope are
// indistinguishable from missing ones.
func (s *PassengerService) Get(ctx context.Context, req Requester, id string) (*PassengerView, error) {
	passenger, err := s.passengerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.policy.CanAccess(req, passenger.UserID) {
		return nil, repository.ErrNotFound
	}
	view := NewPassengerView(passenger)
	return &view, nil
}

// Create persists a new profile owned by the requester.
func (s *PassengerService) Create(ctx context.Context, req Requester, input PassengerInput) (*PassengerView, error) {
	passenger := &domain.Passenger{
		ID:     uuid.New().String(),
		UserID: req.UserID,
	}
	applyPassengerInput(passenger, input)

	if err := s.passengerRepo.Create(ctx, passenger); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrProfileExists
		}
		return nil, err
	}

	created, err := s.passengerRepo.GetByID(ctx, passenger.ID)
	if err != nil {
		return nil, err
	}
	view := NewPassengerView(created)
	return &view, nil
}

// Update applies the provided fields to an existing profile. The owner cannot
// be changed.
func (s *PassengerService) Update(ctx context.Context, req Requester, id string, input PassengerInput) (*PassengerView, error) {
	passenger, err := s.passengerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.policy.CanAccess(req, passenger.UserID) {
		return nil, repository.ErrNotFound
	}

	applyPassengerInput(passenger, input)
	if err := s.passengerRepo.Update(ctx, passenger); err != nil {
		return nil, err
	}

	view := NewPassengerView(passenger)
	return &view, nil
}

// Delete removes a profile within the requester's scope.
func (s *PassengerService) Delete(ctx context.Context, req Requester, id string) error {
	passenger, err := s.passengerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !s.policy.CanAccess(req, passenger.UserID) {
		return repository.ErrNotFound
	}
	return s.passengerRepo.Delete(ctx, id)
}

// MyProfile returns the requester's own profile.
func (s *PassengerService) MyProfile(ctx context.Context, req Requester) (*PassengerView, error) {
	passenger, err := s.passengerRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPassengerProfileNotFound
		}
		return nil, err
	}
	view := NewPassengerView(passenger)
	return &view, nil
}

func applyPassengerInput(passenger *domain.Passenger, input PassengerInput) {
	if input.PreferredPaymentMethod != nil {
		passenger.PreferredPaymentMethod = *input.PreferredPaymentMethod
	}
	if input.HomeAddress != nil {
		passenger.HomeAddress = *input.HomeAddress
	}
	if input.ProfilePicture != nil {
		passenger.ProfilePicture = *input.ProfilePicture
	}
	if input.PreferredLanguage != nil {
		passenger.PreferredLanguage = *input.PreferredLanguage
	}
	if input.EmergencyContact != nil {
		passenger.EmergencyContact = *input.EmergencyContact
	}
	if input.IsVerified != nil {
		passenger.IsVerified = *input.IsVerified
	}
}
