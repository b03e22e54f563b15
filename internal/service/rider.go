package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"ridehail/internal/domain"
	"ridehail/internal/observability"
	"ridehail/internal/redis"
	"ridehail/internal/repository"
)

// RiderService handles CRUD over rider profiles, the location update and the
// cached availability listing.
type RiderService struct {
	riderRepo repository.RiderRepository
	cache     redis.AvailabilityCacheInterface
	policy    AccessPolicy
}

// NewRiderService creates a new RiderService.
func NewRiderService(riderRepo repository.RiderRepository, cache redis.AvailabilityCacheInterface) *RiderService {
	return &RiderService{riderRepo: riderRepo, cache: cache}
}

// RiderInput contains the client-writable rider fields. Nil fields are left
// untouched on update. AverageRating, TotalRides and TotalEarnings are
// deliberately absent: they are server-computed.
type RiderInput struct {
	ProfilePicture     *string
	LicenseNumber      *string
	LicensePicture     *string
	IDNumberPicture    *string
	VerificationStatus *string
	VerificationNotes  *string
	IsAvailable        *bool
	CurrentLatitude    *float64
	CurrentLongitude   *float64
}

// List returns the profiles the requester may see.
func (s *RiderService) List(ctx context.Context, req Requester) ([]RiderView, error) {
	riders, err := s.riderRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return NewRiderViews(FilterOwned(s.policy, req, riders)), nil
}

// Get returns a profile by ID. Records outside the requester's scope are
// indistinguishable from missing ones.
func (s *RiderService) Get(ctx context.Context, req Requester, id string) (*RiderView, error) {
	rider, err := s.riderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.policy.CanAccess(req, rider.UserID) {
		return nil, repository.ErrNotFound
	}
	view := NewRiderView(rider)
	return &view, nil
}

// Create persists a new profile owned by the requester. New riders start
// unverified and unavailable unless the payload says otherwise.
func (s *RiderService) Create(ctx context.Context, req Requester, input RiderInput) (*RiderView, error) {
	rider := &domain.Rider{
		ID:                 uuid.New().String(),
		UserID:             req.UserID,
		VerificationStatus: domain.VerificationStatusPending,
	}
	if err := applyRiderInput(rider, input); err != nil {
		return nil, err
	}

	if err := s.riderRepo.Create(ctx, rider); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrProfileExists
		}
		return nil, err
	}

	created, err := s.riderRepo.GetByID(ctx, rider.ID)
	if err != nil {
		return nil, err
	}
	view := NewRiderView(created)
	return &view, nil
}

// Update applies the provided fields to an existing profile. The owner and
// the server-computed fields cannot be changed. Availability and verification
// edits through this path do not touch the availability cache; only the
// location update invalidates it.
func (s *RiderService) Update(ctx context.Context, req Requester, id string, input RiderInput) (*RiderView, error) {
	rider, err := s.riderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.policy.CanAccess(req, rider.UserID) {
		return nil, repository.ErrNotFound
	}

	if err := applyRiderInput(rider, input); err != nil {
		return nil, err
	}
	if err := s.riderRepo.Update(ctx, rider); err != nil {
		return nil, err
	}

	view := NewRiderView(rider)
	return &view, nil
}

// Delete removes a profile within the requester's scope.
func (s *RiderService) Delete(ctx context.Context, req Requester, id string) error {
	rider, err := s.riderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !s.policy.CanAccess(req, rider.UserID) {
		return repository.ErrNotFound
	}
	return s.riderRepo.Delete(ctx, id)
}

// MyProfile returns the requester's own profile.
func (s *RiderService) MyProfile(ctx context.Context, req Requester) (*RiderView, error) {
	rider, err := s.riderRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRiderProfileNotFound
		}
		return nil, err
	}
	view := NewRiderView(rider)
	return &view, nil
}

// UpdateLocation sets the coordinate fields that were provided, each optional
// and independently settable. Owner or staff only. A successful write
// invalidates the availability cache.
func (s *RiderService) UpdateLocation(ctx context.Context, req Requester, id string, lat, lng *float64) (*RiderView, error) {
	if lat != nil && !isValidLatitude(*lat) {
		return nil, ErrInvalidLocation
	}
	if lng != nil && !isValidLongitude(*lng) {
		return nil, ErrInvalidLocation
	}

	rider, err := s.riderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.policy.CanAccess(req, rider.UserID) {
		return nil, ErrPermissionDenied
	}

	if err := s.riderRepo.UpdateLocation(ctx, id, lat, lng); err != nil {
		return nil, err
	}

	if err := s.cache.Invalidate(ctx); err != nil {
		return nil, err
	}

	updated, err := s.riderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := NewRiderView(updated)
	return &view, nil
}

// ListAvailable returns the serialized listing of available, approved riders.
// A fresh cache slot is returned verbatim; otherwise the listing is recomputed,
// cached with the fixed TTL and returned.
func (s *RiderService) ListAvailable(ctx context.Context) (json.RawMessage, error) {
	cached, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		observability.AvailabilityCacheHits.Inc()
		return cached, nil
	}
	observability.AvailabilityCacheMisses.Inc()

	riders, err := s.riderRepo.GetAvailable(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(NewRiderViews(riders))
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func applyRiderInput(rider *domain.Rider, input RiderInput) error {
	if input.ProfilePicture != nil {
		rider.ProfilePicture = *input.ProfilePicture
	}
	if input.LicenseNumber != nil {
		rider.LicenseNumber = *input.LicenseNumber
	}
	if input.LicensePicture != nil {
		rider.LicensePicture = *input.LicensePicture
	}
	if input.IDNumberPicture != nil {
		rider.IDNumberPicture = *input.IDNumberPicture
	}
	if input.VerificationStatus != nil {
		status := domain.VerificationStatus(*input.VerificationStatus)
		switch status {
		case domain.VerificationStatusPending, domain.VerificationStatusApproved, domain.VerificationStatusRejected:
			rider.VerificationStatus = status
		default:
			return ErrInvalidVerificationStatus
		}
	}
	if input.VerificationNotes != nil {
		rider.VerificationNotes = *input.VerificationNotes
	}
	if input.IsAvailable != nil {
		rider.IsAvailable = *input.IsAvailable
	}
	if input.CurrentLatitude != nil {
		if !isValidLatitude(*input.CurrentLatitude) {
			return ErrInvalidLocation
		}
		rider.CurrentLatitude = input.CurrentLatitude
	}
	if input.CurrentLongitude != nil {
		if !isValidLongitude(*input.CurrentLongitude) {
			return ErrInvalidLocation
		}
		rider.CurrentLongitude = input.CurrentLongitude
	}
	return nil
}

func isValidLatitude(lat float64) bool {
	return lat >= -90 && lat <= 90
}

func isValidLongitude(lng float64) bool {
	return lng >= -180 && lng <= 180
}
