package tests

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ridehail/internal/domain"
	"ridehail/internal/repository"
	"ridehail/internal/service"
)

// ──────────────────────────────────────────────
// 4. OWNED PROFILE CRUD
// ──────────────────────────────────────────────

func passengerFixture() (*MockPassengerRepository, *service.PassengerService) {
	passengerRepo := NewMockPassengerRepository()
	passengerRepo.Users["user-1"] = &domain.User{ID: "user-1", Email: "one@example.com", UserType: domain.UserTypePassenger}
	passengerRepo.Users["user-2"] = &domain.User{ID: "user-2", Email: "two@example.com", UserType: domain.UserTypePassenger}
	return passengerRepo, service.NewPassengerService(passengerRepo)
}

func TestPassengerCreate_OwnerIsAlwaysTheRequester(t *testing.T) {
	t.Parallel()

	passengerRepo, passengerService := passengerFixture()

	// The input type has no owner field; whatever owner a client smuggles
	// into the raw payload never reaches the service.
	method := "card"
	view, err := passengerService.Create(context.Background(), service.Requester{UserID: "user-1"}, service.PassengerInput{
		PreferredPaymentMethod: &method,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if view.User.ID != "user-1" {
		t.Errorf("expected owner user-1, got %s", view.User.ID)
	}
	if stored := passengerRepo.GetPassenger(view.ID); stored.UserID != "user-1" {
		t.Errorf("expected stored owner user-1, got %s", stored.UserID)
	}
}

func TestPassengerCreate_SecondProfileForSameUserRejected(t *testing.T) {
	t.Parallel()

	_, passengerService := passengerFixture()
	ctx := context.Background()
	requester := service.Requester{UserID: "user-1"}

	if _, err := passengerService.Create(ctx, requester, service.PassengerInput{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := passengerService.Create(ctx, requester, service.PassengerInput{}); !errors.Is(err, service.ErrProfileExists) {
		t.Fatalf("expected ErrProfileExists, got %v", err)
	}
}

func TestPassengerList_ScopedByOwnership(t *testing.T) {
	t.Parallel()

	passengerRepo, passengerService := passengerFixture()
	passengerRepo.AddPassenger(&domain.Passenger{ID: "passenger-1", UserID: "user-1"})
	passengerRepo.AddPassenger(&domain.Passenger{ID: "passenger-2", UserID: "user-2"})
	ctx := context.Background()

	own, err := passengerService.List(ctx, service.Requester{UserID: "user-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(own) != 1 || own[0].ID != "passenger-1" {
		t.Fatalf("expected [passenger-1], got %+v", own)
	}

	all, err := passengerService.List(ctx, service.Requester{UserID: "staff-1", IsStaff: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected staff to see both profiles, got %d", len(all))
	}
}

func TestPassengerGet_OtherUsersProfileLooksMissing(t *testing.T) {
	t.Parallel()

	passengerRepo, passengerService := passengerFixture()
	passengerRepo.AddPassenger(&domain.Passenger{ID: "passenger-2", UserID: "user-2"})

	_, err := passengerService.Get(context.Background(), service.Requester{UserID: "user-1"}, "passenger-2")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPassengerMyProfile_NotFound(t *testing.T) {
	t.Parallel()

	_, passengerService := passengerFixture()

	_, err := passengerService.MyProfile(context.Background(), service.Requester{UserID: "user-1"})
	if !errors.Is(err, service.ErrPassengerProfileNotFound) {
		t.Fatalf("expected ErrPassengerProfileNotFound, got %v", err)
	}
}

func TestRiderMyProfile_NotFound(t *testing.T) {
	t.Parallel()

	riderService := service.NewRiderService(NewMockRiderRepository(), NewMockAvailabilityCache())

	_, err := riderService.MyProfile(context.Background(), service.Requester{UserID: "user-1"})
	if !errors.Is(err, service.ErrRiderProfileNotFound) {
		t.Fatalf("expected ErrRiderProfileNotFound, got %v", err)
	}
}

func TestRiderUpdate_OtherUsersProfileLooksMissing(t *testing.T) {
	t.Parallel()

	riderRepo := NewMockRiderRepository()
	riderRepo.AddRider(&domain.Rider{ID: "rider-2", UserID: "user-2", VerificationStatus: domain.VerificationStatusPending})
	riderService := service.NewRiderService(riderRepo, NewMockAvailabilityCache())

	available := true
	_, err := riderService.Update(context.Background(), service.Requester{UserID: "user-1"}, "rider-2", service.RiderInput{IsAvailable: &available})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if riderRepo.UpdateCallCount != 0 {
		t.Error("expected no store write for a filtered-out record")
	}
}

func TestRiderUpdate_RejectsUnknownVerificationStatus(t *testing.T) {
	t.Parallel()

	riderRepo := NewMockRiderRepository()
	riderRepo.AddRider(&domain.Rider{ID: "rider-1", UserID: "user-1", VerificationStatus: domain.VerificationStatusPending})
	riderService := service.NewRiderService(riderRepo, NewMockAvailabilityCache())

	status := "verified"
	_, err := riderService.Update(context.Background(), service.Requester{UserID: "user-1"}, "rider-1", service.RiderInput{VerificationStatus: &status})
	if !errors.Is(err, service.ErrInvalidVerificationStatus) {
		t.Fatalf("expected ErrInvalidVerificationStatus, got %v", err)
	}
}

func TestRiderViews_NeverExposeCredentials(t *testing.T) {
	t.Parallel()

	riderRepo := NewMockRiderRepository()
	riderRepo.Users["user-1"] = &domain.User{ID: "user-1", Email: "rider@example.com", PasswordHash: "bcrypt-hash"}
	riderRepo.AddRider(&domain.Rider{ID: "rider-1", UserID: "user-1", IsAvailable: true, VerificationStatus: domain.VerificationStatusApproved})
	riderService := service.NewRiderService(riderRepo, NewMockAvailabilityCache())

	payload, err := riderService.ListAvailable(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(string(payload), "bcrypt-hash") || strings.Contains(string(payload), "password") {
		t.Error("serialized listing must not contain credential material")
	}
}
