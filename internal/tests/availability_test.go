package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"ridehail/internal/domain"
	"ridehail/internal/service"
)

// ──────────────────────────────────────────────
// 2. AVAILABILITY CACHE
// ──────────────────────────────────────────────

func availabilityFixture() (*MockRiderRepository, *MockAvailabilityCache, *service.RiderService) {
	riderRepo := NewMockRiderRepository()
	riderRepo.Users["user-a"] = &domain.User{ID: "user-a", Email: "a@example.com", UserType: domain.UserTypeRider}
	riderRepo.Users["user-b"] = &domain.User{ID: "user-b", Email: "b@example.com", UserType: domain.UserTypeRider}

	riderRepo.AddRider(&domain.Rider{
		ID: "rider-a", UserID: "user-a",
		IsAvailable:        true,
		VerificationStatus: domain.VerificationStatusApproved,
	})
	riderRepo.AddRider(&domain.Rider{
		ID: "rider-b", UserID: "user-b",
		IsAvailable:        false,
		VerificationStatus: domain.VerificationStatusApproved,
	})

	cache := NewMockAvailabilityCache()
	return riderRepo, cache, service.NewRiderService(riderRepo, cache)
}

func decodeListing(t *testing.T, payload []byte) []service.RiderView {
	t.Helper()
	var views []service.RiderView
	if err := json.Unmarshal(payload, &views); err != nil {
		t.Fatalf("payload does not decode: %v", err)
	}
	return views
}

func TestAvailableRiders_FiltersToAvailableApproved(t *testing.T) {
	t.Parallel()

	_, _, riderService := availabilityFixture()

	payload, err := riderService.ListAvailable(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	views := decodeListing(t, payload)
	if len(views) != 1 || views[0].ID != "rider-a" {
		t.Fatalf("expected listing [rider-a], got %+v", views)
	}
}

func TestAvailableRiders_SecondReadServedFromCache(t *testing.T) {
	t.Parallel()

	riderRepo, cache, riderService := availabilityFixture()

	first, err := riderService.ListAvailable(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := riderService.ListAvailable(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("expected byte-identical payloads within the TTL window")
	}
	if riderRepo.GetAvailableCallCount != 1 {
		t.Errorf("expected exactly one recomputation, store was queried %d times", riderRepo.GetAvailableCallCount)
	}
	if cache.SetCallCount != 1 {
		t.Errorf("expected exactly one cache write, got %d", cache.SetCallCount)
	}
}

func TestAvailableRiders_ExpiredSlotIsRecomputed(t *testing.T) {
	t.Parallel()

	riderRepo, cache, riderService := availabilityFixture()

	if _, err := riderService.ListAvailable(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cache.Expire()

	if _, err := riderService.ListAvailable(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if riderRepo.GetAvailableCallCount != 2 {
		t.Errorf("expected recomputation after expiry, store was queried %d times", riderRepo.GetAvailableCallCount)
	}
}

func TestAvailableRiders_LocationUpdateInvalidatesCache(t *testing.T) {
	t.Parallel()

	riderRepo, cache, riderService := availabilityFixture()
	ctx := context.Background()

	if _, err := riderService.ListAvailable(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lat, lng := 12.9716, 77.5946
	owner := service.Requester{UserID: "user-a"}
	if _, err := riderService.UpdateLocation(ctx, owner, "rider-a", &lat, &lng); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cache.InvalidateCallCount != 1 {
		t.Fatalf("expected one invalidation, got %d", cache.InvalidateCallCount)
	}
	if cache.HasEntry() {
		t.Error("expected cache slot to be empty after invalidation")
	}

	if _, err := riderService.ListAvailable(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if riderRepo.GetAvailableCallCount != 2 {
		t.Errorf("expected a fresh recomputation after the location update, store was queried %d times", riderRepo.GetAvailableCallCount)
	}
}

// A rider becoming available through the generic update path is not visible
// until the slot expires or a location update clears it. This mirrors the
// write paths that actually invalidate.
func TestAvailableRiders_GenericAvailabilityChangeLeavesCacheStale(t *testing.T) {
	t.Parallel()

	riderRepo, cache, riderService := availabilityFixture()
	ctx := context.Background()

	first, err := riderService.ListAvailable(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if views := decodeListing(t, first); len(views) != 1 || views[0].ID != "rider-a" {
		t.Fatalf("expected initial listing [rider-a], got %+v", views)
	}

	// Rider B flips to available through the plain update path.
	available := true
	ownerB := service.Requester{UserID: "user-b"}
	if _, err := riderService.Update(ctx, ownerB, "rider-b", service.RiderInput{IsAvailable: &available}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !riderRepo.GetRider("rider-b").IsAvailable {
		t.Fatal("expected rider-b to be stored as available")
	}
	if cache.InvalidateCallCount != 0 {
		t.Fatalf("generic update must not invalidate, got %d invalidations", cache.InvalidateCallCount)
	}

	stale, err := riderService.ListAvailable(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if views := decodeListing(t, stale); len(views) != 1 || views[0].ID != "rider-a" {
		t.Fatalf("expected stale listing [rider-a] within the TTL, got %+v", views)
	}

	// Once the slot expires the new availability shows up.
	cache.Expire()
	fresh, err := riderService.ListAvailable(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if views := decodeListing(t, fresh); len(views) != 2 {
		t.Fatalf("expected both riders after expiry, got %+v", views)
	}
}

func TestAvailableRiders_CacheGetFailureSurfaces(t *testing.T) {
	t.Parallel()

	_, cache, riderService := availabilityFixture()
	cache.GetError = errBackend

	if _, err := riderService.ListAvailable(context.Background()); err == nil {
		t.Fatal("expected cache failure to surface")
	}
}
