package tests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"ridehail/internal/domain"
	"ridehail/internal/handler"
	"ridehail/internal/service"
)

// ──────────────────────────────────────────────
// 6. HTTP BOUNDARY
// ──────────────────────────────────────────────

// authAs stands in for the auth middleware in handler tests.
func authAs(req service.Requester) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("requester", req)
		c.Next()
	}
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestHTTP_RiderMyProfile_NotFoundBody(t *testing.T) {
	riderHandler := handler.NewRiderHandler(service.NewRiderService(NewMockRiderRepository(), NewMockAvailabilityCache()))

	router := newTestRouter()
	router.GET("/v1/riders/my_profile", authAs(service.Requester{UserID: "user-1"}), riderHandler.MyProfile)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/riders/my_profile", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("body does not decode: %v", err)
	}
	if body["error"] != "Rider profile not found" {
		t.Errorf(`expected error "Rider profile not found", got %q`, body["error"])
	}
}

func TestHTTP_PassengerCreate_SubmittedOwnerIgnored(t *testing.T) {
	passengerRepo := NewMockPassengerRepository()
	passengerRepo.Users["user-1"] = &domain.User{ID: "user-1", Email: "one@example.com"}
	passengerHandler := handler.NewPassengerHandler(service.NewPassengerService(passengerRepo))

	router := newTestRouter()
	router.POST("/v1/passengers", authAs(service.Requester{UserID: "user-1"}), passengerHandler.Create)

	payload := `{"user_id": "user-2", "user": {"id": "user-2"}, "home_address": "42 Main St"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/passengers", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var view service.PassengerView
	if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil {
		t.Fatalf("body does not decode: %v", err)
	}
	if view.User.ID != "user-1" {
		t.Errorf("expected owner user-1, got %q", view.User.ID)
	}
	if view.HomeAddress != "42 Main St" {
		t.Errorf("expected writable field applied, got %q", view.HomeAddress)
	}
}

func TestHTTP_RiderCreate_ServerComputedFieldRejected(t *testing.T) {
	riderHandler := handler.NewRiderHandler(service.NewRiderService(NewMockRiderRepository(), NewMockAvailabilityCache()))

	router := newTestRouter()
	router.POST("/v1/riders", authAs(service.Requester{UserID: "user-1"}), riderHandler.Create)

	payload := `{"license_number": "L-123", "average_rating": 5.0}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/riders", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "average_rating") {
		t.Errorf("expected the rejected field to be named, got %s", w.Body.String())
	}
}

func TestHTTP_UpdateLocation_NonOwnerForbidden(t *testing.T) {
	riderRepo := NewMockRiderRepository()
	riderRepo.AddRider(&domain.Rider{ID: "rider-1", UserID: "user-1", VerificationStatus: domain.VerificationStatusApproved})
	cache := NewMockAvailabilityCache()
	riderHandler := handler.NewRiderHandler(service.NewRiderService(riderRepo, cache))

	router := newTestRouter()
	router.PATCH("/v1/riders/:id/update_location", authAs(service.Requester{UserID: "user-2"}), riderHandler.UpdateLocation)

	payload := `{"current_latitude": 12.9716}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/v1/riders/rider-1/update_location", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
	}
	if cache.InvalidateCallCount != 0 {
		t.Error("expected no invalidation on a forbidden update")
	}
	if riderRepo.UpdateLocationCallCount != 0 {
		t.Error("expected the store to be untouched")
	}
}

func TestHTTP_AvailableRiders_ServedVerbatim(t *testing.T) {
	riderRepo := NewMockRiderRepository()
	riderRepo.Users["user-1"] = &domain.User{ID: "user-1", Email: "rider@example.com"}
	riderRepo.AddRider(&domain.Rider{ID: "rider-1", UserID: "user-1", IsAvailable: true, VerificationStatus: domain.VerificationStatusApproved})
	riderHandler := handler.NewRiderHandler(service.NewRiderService(riderRepo, NewMockAvailabilityCache()))

	router := newTestRouter()
	router.GET("/v1/riders/available_riders", authAs(service.Requester{UserID: "user-2"}), riderHandler.ListAvailable)

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/v1/riders/available_riders", nil))
	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/v1/riders/available_riders", nil))

	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("expected 200s, got %d and %d", first.Code, second.Code)
	}
	if first.Body.String() != second.Body.String() {
		t.Error("expected byte-identical listings within the TTL window")
	}
	if riderRepo.GetAvailableCallCount != 1 {
		t.Errorf("expected a single recomputation, store was queried %d times", riderRepo.GetAvailableCallCount)
	}
}
