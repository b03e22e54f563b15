package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ridehail/internal/service"
)

// RiderHandler handles HTTP requests for rider profiles.
type RiderHandler struct {
	riderService *service.RiderService
}

// NewRiderHandler creates a new RiderHandler.
func NewRiderHandler(riderService *service.RiderService) *RiderHandler {
	return &RiderHandler{riderService: riderService}
}

// riderReadOnlyFields are server-computed and rejected when present in a payload.
var riderReadOnlyFields = []string{"average_rating", "total_rides", "total_earnings"}

// RiderPayload is the HTTP request body for creating or updating a rider
// profile. It carries only the writable fields; any owner id in the raw
// payload is ignored.
type RiderPayload struct {
	ProfilePicture     *string  `json:"profile_picture"`
	LicenseNumber      *string  `json:"license_number"`
	LicensePicture     *string  `json:"license_picture"`
	IDNumberPicture    *string  `json:"id_number_picture"`
	VerificationStatus *string  `json:"verification_status"`
	VerificationNotes  *string  `json:"verification_notes"`
	IsAvailable        *bool    `json:"is_available"`
	CurrentLatitude    *float64 `json:"current_latitude"`
	CurrentLongitude   *float64 `json:"current_longitude"`
}

func (p RiderPayload) toInput() service.RiderInput {
	return service.RiderInput{
		ProfilePicture:     p.ProfilePicture,
		LicenseNumber:      p.LicenseNumber,
		LicensePicture:     p.LicensePicture,
		IDNumberPicture:    p.IDNumberPicture,
		VerificationStatus: p.VerificationStatus,
		VerificationNotes:  p.VerificationNotes,
		IsAvailable:        p.IsAvailable,
		CurrentLatitude:    p.CurrentLatitude,
		CurrentLongitude:   p.CurrentLongitude,
	}
}

// List handles GET /v1/riders
func (h *RiderHandler) List(c *gin.Context) {
	views, err := h.riderService.List(c.Request.Context(), requesterFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, views)
}

// Get handles GET /v1/riders/:id
func (h *RiderHandler) Get(c *gin.Context) {
	view, err := h.riderService.Get(c.Request.Context(), requesterFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, view)
}

// Create handles POST /v1/riders
func (h *RiderHandler) Create(c *gin.Context) {
	var req RiderPayload
	if err := bindChecked(c, &req, riderReadOnlyFields...); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	view, err := h.riderService.Create(c.Request.Context(), requesterFrom(c), req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusCreated, view)
}

// Update handles PUT and PATCH /v1/riders/:id
func (h *RiderHandler) Update(c *gin.Context) {
	var req RiderPayload
	if err := bindChecked(c, &req, riderReadOnlyFields...); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	view, err := h.riderService.Update(c.Request.Context(), requesterFrom(c), c.Param("id"), req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, view)
}

// Delete handles DELETE /v1/riders/:id
func (h *RiderHandler) Delete(c *gin.Context) {
	if err := h.riderService.Delete(c.Request.Context(), requesterFrom(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MyProfile handles GET /v1/riders/my_profile
func (h *RiderHandler) MyProfile(c *gin.Context) {
	view, err := h.riderService.MyProfile(c.Request.Context(), requesterFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, view)
}

// UpdateLocationRequest is the HTTP request body for the location update.
// Both coordinates are optional and independently settable.
type UpdateLocationRequest struct {
	CurrentLatitude  *float64 `json:"current_latitude"`
	CurrentLongitude *float64 `json:"current_longitude"`
}

// UpdateLocation handles PATCH /v1/riders/:id/update_location
func (h *RiderHandler) UpdateLocation(c *gin.Context) {
	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	view, err := h.riderService.UpdateLocation(c.Request.Context(), requesterFrom(c), c.Param("id"), req.CurrentLatitude, req.CurrentLongitude)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, view)
}

// ListAvailable handles GET /v1/riders/available_riders
func (h *RiderHandler) ListAvailable(c *gin.Context) {
	payload, err := h.riderService.ListAvailable(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	// The payload is already serialized; write it verbatim so repeated reads
	// within the TTL are byte-identical.
	c.Data(http.StatusOK, "application/json", payload)
}
