package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ridehail/internal/service"
)

// PassengerHandler handles HTTP requests for passenger profiles.
type PassengerHandler struct {
	passengerService *service.PassengerService
}

// NewPassengerHandler creates a new PassengerHandler.
func NewPassengerHandler(passengerService *service.PassengerService) *PassengerHandler {
	return &PassengerHandler{passengerService: passengerService}
}

// PassengerPayload is the HTTP request body for creating or updating a
// passenger profile. It carries only the writable fields; any owner id in
// the raw payload is ignored.
type PassengerPayload struct {
	PreferredPaymentMethod *string `json:"preferred_payment_method"`
	HomeAddress            *string `json:"home_address"`
	ProfilePicture         *string `json:"profile_picture"`
	PreferredLanguage      *string `json:"preferred_language"`
	EmergencyContact       *string `json:"emergency_contact"`
	IsVerified             *bool   `json:"is_verified"`
}

func (p PassengerPayload) toInput() service.PassengerInput {
	return service.PassengerInput{
		PreferredPaymentMethod: p.PreferredPaymentMethod,
		HomeAddress:            p.HomeAddress,
		ProfilePicture:         p.ProfilePicture,
		PreferredLanguage:      p.PreferredLanguage,
		EmergencyContact:       p.EmergencyContact,
		IsVerified:             p.IsVerified,
	}
}

// List handles GET /v1/passengers
func (h *PassengerHandler) List(c *gin.Context) {
	views, err := h.passengerService.List(c.Request.Context(), requesterFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, views)
}

// Get handles GET /v1/passengers/:id
func (h *PassengerHandler) Get(c *gin.Context) {
	view, err := h.passengerService.Get(c.Request.Context(), requesterFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, view)
}

// Create handles POST /v1/passengers
func (h *PassengerHandler) Create(c *gin.Context) {
	var req PassengerPayload
	if err := bindChecked(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	view, err := h.passengerService.Create(c.Request.Context(), requesterFrom(c), req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusCreated, view)
}

// Update handles PUT and PATCH /v1/passengers/:id
func (h *PassengerHandler) Update(c *gin.Context) {
	var req PassengerPayload
	if err := bindChecked(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	view, err := h.passengerService.Update(c.Request.Context(), requesterFrom(c), c.Param("id"), req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, view)
}

// Delete handles DELETE /v1/passengers/:id
func (h *PassengerHandler) Delete(c *gin.Context) {
	if err := h.passengerService.Delete(c.Request.Context(), requesterFrom(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MyProfile handles GET /v1/passengers/my_profile
func (h *PassengerHandler) MyProfile(c *gin.Context) {
	view, err := h.passengerService.MyProfile(c.Request.Context(), requesterFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, view)
}
