package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ridehail/internal/service"
)

// UserHandler handles HTTP requests for users and authentication.
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRequest is the HTTP request body for registration.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Password2   string `json:"password2"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	UserType    string `json:"user_type"`
}

// TokensResponse carries the issued token pair.
type TokensResponse struct {
	Refresh string `json:"refresh"`
	Access  string `json:"access"`
}

// RegisterResponse is the HTTP response for a successful registration.
type RegisterResponse struct {
	User    service.UserView `json:"user"`
	Tokens  TokensResponse   `json:"tokens"`
	Message string           `json:"message"`
}

// Register handles POST /v1/users/register
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.userService.Register(c.Request.Context(), service.RegisterRequest{
		Email:       req.Email,
		Password:    req.Password,
		Password2:   req.Password2,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		UserType:    req.UserType,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, RegisterResponse{
		User:    result.User,
		Tokens:  TokensResponse{Refresh: result.Tokens.Refresh, Access: result.Tokens.Access},
		Message: "User registered successfully",
	})
}

// LoginRequest is the HTTP request body for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the HTTP response for a successful login.
type LoginResponse struct {
	User   service.UserView `json:"user"`
	Tokens TokensResponse   `json:"tokens"`
}

// Login handles POST /v1/auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.userService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, LoginResponse{
		User:   result.User,
		Tokens: TokensResponse{Refresh: result.Tokens.Refresh, Access: result.Tokens.Access},
	})
}

// RefreshRequest is the HTTP request body for refreshing an access token.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// Refresh handles POST /v1/auth/refresh
func (h *UserHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Refresh == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	access, err := h.userService.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"access": access})
}

// Profile handles GET /v1/users/profile
func (h *UserHandler) Profile(c *gin.Context) {
	view, err := h.userService.Profile(c.Request.Context(), requesterFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, view)
}

// GetAll handles GET /v1/users
func (h *UserHandler) GetAll(c *gin.Context) {
	views, err := h.userService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, views)
}

// Get handles GET /v1/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	view, err := h.userService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, view)
}

// UpdateUserRequest is the HTTP request body for user edits. Email and join
// date are not client-writable.
type UpdateUserRequest struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	PhoneNumber *string `json:"phone_number"`
	UserType    *string `json:"user_type"`
}

// Update handles PUT /v1/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	var req UpdateUserRequest
	if err := bindChecked(c, &req, "id", "email", "date_joined"); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	view, err := h.userService.Update(c.Request.Context(), requesterFrom(c), c.Param("id"), service.UserUpdateRequest{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		UserType:    req.UserType,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, view)
}
