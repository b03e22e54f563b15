package service

import (
	"context"
	"errors"
	"net/mail"
	"time"
	"unicode"

	"github.com/google/uuid"

	"ridehail/internal/auth"
	"ridehail/internal/domain"
	"ridehail/internal/repository"
)

// PasswordHasher hashes and verifies credentials.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

// TokenIssuer mints and verifies the opaque token pairs handed out after
// registration and login.
type TokenIssuer interface {
	IssuePair(userID string) (auth.TokenPair, error)
	Generate(userID string, tokenType auth.TokenType) (token, jti string, err error)
	Verify(token string, expected auth.TokenType) (*auth.Claims, error)
	AccessTTL() time.Duration
	RefreshTTL() time.Duration
}

// SessionRecorder tracks issued token IDs per user.
type SessionRecorder interface {
	Record(ctx context.Context, userID, accessJTI, refreshJTI string, accessTTL, refreshTTL time.Duration) error
	Clear(ctx context.Context, userID string) error
}

// UserService handles registration, authentication and user CRUD.
type UserService struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	tokens   TokenIssuer
	sessions SessionRecorder
	policy   AccessPolicy
}

// NewUserService creates a new UserService. sessions may be nil.
func NewUserService(userRepo repository.UserRepository, hasher PasswordHasher, tokens TokenIssuer, sessions SessionRecorder) *UserService {
	return &UserService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		sessions: sessions,
	}
}

// RegisterRequest contains the parameters for registering a user.
type RegisterRequest struct {
	Email       string
	Password    string
	Password2   string
	FirstName   string
	LastName    string
	PhoneNumber string
	UserType    string
}

// AuthResult is the outcome of a successful registration or login.
type AuthResult struct {
	User   UserView
	Tokens auth.TokenPair
}

// Register validates the payload, persists the user and issues a token pair.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	if req.Email == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" {
		return nil, ErrMissingRequiredFields
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return nil, ErrInvalidEmail
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}
	if req.Password != req.Password2 {
		return nil, ErrPasswordMismatch
	}

	userType := domain.UserType(req.UserType)
	if userType != domain.UserTypePassenger && userType != domain.UserTypeRider {
		return nil, ErrInvalidUserType
	}

	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PhoneNumber:  req.PhoneNumber,
		UserType:     userType,
		DateJoined:   time.Now().UTC(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Login verifies credentials and issues a token pair.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !s.hasher.Verify(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return s.issueTokens(ctx, user)
}

// Refresh validates a refresh token and mints a new access token.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.Verify(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return "", err
	}
	if _, err := s.userRepo.GetByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", auth.ErrInvalidToken
		}
		return "", err
	}
	access, _, err := s.tokens.Generate(claims.UserID, auth.TokenTypeAccess)
	return access, err
}

// List returns all user views.
func (s *UserService) List(ctx context.Context) ([]UserView, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]UserView, 0, len(users))
	for _, u := range users {
		views = append(views, NewUserView(u))
	}
	return views, nil
}

// Get returns a user view by ID.
func (s *UserService) Get(ctx context.Context, id string) (*UserView, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := NewUserView(user)
	return &view, nil
}

// Profile returns the requester's own user view.
func (s *UserService) Profile(ctx context.Context, req Requester) (*UserView, error) {
	return s.Get(ctx, req.UserID)
}

// UserUpdateRequest contains the client-writable user fields. Email, id and
// date_joined are not among them.
type UserUpdateRequest struct {
	FirstName   *string
	LastName    *string
	PhoneNumber *string
	UserType    *string
}

// Update applies self-service edits. Only the user themselves or staff may edit.
func (s *UserService) Update(ctx context.Context, req Requester, id string, input UserUpdateRequest) (*UserView, error) {
	if !s.policy.CanAccess(req, id) {
		return nil, ErrPermissionDenied
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.PhoneNumber != nil {
		user.PhoneNumber = *input.PhoneNumber
	}
	if input.UserType != nil {
		userType := domain.UserType(*input.UserType)
		if userType != domain.UserTypePassenger && userType != domain.UserTypeRider {
			return nil, ErrInvalidUserType
		}
		user.UserType = userType
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	view := NewUserView(user)
	return &view, nil
}

func (s *UserService) issueTokens(ctx context.Context, user *domain.User) (*AuthResult, error) {
	pair, err := s.tokens.IssuePair(user.ID)
	if err != nil {
		return nil, err
	}
	if s.sessions != nil {
		// Session tracking is best-effort; token issuance already succeeded.
		_ = s.sessions.Record(ctx, user.ID, pair.AccessJTI, pair.RefreshJTI, s.tokens.AccessTTL(), s.tokens.RefreshTTL())
	}
	return &AuthResult{User: NewUserView(user), Tokens: pair}, nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return ErrPasswordTooShort
	}
	for _, r := range password {
		if !unicode.IsDigit(r) {
			return nil
		}
	}
	return ErrPasswordEntirelyNumeric
}
