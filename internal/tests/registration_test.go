package tests

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ridehail/internal/domain"
	"ridehail/internal/service"
)

// ──────────────────────────────────────────────
// 5. REGISTRATION & AUTH
// ──────────────────────────────────────────────

func userServiceFixture() (*MockUserRepository, *MockSessionRecorder, *service.UserService) {
	userRepo := NewMockUserRepository()
	sessions := &MockSessionRecorder{}
	userService := service.NewUserService(userRepo, MockHasher{}, &MockTokenIssuer{}, sessions)
	return userRepo, sessions, userService
}

func validRegistration() service.RegisterRequest {
	return service.RegisterRequest{
		Email:       "new@example.com",
		Password:    "sup3r-secret",
		Password2:   "sup3r-secret",
		FirstName:   "Ada",
		LastName:    "Lovelace",
		PhoneNumber: "1234567890",
		UserType:    "rider",
	}
}

func TestRegister_Success(t *testing.T) {
	t.Parallel()

	userRepo, sessions, userService := userServiceFixture()

	result, err := userService.Register(context.Background(), validRegistration())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.User.Email != "new@example.com" || result.User.UserType != "rider" {
		t.Errorf("unexpected user view: %+v", result.User)
	}
	if result.Tokens.Access == "" || result.Tokens.Refresh == "" {
		t.Error("expected a token pair to be issued")
	}
	if sessions.RecordCallCount != 1 {
		t.Errorf("expected one session record, got %d", sessions.RecordCallCount)
	}

	stored := userRepo.GetUser(result.User.ID)
	if stored == nil {
		t.Fatal("expected user to be persisted")
	}
	if !strings.HasPrefix(stored.PasswordHash, "hashed:") {
		t.Error("expected the password to be stored hashed")
	}
	if stored.PasswordHash == "sup3r-secret" {
		t.Error("plaintext password must never be stored")
	}
}

func TestRegister_ValidationMatrix(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		mutate  func(*service.RegisterRequest)
		wantErr error
	}{
		{
			name:    "missing first name",
			mutate:  func(r *service.RegisterRequest) { r.FirstName = "" },
			wantErr: service.ErrMissingRequiredFields,
		},
		{
			name:    "missing email",
			mutate:  func(r *service.RegisterRequest) { r.Email = "" },
			wantErr: service.ErrMissingRequiredFields,
		},
		{
			name:    "malformed email",
			mutate:  func(r *service.RegisterRequest) { r.Email = "not-an-email" },
			wantErr: service.ErrInvalidEmail,
		},
		{
			name: "password mismatch",
			mutate: func(r *service.RegisterRequest) {
				r.Password2 = "different-secret"
			},
			wantErr: service.ErrPasswordMismatch,
		},
		{
			name: "password too short",
			mutate: func(r *service.RegisterRequest) {
				r.Password, r.Password2 = "short", "short"
			},
			wantErr: service.ErrPasswordTooShort,
		},
		{
			name: "password entirely numeric",
			mutate: func(r *service.RegisterRequest) {
				r.Password, r.Password2 = "12345678", "12345678"
			},
			wantErr: service.ErrPasswordEntirelyNumeric,
		},
		{
			name:    "unknown user type",
			mutate:  func(r *service.RegisterRequest) { r.UserType = "driver" },
			wantErr: service.ErrInvalidUserType,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, _, userService := userServiceFixture()
			req := validRegistration()
			tc.mutate(&req)

			_, err := userService.Register(context.Background(), req)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	userRepo, _, userService := userServiceFixture()
	userRepo.AddUser(&domain.User{ID: "user-1", Email: "new@example.com"})

	_, err := userService.Register(context.Background(), validRegistration())
	if !errors.Is(err, service.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	userRepo, _, userService := userServiceFixture()
	userRepo.AddUser(&domain.User{ID: "user-1", Email: "a@example.com", PasswordHash: "hashed:right"})

	if _, err := userService.Login(context.Background(), "a@example.com", "wrong"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := userService.Login(context.Background(), "missing@example.com", "right"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	userRepo, sessions, userService := userServiceFixture()
	userRepo.AddUser(&domain.User{ID: "user-1", Email: "a@example.com", PasswordHash: "hashed:right"})

	result, err := userService.Login(context.Background(), "a@example.com", "right")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Tokens.Access != "access-user-1" {
		t.Errorf("unexpected access token %q", result.Tokens.Access)
	}
	if sessions.LastUserID != "user-1" {
		t.Errorf("expected session recorded for user-1, got %q", sessions.LastUserID)
	}
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	t.Parallel()

	userRepo, _, userService := userServiceFixture()
	userRepo.AddUser(&domain.User{ID: "user-1", Email: "a@example.com"})

	if _, err := userService.Refresh(context.Background(), "access-user-1"); err == nil {
		t.Fatal("expected an access token to be rejected on the refresh path")
	}

	access, err := userService.Refresh(context.Background(), "refresh-user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if access != "access-user-1" {
		t.Errorf("unexpected refreshed access token %q", access)
	}
}

func TestUserUpdate_OnlySelfOrStaff(t *testing.T) {
	t.Parallel()

	userRepo, _, userService := userServiceFixture()
	userRepo.AddUser(&domain.User{ID: "user-1", Email: "a@example.com", FirstName: "Ada"})

	name := "Grace"
	_, err := userService.Update(context.Background(), service.Requester{UserID: "user-2"}, "user-1", service.UserUpdateRequest{FirstName: &name})
	if !errors.Is(err, service.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}

	view, err := userService.Update(context.Background(), service.Requester{UserID: "staff-1", IsStaff: true}, "user-1", service.UserUpdateRequest{FirstName: &name})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.FirstName != "Grace" {
		t.Errorf("expected first name updated, got %q", view.FirstName)
	}
}
