package service

import (
	"time"

	"ridehail/internal/domain"
)

// View projections with fixed field lists. The credential hash is never part
// of any view; server-computed rider fields appear read-only.

// UserView is the serialized owning-user summary.
type UserView struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	PhoneNumber string    `json:"phone_number"`
	UserType    string    `json:"user_type"`
	DateJoined  time.Time `json:"date_joined"`
}

// NewUserView projects a user into its view.
func NewUserView(u *domain.User) UserView {
	return UserView{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		UserType:    string(u.UserType),
		DateJoined:  u.DateJoined,
	}
}

// PassengerView is the serialized passenger profile.
type PassengerView struct {
	ID                     string    `json:"id"`
	User                   UserView  `json:"user"`
	PreferredPaymentMethod string    `json:"preferred_payment_method"`
	HomeAddress            string    `json:"home_address"`
	ProfilePicture         string    `json:"profile_picture"`
	PreferredLanguage      string    `json:"preferred_language"`
	EmergencyContact       string    `json:"emergency_contact"`
	IsVerified             bool      `json:"is_verified"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// NewPassengerView projects a passenger into its view.
func NewPassengerView(p *domain.Passenger) PassengerView {
	view := PassengerView{
		ID:                     p.ID,
		PreferredPaymentMethod: p.PreferredPaymentMethod,
		HomeAddress:            p.HomeAddress,
		ProfilePicture:         p.ProfilePicture,
		PreferredLanguage:      p.PreferredLanguage,
		EmergencyContact:       p.EmergencyContact,
		IsVerified:             p.IsVerified,
		CreatedAt:              p.CreatedAt,
		UpdatedAt:              p.UpdatedAt,
	}
	if p.User != nil {
		view.User = NewUserView(p.User)
	}
	return view
}

// NewPassengerViews projects a listing. Always returns a non-nil slice so an
// empty listing serializes as [].
func NewPassengerViews(passengers []*domain.Passenger) []PassengerView {
	views := make([]PassengerView, 0, len(passengers))
	for _, p := range passengers {
		views = append(views, NewPassengerView(p))
	}
	return views
}

// RiderView is the serialized rider profile.
type RiderView struct {
	ID                 string    `json:"id"`
	User               UserView  `json:"user"`
	ProfilePicture     string    `json:"profile_picture"`
	LicenseNumber      string    `json:"license_number"`
	LicensePicture     string    `json:"license_picture"`
	IDNumberPicture    string    `json:"id_number_picture"`
	VerificationStatus string    `json:"verification_status"`
	VerificationNotes  string    `json:"verification_notes"`
	IsAvailable        bool      `json:"is_available"`
	CurrentLatitude    *float64  `json:"current_latitude"`
	CurrentLongitude   *float64  `json:"current_longitude"`
	AverageRating      float64   `json:"average_rating"`
	TotalRides         int       `json:"total_rides"`
	TotalEarnings      float64   `json:"total_earnings"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// NewRiderView projects a rider into its view.
func NewRiderView(r *domain.Rider) RiderView {
	view := RiderView{
		ID:                 r.ID,
		ProfilePicture:     r.ProfilePicture,
		LicenseNumber:      r.LicenseNumber,
		LicensePicture:     r.LicensePicture,
		IDNumberPicture:    r.IDNumberPicture,
		VerificationStatus: string(r.VerificationStatus),
		VerificationNotes:  r.VerificationNotes,
		IsAvailable:        r.IsAvailable,
		CurrentLatitude:    r.CurrentLatitude,
		CurrentLongitude:   r.CurrentLongitude,
		AverageRating:      r.AverageRating,
		TotalRides:         r.TotalRides,
		TotalEarnings:      r.TotalEarnings,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
	if r.User != nil {
		view.User = NewUserView(r.User)
	}
	return view
}

// NewRiderViews projects a listing. Always returns a non-nil slice so an
// empty listing serializes as [].
func NewRiderViews(riders []*domain.Rider) []RiderView {
	views := make([]RiderView, 0, len(riders))
	for _, r := range riders {
		views = append(views, NewRiderView(r))
	}
	return views
}
