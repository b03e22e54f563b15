package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"ridehail/internal/domain"
	"ridehail/internal/repository"
)

// RiderRepository implements repository.RiderRepository using PostgreSQL.
type RiderRepository struct {
	q Querier
}

// NewRiderRepository creates a new RiderRepository.
func NewRiderRepository(db *sql.DB) *RiderRepository {
	return &RiderRepository{q: db}
}

const riderSelect = `SELECT
	r.id, r.user_id, COALESCE(r.profile_picture, ''), COALESCE(r.license_number, ''),
	COALESCE(r.license_picture, ''), COALESCE(r.id_number_picture, ''),
	r.verification_status, COALESCE(r.verification_notes, ''), r.is_available,
	r.current_latitude, r.current_longitude,
	r.average_rating, r.total_rides, r.total_earnings,
	r.created_at, r.updated_at,
	u.id, u.email, u.password_hash, u.first_name, u.last_name, u.phone_number, u.user_type, u.is_staff, u.date_joined
FROM riders r
JOIN users u ON u.id = r.user_id`

// Create adds a new rider profile.
func (r *RiderRepository) Create(ctx context.Context, rider *domain.Rider) error {
	query := `INSERT INTO riders
		(id, user_id, profile_picture, license_number, license_picture, id_number_picture,
		 verification_status, verification_notes, is_available, current_latitude, current_longitude)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.ExecContext(ctx, query,
		rider.ID, rider.UserID,
		rider.ProfilePicture, rider.LicenseNumber, rider.LicensePicture, rider.IDNumberPicture,
		rider.VerificationStatus, rider.VerificationNotes, rider.IsAvailable,
		nullFloat(rider.CurrentLatitude), nullFloat(rider.CurrentLongitude),
	)
	return mapWriteError(err)
}

// GetByID retrieves a rider profile by ID.
func (r *RiderRepository) GetByID(ctx context.Context, id string) (*domain.Rider, error) {
	row := r.q.QueryRowContext(ctx, riderSelect+` WHERE r.id = $1`, id)
	return scanRiderRow(row)
}

// GetByUserID retrieves the rider profile owned by the given user.
func (r *RiderRepository) GetByUserID(ctx context.Context, userID string) (*domain.Rider, error) {
	row := r.q.QueryRowContext(ctx, riderSelect+` WHERE r.user_id = $1`, userID)
	return scanRiderRow(row)
}

// GetAll retrieves all rider profiles.
func (r *RiderRepository) GetAll(ctx context.Context) ([]*domain.Rider, error) {
	return r.queryRiders(ctx, riderSelect+` ORDER BY r.created_at DESC`)
}

// GetAvailable retrieves riders that are available and approved.
func (r *RiderRepository) GetAvailable(ctx context.Context) ([]*domain.Rider, error) {
	return r.queryRiders(ctx,
		riderSelect+` WHERE r.is_available = TRUE AND r.verification_status = 'approved' ORDER BY r.created_at DESC`)
}

// Update persists edits to the writable rider fields.
func (r *RiderRepository) Update(ctx context.Context, rider *domain.Rider) error {
	query := `UPDATE riders SET
		profile_picture = $1, license_number = $2, license_picture = $3, id_number_picture = $4,
		verification_status = $5, verification_notes = $6, is_available = $7,
		current_latitude = $8, current_longitude = $9, updated_at = NOW()
		WHERE id = $10`
	result, err := r.q.ExecContext(ctx, query,
		rider.ProfilePicture, rider.LicenseNumber, rider.LicensePicture, rider.IDNumberPicture,
		rider.VerificationStatus, rider.VerificationNotes, rider.IsAvailable,
		nullFloat(rider.CurrentLatitude), nullFloat(rider.CurrentLongitude),
		rider.ID,
	)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// UpdateLocation sets only the coordinate fields that are non-nil.
func (r *RiderRepository) UpdateLocation(ctx context.Context, id string, lat, lng *float64) error {
	sets := []string{"updated_at = NOW()"}
	args := []any{}
	if lat != nil {
		args = append(args, *lat)
		sets = append(sets, "current_latitude = $"+strconv.Itoa(len(args)))
	}
	if lng != nil {
		args = append(args, *lng)
		sets = append(sets, "current_longitude = $"+strconv.Itoa(len(args)))
	}
	args = append(args, id)

	query := `UPDATE riders SET ` + strings.Join(sets, ", ") + ` WHERE id = $` + strconv.Itoa(len(args))
	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// Delete removes a rider profile.
func (r *RiderRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM riders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (r *RiderRepository) queryRiders(ctx context.Context, query string) ([]*domain.Rider, error) {
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var riders []*domain.Rider
	for rows.Next() {
		rider, err := scanRider(rows)
		if err != nil {
			return nil, err
		}
		riders = append(riders, rider)
	}
	return riders, rows.Err()
}

func scanRider(s scanner) (*domain.Rider, error) {
	var rider domain.Rider
	var user domain.User
	var lat, lng sql.NullFloat64
	err := s.Scan(
		&rider.ID, &rider.UserID,
		&rider.ProfilePicture, &rider.LicenseNumber, &rider.LicensePicture, &rider.IDNumberPicture,
		&rider.VerificationStatus, &rider.VerificationNotes, &rider.IsAvailable,
		&lat, &lng,
		&rider.AverageRating, &rider.TotalRides, &rider.TotalEarnings,
		&rider.CreatedAt, &rider.UpdatedAt,
		&user.ID, &user.Email, &user.PasswordHash,
		&user.FirstName, &user.LastName, &user.PhoneNumber,
		&user.UserType, &user.IsStaff, &user.DateJoined,
	)
	if err != nil {
		return nil, err
	}
	if lat.Valid {
		rider.CurrentLatitude = &lat.Float64
	}
	if lng.Valid {
		rider.CurrentLongitude = &lng.Float64
	}
	rider.User = &user
	return &rider, nil
}

func scanRiderRow(row *sql.Row) (*domain.Rider, error) {
	rider, err := scanRider(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rider, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
