package postgres

import (
	"context"
	"database/sql"
	"errors"

	"ridehail/internal/domain"
	"ridehail/internal/repository"
)

// PassengerRepository implements repository.PassengerRepository using PostgreSQL.
type PassengerRepository struct {
	q Querier
}

// NewPassengerRepository creates a new PassengerRepository.
func NewPassengerRepository(db *sql.DB) *PassengerRepository {
	return &PassengerRepository{q: db}
}

const passengerSelect = `SELECT
	p.id, p.user_id, p.preferred_payment_method, COALESCE(p.home_address, ''),
	COALESCE(p.profile_picture, ''), p.preferred_language, COALESCE(p.emergency_contact, ''),
	p.is_verified, p.created_at, p.updated_at,
	u.id, u.email, u.password_hash, u.first_name, u.last_name, u.phone_number, u.user_type, u.is_staff, u.date_joined
FROM passengers p
JOIN users u ON u.id = p.user_id`

// Create adds a new passenger profile.
func (r *PassengerRepository) Create(ctx context.Context, passenger *domain.Passenger) error {
	query := `INSERT INTO passengers
		(id, user_id, preferred_payment_method, home_address, profile_picture, preferred_language, emergency_contact, is_verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.ExecContext(ctx, query,
		passenger.ID, passenger.UserID,
		passenger.PreferredPaymentMethod, passenger.HomeAddress, passenger.ProfilePicture,
		passenger.PreferredLanguage, passenger.EmergencyContact, passenger.IsVerified,
	)
	return mapWriteError(err)
}

// GetByID retrieves a passenger profile by ID.
func (r *PassengerRepository) GetByID(ctx context.Context, id string) (*domain.Passenger, error) {
	row := r.q.QueryRowContext(ctx, passengerSelect+` WHERE p.id = $1`, id)
	return scanPassengerRow(row)
}

// GetByUserID retrieves the passenger profile owned by the given user.
func (r *PassengerRepository) GetByUserID(ctx context.Context, userID string) (*domain.Passenger, error) {
	row := r.q.QueryRowContext(ctx, passengerSelect+` WHERE p.user_id = $1`, userID)
	return scanPassengerRow(row)
}

// GetAll retrieves all passenger profiles.
func (r *PassengerRepository) GetAll(ctx context.Context) ([]*domain.Passenger, error) {
	rows, err := r.q.QueryContext(ctx, passengerSelect+` ORDER BY p.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var passengers []*domain.Passenger
	for rows.Next() {
		passenger, err := scanPassenger(rows)
		if err != nil {
			return nil, err
		}
		passengers = append(passengers, passenger)
	}
	return passengers, rows.Err()
}

// Update persists edits to the writable passenger fields.
func (r *PassengerRepository) Update(ctx context.Context, passenger *domain.Passenger) error {
	query := `UPDATE passengers SET
		preferred_payment_method = $1, home_address = $2, profile_picture = $3,
		preferred_language = $4, emergency_contact = $5, is_verified = $6, updated_at = NOW()
		WHERE id = $7`
	result, err := r.q.ExecContext(ctx, query,
		passenger.PreferredPaymentMethod, passenger.HomeAddress, passenger.ProfilePicture,
		passenger.PreferredLanguage, passenger.EmergencyContact, passenger.IsVerified,
		passenger.ID,
	)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// Delete removes a passenger profile.
func (r *PassengerRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM passengers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func requireAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPassenger(s scanner) (*domain.Passenger, error) {
	var passenger domain.Passenger
	var user domain.User
	err := s.Scan(
		&passenger.ID, &passenger.UserID,
		&passenger.PreferredPaymentMethod, &passenger.HomeAddress, &passenger.ProfilePicture,
		&passenger.PreferredLanguage, &passenger.EmergencyContact, &passenger.IsVerified,
		&passenger.CreatedAt, &passenger.UpdatedAt,
		&user.ID, &user.Email, &user.PasswordHash,
		&user.FirstName, &user.LastName, &user.PhoneNumber,
		&user.UserType, &user.IsStaff, &user.DateJoined,
	)
	if err != nil {
		return nil, err
	}
	passenger.User = &user
	return &passenger, nil
}

func scanPassengerRow(row *sql.Row) (*domain.Passenger, error) {
	passenger, err := scanPassenger(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return passenger, nil
}
