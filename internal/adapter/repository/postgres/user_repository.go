package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/srgjo27/car_rental/internal/core/domain"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, name, email, password_hash, phone, role, profile_image, is_verified, push_token,
	date_of_birth, gender, license_number, license_expiry, license_state, address, preferences,
	account_status, total_bookings, total_spent, loyalty_points, member_since, created_at, updated_at`

func scanUser(row scanner) (*domain.User, error) {
	var (
		u           domain.User
		address     []byte
		preferences []byte
	)

	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone, &u.Role, &u.ProfileImage, &u.IsVerified, &u.PushToken,
		&u.DateOfBirth, &u.Gender, &u.License.Number, &u.License.Expiry, &u.License.State, &address, &preferences,
		&u.AccountStatus, &u.TotalBookings, &u.TotalSpent, &u.LoyaltyPoints, &u.MemberSince, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(address) > 0 {
		if err := json.Unmarshal(address, &u.Address); err != nil {
			return nil, fmt.Errorf("decode address of user %s: %w", u.ID, err)
		}
	}
	if len(preferences) > 0 {
		if err := json.Unmarshal(preferences, &u.Preferences); err != nil {
			return nil, fmt.Errorf("decode preferences of user %s: %w", u.ID, err)
		}
	}

	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	address, preferences, err := encodeProfile(u)
	if err != nil {
		return err
	}

	query := `
	INSERT INTO users (id, name, email, password_hash, phone, role, profile_image, is_verified, push_token,
		address, preferences, account_status, member_since, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err = r.db.ExecContext(ctx, query,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Phone, u.Role, u.ProfileImage, u.IsVerified, u.PushToken,
		address, preferences, u.AccountStatus, u.MemberSince, u.CreatedAt, u.UpdatedAt,
	)

	return mapError(err, "User")
}

func (r *UserRepository) GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, userID)

	u, err := scanUser(row)
	return u, mapError(err, "User")
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)

	u, err := scanUser(row)
	return u, mapError(err, "User")
}

func (r *UserRepository) List(ctx context.Context, role *domain.Role) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	var args []any
	if role != nil {
		query += ` WHERE role = $1`
		args = append(args, *role)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}

		users = append(users, *u)
	}

	return users, rows.Err()
}

// UpdateProfile writes the self-service fields only. Credentials, role and
// stats have their own write paths.
func (r *UserRepository) UpdateProfile(ctx context.Context, u *domain.User) error {
	address, preferences, err := encodeProfile(u)
	if err != nil {
		return err
	}

	query := `
	UPDATE users
	SET name = $1, phone = $2, profile_image = $3, push_token = $4, date_of_birth = $5, gender = $6,
		license_number = $7, license_expiry = $8, license_state = $9, address = $10, preferences = $11,
		updated_at = $12
	WHERE id = $13
	`

	res, err := r.db.ExecContext(ctx, query,
		u.Name, u.Phone, u.ProfileImage, u.PushToken, u.DateOfBirth, u.Gender,
		u.License.Number, u.License.Expiry, u.License.State, address, preferences,
		u.UpdatedAt, u.ID,
	)
	if err != nil {
		return err
	}

	return expectOneRow(res, "User")
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`, passwordHash, userID)
	if err != nil {
		return err
	}

	return expectOneRow(res, "User")
}

func (r *UserRepository) DeleteAdmin(ctx context.Context, userID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1 AND role = 'admin'`, userID)
	if err != nil {
		return mapError(err, "Admin")
	}

	return expectOneRow(res, "Admin")
}

func encodeProfile(u *domain.User) ([]byte, []byte, error) {
	address, err := json.Marshal(u.Address)
	if err != nil {
		return nil, nil, err
	}

	preferences, err := json.Marshal(u.Preferences)
	if err != nil {
		return nil, nil, err
	}

	return address, preferences, nil
}

func expectOneRow(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if n == 0 {
		return domain.Errorf(domain.ErrNotFound, "%s not found", what)
	}

	return nil
}

// applyStatsDelta increments the running totals inside the caller's transaction.
func applyStatsDelta(ctx context.Context, tx *sql.Tx, userID uuid.UUID, d domain.StatsDelta) error {
	if d.IsZero() {
		return nil
	}

	res, err := tx.ExecContext(ctx, `
	UPDATE users
	SET total_bookings = total_bookings + $1,
		total_spent = total_spent + $2,
		loyalty_points = loyalty_points + $3,
		updated_at = NOW()
	WHERE id = $4
	`, d.Bookings, d.Spent, d.LoyaltyPoints, userID)
	if err != nil {
		return fmt.Errorf("failed to apply stats for user %s: %w", userID, err)
	}

	return expectOneRow(res, "User")
}
