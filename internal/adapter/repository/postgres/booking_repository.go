package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/srgjo27/car_rental/internal/core/domain"
)

type BookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingSelect = `
	SELECT b.id, b.user_id, b.car_id, b.driver_id, b.start_date, b.end_date, b.total_amount, b.paid_amount,
		b.status, b.payment_status, b.payment_method, b.payment_id, b.pickup_location, b.dropoff_location,
		b.notes, b.version, b.created_at, b.updated_at,
		c.name, c.brand, c.model, c.type, c.price_per_day, c.images,
		u.name, u.email,
		d.id, du.name, d.phone, d.rating
	FROM bookings b
	JOIN cars c ON c.id = b.car_id
	JOIN users u ON u.id = b.user_id
	LEFT JOIN drivers d ON d.id = b.driver_id
	LEFT JOIN users du ON du.id = d.user_id
`

func scanBooking(row scanner) (*domain.Booking, error) {
	var (
		b           domain.Booking
		car         domain.VehicleSummary
		user        domain.UserSummary
		driverRef   uuid.NullUUID
		driverID    uuid.NullUUID
		driverName  sql.NullString
		driverPhone sql.NullString
		driverScore sql.NullFloat64
	)

	err := row.Scan(
		&b.ID, &b.UserID, &b.VehicleID, &driverRef, &b.StartDate, &b.EndDate, &b.TotalAmount, &b.PaidAmount,
		&b.Status, &b.PaymentStatus, &b.PaymentMethod, &b.PaymentID, &b.PickupLocation, &b.DropoffLocation,
		&b.Notes, &b.Version, &b.CreatedAt, &b.UpdatedAt,
		&car.Name, &car.Brand, &car.Model, &car.Type, &car.PricePerDay, pq.Array(&car.Images),
		&user.Name, &user.Email,
		&driverID, &driverName, &driverPhone, &driverScore,
	)
	if err != nil {
		return nil, err
	}

	car.ID = b.VehicleID
	b.Vehicle = &car

	user.ID = b.UserID
	b.User = &user

	if driverRef.Valid {
		id := driverRef.UUID
		b.DriverID = &id
	}

	if driverID.Valid {
		b.Driver = &domain.DriverSummary{
			ID:     driverID.UUID,
			Name:   driverName.String,
			Phone:  driverPhone.String,
			Rating: driverScore.Float64,
		}
	}

	return &b, nil
}

func (r *BookingRepository) CreateBooking(ctx context.Context, booking *domain.Booking, payment *domain.Payment, delta domain.StatsDelta) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	query := `
	INSERT INTO bookings (id, user_id, car_id, driver_id, start_date, end_date, total_amount, paid_amount,
		status, payment_status, payment_method, payment_id, pickup_location, dropoff_location, notes,
		version, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err = tx.ExecContext(ctx, query,
		booking.ID, booking.UserID, booking.VehicleID, booking.DriverID, booking.StartDate, booking.EndDate,
		booking.TotalAmount, booking.PaidAmount, booking.Status, booking.PaymentStatus, booking.PaymentMethod,
		booking.PaymentID, booking.PickupLocation, booking.DropoffLocation, booking.Notes,
		booking.Version, booking.CreatedAt, booking.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", mapError(err, "Booking"))
	}

	if payment != nil {
		if err := insertPayment(ctx, tx, payment); err != nil {
			return err
		}
	}

	if err := applyStatsDelta(ctx, tx, booking.UserID, delta); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// CompletePayment persists the settled booking, its ledger entry and the stats
// increment atomically. The booking row is only written while it still carries
// expectedVersion and belongs to the same user.
func (r *BookingRepository) CompletePayment(ctx context.Context, booking *domain.Booking, expectedVersion int, payment *domain.Payment, delta domain.StatsDelta) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	query := `
	UPDATE bookings
	SET status = $1,
		payment_status = $2,
		paid_amount = $3,
		payment_method = $4,
		payment_id = $5,
		updated_at = $6,
		version = version + 1
	WHERE id = $7 AND user_id = $8 AND version = $9
	`

	result, err := tx.ExecContext(ctx, query,
		booking.Status, booking.PaymentStatus, booking.PaidAmount, booking.PaymentMethod, booking.PaymentID,
		booking.UpdatedAt, booking.ID, booking.UserID, expectedVersion,
	)
	if err != nil {
		return err
	}

	if err := expectVersion(result); err != nil {
		return err
	}

	if err := insertPayment(ctx, tx, payment); err != nil {
		return err
	}

	if err := applyStatsDelta(ctx, tx, booking.UserID, delta); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	booking.Version = expectedVersion + 1

	return nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, booking *domain.Booking, expectedVersion int) error {
	query := `
	UPDATE bookings
	SET status = $1,
		payment_status = $2,
		updated_at = $3,
		version = version + 1
	WHERE id = $4 AND version = $5
	`

	result, err := r.db.ExecContext(ctx, query,
		booking.Status, booking.PaymentStatus, booking.UpdatedAt, booking.ID, expectedVersion)
	if err != nil {
		return err
	}

	if err := expectVersion(result); err != nil {
		return err
	}

	booking.Version = expectedVersion + 1

	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx, bookingSelect+` WHERE b.id = $1`, bookingID))
	return b, mapError(err, "Booking")
}

func (r *BookingRepository) GetByIDForUser(ctx context.Context, bookingID, userID uuid.UUID) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx, bookingSelect+` WHERE b.id = $1 AND b.user_id = $2`, bookingID, userID))
	return b, mapError(err, "Booking")
}

// ListByUser returns the page of bookings and the total matching the filter.
// A zero page limit returns every matching booking.
func (r *BookingRepository) ListByUser(ctx context.Context, userID uuid.UUID, filter domain.BookingFilter) ([]domain.Booking, int, error) {
	where := ` WHERE b.user_id = $1`
	args := []any{userID}
	if filter.Status != nil {
		where += ` AND b.status = $2`
		args = append(args, *filter.Status)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings b`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := bookingSelect + where + ` ORDER BY b.created_at DESC`
	if filter.Page.Limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
		args = append(args, filter.Page.Limit, filter.Page.Offset())
	}

	bookings, err := r.list(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

func (r *BookingRepository) ListAll(ctx context.Context) ([]domain.Booking, error) {
	return r.list(ctx, bookingSelect+` ORDER BY b.created_at DESC`)
}

func (r *BookingRepository) CountByStatus(ctx context.Context, userID uuid.UUID) (map[domain.BookingStatus]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM bookings WHERE user_id = $1 GROUP BY status`, userID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	counts := make(map[domain.BookingStatus]int)
	for rows.Next() {
		var (
			status domain.BookingStatus
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}

		counts[status] = n
	}

	return counts, rows.Err()
}

func (r *BookingRepository) list(ctx context.Context, query string, args ...any) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}

		bookings = append(bookings, *b)
	}

	return bookings, rows.Err()
}

func insertPayment(ctx context.Context, tx *sql.Tx, p *domain.Payment) error {
	query := `
	INSERT INTO payments (id, booking_id, user_id, amount, payment_type, payment_method, transaction_id, status, notes, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := tx.ExecContext(ctx, query,
		p.ID, p.BookingID, p.UserID, p.Amount, p.Type, p.Method, p.TransactionID, p.Status, p.Notes, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert payment %s: %w", p.TransactionID, mapError(err, "Payment"))
	}

	return nil
}

func expectVersion(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return domain.Errorf(domain.ErrVersionConflict, "Booking was modified by another request")
	}

	return nil
}
