package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/srgjo27/car_rental/internal/core/domain"
)

type PaymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

const paymentSelect = `
	SELECT p.id, p.booking_id, p.user_id, p.amount, p.payment_type, p.payment_method, p.transaction_id,
		p.status, p.notes, p.created_at,
		b.start_date, b.end_date, b.status, b.car_id, c.name, c.brand, c.model
	FROM payments p
	JOIN bookings b ON b.id = p.booking_id
	JOIN cars c ON c.id = b.car_id
`

func scanPayment(row scanner) (*domain.Payment, error) {
	var (
		p   domain.Payment
		b   domain.Booking
		car domain.VehicleSummary
	)

	err := row.Scan(
		&p.ID, &p.BookingID, &p.UserID, &p.Amount, &p.Type, &p.Method, &p.TransactionID,
		&p.Status, &p.Notes, &p.CreatedAt,
		&b.StartDate, &b.EndDate, &b.Status, &car.ID, &car.Name, &car.Brand, &car.Model,
	)
	if err != nil {
		return nil, err
	}

	b.ID = p.BookingID
	b.UserID = p.UserID
	b.VehicleID = car.ID
	b.Vehicle = &car
	p.Booking = &b

	return &p, nil
}

// ListByUser returns the newest payments first. A zero page limit returns all of them.
func (r *PaymentRepository) ListByUser(ctx context.Context, userID uuid.UUID, page domain.Page) ([]domain.Payment, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM payments WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := paymentSelect + ` WHERE p.user_id = $1 ORDER BY p.created_at DESC`
	args := []any{userID}
	if page.Limit > 0 {
		query += ` LIMIT $2 OFFSET $3`
		args = append(args, page.Limit, page.Offset())
	}

	payments, err := r.list(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}

func (r *PaymentRepository) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]domain.Payment, error) {
	return r.list(ctx, paymentSelect+` WHERE p.booking_id = $1 ORDER BY p.created_at ASC`, bookingID)
}

func (r *PaymentRepository) SummaryByStatus(ctx context.Context, userID uuid.UUID) ([]domain.PaymentSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT status, COUNT(*), COALESCE(SUM(amount), 0)
	FROM payments
	WHERE user_id = $1
	GROUP BY status
	ORDER BY status
	`, userID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var summaries []domain.PaymentSummary
	for rows.Next() {
		var s domain.PaymentSummary
		if err := rows.Scan(&s.Status, &s.Count, &s.Total); err != nil {
			return nil, err
		}

		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}

func (r *PaymentRepository) list(ctx context.Context, query string, args ...any) ([]domain.Payment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}

		payments = append(payments, *p)
	}

	return payments, rows.Err()
}
