package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/srgjo27/car_rental/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var paymentColumnNames = []string{
	"id", "booking_id", "user_id", "amount", "payment_type", "payment_method", "transaction_id",
	"status", "notes", "created_at",
	"start_date", "end_date", "status", "car_id", "name", "brand", "model",
}

func TestPaymentRepository_ListByUserPaged(t *testing.T) {
	db, mock := newDB(t)
	repo := NewPaymentRepository(db)
	userID, bookingID, carID := uuid.New(), uuid.New(), uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM payments WHERE user_id = $1")).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY p.created_at DESC LIMIT $2 OFFSET $3")).
		WithArgs(userID, 10, 10).
		WillReturnRows(sqlmock.NewRows(paymentColumnNames).AddRow(
			uuid.NewString(), bookingID.String(), userID.String(), 300.0, "full_payment", "cash", "TXNABC",
			"success", "Cash payment marked as paid by user", now,
			now, now.Add(48*time.Hour), "active", carID.String(), "Civic", "Honda", "Civic",
		))

	payments, total, err := repo.ListByUser(context.Background(), userID, domain.Page{Number: 2, Limit: 10})

	require.NoError(t, err)
	assert.Equal(t, 11, total)
	require.Len(t, payments, 1)
	assert.Equal(t, domain.ChannelCash, payments[0].Method)
	require.NotNil(t, payments[0].Booking)
	assert.Equal(t, bookingID, payments[0].Booking.ID)
	assert.Equal(t, "Honda", payments[0].Booking.Vehicle.Brand)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepository_SummaryByStatus(t *testing.T) {
	db, mock := newDB(t)
	userID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY status")).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count", "sum"}).
			AddRow("failed", int64(1), 0.0).
			AddRow("success", int64(3), 900.0))

	got, err := NewPaymentRepository(db).SummaryByStatus(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, []domain.PaymentSummary{
		{Status: domain.PaymentFailure, Count: 1, Total: 0},
		{Status: domain.PaymentSuccess, Count: 3, Total: 900},
	}, got)
}

func TestPaymentRepository_ListByBooking(t *testing.T) {
	db, mock := newDB(t)
	bookingID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE p.booking_id = $1 ORDER BY p.created_at ASC")).
		WithArgs(bookingID).
		WillReturnRows(sqlmock.NewRows(paymentColumnNames))

	got, err := NewPaymentRepository(db).ListByBooking(context.Background(), bookingID)

	require.NoError(t, err)
	assert.Empty(t, got)
}
