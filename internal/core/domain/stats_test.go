package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/car_rental/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestFinancialEventDelta(t *testing.T) {
	card := domain.FinancialEvent{Kind: domain.FinancialBookingCreated, Amount: 567, Method: domain.MethodCard}
	assert.Equal(t, domain.StatsDelta{Bookings: 1, Spent: 567, LoyaltyPoints: 56}, card.Delta())

	cash := domain.FinancialEvent{Kind: domain.FinancialBookingCreated, Amount: 300, Method: domain.MethodCashOnReturn}
	assert.Equal(t, domain.StatsDelta{Bookings: 1, LoyaltyPoints: 30}, cash.Delta())

	paid := domain.FinancialEvent{Kind: domain.FinancialPaymentCompleted, Amount: 300, Method: domain.MethodCashOnReturn}
	assert.Equal(t, domain.StatsDelta{Spent: 300}, paid.Delta())

	assert.True(t, domain.FinancialEvent{Kind: "unknown", Amount: 10}.Delta().IsZero())
}

func TestLoyaltyFor(t *testing.T) {
	assert.Equal(t, 0, domain.LoyaltyFor(9.99))
	assert.Equal(t, 1, domain.LoyaltyFor(10))
	assert.Equal(t, 56, domain.LoyaltyFor(567))
	assert.Equal(t, 0, domain.LoyaltyFor(-50))
}

func TestNewProfileStats(t *testing.T) {
	stats := domain.NewProfileStats(
		map[domain.BookingStatus]int{
			domain.BookingActive:    2,
			domain.BookingCompleted: 1,
			domain.BookingConfirmed: 3,
		},
		[]domain.PaymentSummary{
			{Status: domain.PaymentSuccess, Count: 3, Total: 900},
			{Status: domain.PaymentFailure, Count: 1, Total: 50},
		},
	)

	assert.Equal(t, domain.ProfileStats{
		TotalBookings:     6,
		ActiveBookings:    2,
		CompletedBookings: 1,
		TotalSpent:        900,
	}, stats)
}

func TestNewFullPayment(t *testing.T) {
	b := &domain.Booking{ID: uuid.New(), UserID: uuid.New(), TotalAmount: 420}
	now := time.Now()

	p := domain.NewFullPayment(b, domain.ChannelCash, "cash", now)

	assert.Equal(t, b.ID, p.BookingID)
	assert.Equal(t, b.UserID, p.UserID)
	assert.Equal(t, 420.0, p.Amount)
	assert.Equal(t, domain.PaymentTypeFull, p.Type)
	assert.Equal(t, domain.PaymentSuccess, p.Status)
	assert.True(t, strings.HasPrefix(p.TransactionID, "TXN"))
	assert.NotEqual(t, p.TransactionID, domain.NewTransactionID())
}

func TestBookingRequestValidate(t *testing.T) {
	start := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	valid := domain.BookingRequest{
		VehicleID:       uuid.New(),
		StartDate:       start,
		EndDate:         start.Add(48 * time.Hour),
		TotalAmount:     200,
		PaymentMethod:   domain.MethodCard,
		PickupLocation:  "Airport",
		DropoffLocation: "Downtown",
	}
	assert.NoError(t, valid.Validate())

	reversed := valid
	reversed.EndDate = start
	assert.ErrorIs(t, reversed.Validate(), domain.ErrValidation)

	free := valid
	free.TotalAmount = 0
	assert.ErrorIs(t, free.Validate(), domain.ErrValidation)

	noLocations := valid
	noLocations.PickupLocation = ""
	noLocations.DropoffLocation = ""
	assert.NoError(t, noLocations.Validate())

	fractionalCents := valid
	fractionalCents.TotalAmount = 100.005
	assert.EqualError(t, fractionalCents.Validate(), "Total amount must have at most two decimal places")

	cents := valid
	cents.TotalAmount = 19.99
	assert.NoError(t, cents.Validate())

	huge := valid
	huge.TotalAmount = 1e13
	assert.EqualError(t, huge.Validate(), "Total amount must not exceed 999999999999.99")

	ceiling := valid
	ceiling.TotalAmount = domain.MaxAmount
	assert.NoError(t, ceiling.Validate())
}

func TestRoundCents(t *testing.T) {
	assert.Equal(t, 19.99, domain.RoundCents(19.990000000000002))
	assert.Equal(t, 100.0, domain.RoundCents(100))
}

func TestVehicleValidate_PriceBounds(t *testing.T) {
	v := &domain.Vehicle{
		Name: "Model 3", Brand: "Tesla", Model: "2024", Type: domain.VehicleEV,
		FuelType: domain.FuelElectric, Transmission: domain.TransmissionAutomatic,
		PricePerDay: 189.5, Seats: 5, LicensePlate: "B 1234 XYZ",
	}
	assert.NoError(t, v.Validate())

	v.PricePerDay = 1e11
	assert.EqualError(t, v.Validate(), "Price per day must not exceed 9999999999.99")

	v.PricePerDay = 0
	assert.EqualError(t, v.Validate(), "Price per day must be positive")
}
