package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/srgjo27/car_rental/internal/core/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, role *domain.Role) ([]domain.User, error)
	UpdateProfile(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
	DeleteAdmin(ctx context.Context, userID uuid.UUID) error
}

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	GetByID(ctx context.Context, vehicleID uuid.UUID) (*domain.Vehicle, error)
	List(ctx context.Context) ([]domain.Vehicle, error)
	Update(ctx context.Context, vehicle *domain.Vehicle) error
	Delete(ctx context.Context, vehicleID uuid.UUID) error
}

// BookingRepository owns the transactional writes that touch a booking,
// its ledger entry and the owner's stats together.
type BookingRepository interface {
	CreateBooking(ctx context.Context, booking *domain.Booking, payment *domain.Payment, delta domain.StatsDelta) error
	CompletePayment(ctx context.Context, booking *domain.Booking, expectedVersion int, payment *domain.Payment, delta domain.StatsDelta) error
	UpdateStatus(ctx context.Context, booking *domain.Booking, expectedVersion int) error
	GetByID(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error)
	GetByIDForUser(ctx context.Context, bookingID, userID uuid.UUID) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID, filter domain.BookingFilter) ([]domain.Booking, int, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
	CountByStatus(ctx context.Context, userID uuid.UUID) (map[domain.BookingStatus]int, error)
}

// PaymentRepository is read-only; ledger rows are inserted by BookingRepository.
type PaymentRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID, page domain.Page) ([]domain.Payment, int, error)
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]domain.Payment, error)
	SummaryByStatus(ctx context.Context, userID uuid.UUID) ([]domain.PaymentSummary, error)
}
