package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/srgjo27/car_rental/internal/adapter/invoice"
	"github.com/srgjo27/car_rental/internal/adapter/lock"
	"github.com/srgjo27/car_rental/internal/core/domain"
	"github.com/srgjo27/car_rental/internal/core/ports/mocks"
	"github.com/srgjo27/car_rental/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMarkPaidByCash(t *testing.T) {
	f := newBookingFixture(t)
	caller := domain.Identity{UserID: uuid.New(), Role: domain.RoleUser}
	b := cashBooking(caller.UserID, 300)

	f.bookings.On("GetByIDForUser", mock.Anything, b.ID, caller.UserID).Return(b, nil)
	f.bookings.On("CompletePayment", mock.Anything,
		mock.MatchedBy(func(got *domain.Booking) bool {
			return got.Status == domain.BookingActive && got.PaymentStatus == domain.PaymentFullPaid &&
				got.PaidAmount == 300 && got.PaymentMethod == domain.MethodCashOnReturn
		}),
		1,
		mock.MatchedBy(func(p *domain.Payment) bool {
			return p.Method == domain.ChannelCash && p.Amount == 300 &&
				p.Notes == "Cash payment marked as paid by user" && p.UserID == caller.UserID
		}),
		domain.StatsDelta{Spent: 300},
	).Return(nil)

	got, err := f.service.MarkPaidByCash(context.Background(), caller, b.ID)

	require.NoError(t, err)
	assert.Equal(t, domain.BookingActive, got.Status)
	assert.Equal(t, domain.PaymentFullPaid, got.PaymentStatus)
	assert.Equal(t, got.TotalAmount, got.PaidAmount)
	assert.True(t, got.Settled())
}

func TestPayOnline(t *testing.T) {
	f := newBookingFixture(t)
	caller := domain.Identity{UserID: uuid.New(), Role: domain.RoleUser}
	b := cashBooking(caller.UserID, 420)

	f.bookings.On("GetByIDForUser", mock.Anything, b.ID, caller.UserID).Return(b, nil)
	f.bookings.On("CompletePayment", mock.Anything, mock.AnythingOfType("*domain.Booking"), 1,
		mock.AnythingOfType("*domain.Payment"), domain.StatsDelta{Spent: 420}).Return(nil)

	got, payment, err := f.service.PayOnline(context.Background(), caller, b.ID, services.PayOnlineRequest{PaymentMethod: "card"})

	require.NoError(t, err)
	assert.Equal(t, domain.MethodCard, got.PaymentMethod)
	assert.Equal(t, domain.PaymentFullPaid, got.PaymentStatus)
	assert.Equal(t, domain.ChannelCard, payment.Method)
	assert.Equal(t, 420.0, payment.Amount)
	assert.Equal(t, payment.TransactionID, got.PaymentID)
	assert.Empty(t, payment.Notes)
}

func TestCompletePayment_AlreadyPaidWritesNothing(t *testing.T) {
	f := newBookingFixture(t)
	caller := domain.Identity{UserID: uuid.New(), Role: domain.RoleUser}
	b := cashBooking(caller.UserID, 300)
	b.Status = domain.BookingActive
	b.PaymentStatus = domain.PaymentFullPaid
	b.PaidAmount = 300

	f.bookings.On("GetByIDForUser", mock.Anything, b.ID, caller.UserID).Return(b, nil)

	_, err := f.service.MarkPaidByCash(context.Background(), caller, b.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyPaid)

	_, _, err = f.service.PayOnline(context.Background(), caller, b.ID, services.PayOnlineRequest{})
	assert.ErrorIs(t, err, domain.ErrAlreadyPaid)

	f.bookings.AssertNotCalled(t, "CompletePayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCompletePayment_CancelledBookingIsRejected(t *testing.T) {
	f := newBookingFixture(t)
	caller := domain.Identity{UserID: uuid.New(), Role: domain.RoleUser}
	b := cashBooking(caller.UserID, 300)
	b.Status = domain.BookingCancelled

	f.bookings.On("GetByIDForUser", mock.Anything, b.ID, caller.UserID).Return(b, nil)

	_, _, err := f.service.PayOnline(context.Background(), caller, b.ID, services.PayOnlineRequest{PaymentMethod: "card"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCompletePayment_NotOwner(t *testing.T) {
	f := newBookingFixture(t)
	caller := domain.Identity{UserID: uuid.New(), Role: domain.RoleUser}
	bookingID := uuid.New()

	f.bookings.On("GetByIDForUser", mock.Anything, bookingID, caller.UserID).Return(nil, domain.ErrNotFound)

	_, err := f.service.MarkPaidByCash(context.Background(), caller, bookingID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompletePayment_LostRace(t *testing.T) {
	caller := domain.Identity{UserID: uuid.New(), Role: domain.RoleUser}

	t.Run("winner paid it", func(t *testing.T) {
		f := newBookingFixture(t)
		stale := cashBooking(caller.UserID, 300)
		fresh := *stale
		fresh.Status = domain.BookingActive
		fresh.PaymentStatus = domain.PaymentFullPaid
		fresh.PaidAmount = 300
		fresh.Version = 2

		f.bookings.On("GetByIDForUser", mock.Anything, stale.ID, caller.UserID).Return(stale, nil).Once()
		f.bookings.On("GetByIDForUser", mock.Anything, stale.ID, caller.UserID).Return(&fresh, nil).Once()
		f.bookings.On("CompletePayment", mock.Anything, mock.Anything, 1, mock.Anything, mock.Anything).
			Return(domain.ErrVersionConflict)

		_, err := f.service.MarkPaidByCash(context.Background(), caller, stale.ID)
		assert.ErrorIs(t, err, domain.ErrAlreadyPaid)
	})

	t.Run("winner changed something else", func(t *testing.T) {
		f := newBookingFixture(t)
		stale := cashBooking(caller.UserID, 300)
		fresh := *stale
		fresh.Version = 2

		f.bookings.On("GetByIDForUser", mock.Anything, stale.ID, caller.UserID).Return(stale, nil).Once()
		f.bookings.On("GetByIDForUser", mock.Anything, stale.ID, caller.UserID).Return(&fresh, nil).Once()
		f.bookings.On("CompletePayment", mock.Anything, mock.Anything, 1, mock.Anything, mock.Anything).
			Return(domain.ErrVersionConflict)

		_, err := f.service.MarkPaidByCash(context.Background(), caller, stale.ID)
		assert.ErrorIs(t, err, domain.ErrVersionConflict)
	})
}

type busyLocker struct{}

func (busyLocker) Acquire(context.Context, string) (func(), error) {
	return nil, domain.Errorf(domain.ErrVersionConflict, "Booking is being processed")
}

func TestCompletePayment_LockHeld(t *testing.T) {
	bookings := mocks.NewBookingRepository(t)
	service := services.NewBookingService(bookings, mocks.NewVehicleRepository(t), mocks.NewPaymentRepository(t),
		busyLocker{}, mocks.NewNotificationPublisher(t), invoice.NewRenderer("Car Rental"))

	_, err := service.MarkPaidByCash(context.Background(), domain.Identity{UserID: uuid.New()}, uuid.New())
	assert.ErrorIs(t, err, domain.ErrVersionConflict)
}

// ledgerStore is a minimal in-memory BookingRepository enforcing the version check.
type ledgerStore struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]domain.Booking
	payments []domain.Payment
	spent    map[uuid.UUID]float64
}

func newLedgerStore(bs ...*domain.Booking) *ledgerStore {
	s := &ledgerStore{bookings: map[uuid.UUID]domain.Booking{}, spent: map[uuid.UUID]float64{}}
	for _, b := range bs {
		s.bookings[b.ID] = *b
	}
	return s
}

func (s *ledgerStore) CreateBooking(context.Context, *domain.Booking, *domain.Payment, domain.StatsDelta) error {
	panic("not used")
}

func (s *ledgerStore) CompletePayment(_ context.Context, b *domain.Booking, expected int, p *domain.Payment, d domain.StatsDelta) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.bookings[b.ID]
	if !ok || cur.UserID != b.UserID || cur.Version != expected {
		return domain.ErrVersionConflict
	}

	b.Version = expected + 1
	s.bookings[b.ID] = *b
	s.payments = append(s.payments, *p)
	s.spent[b.UserID] += d.Spent
	return nil
}

func (s *ledgerStore) UpdateStatus(context.Context, *domain.Booking, int) error { panic("not used") }

func (s *ledgerStore) GetByID(context.Context, uuid.UUID) (*domain.Booking, error) { panic("not used") }

func (s *ledgerStore) GetByIDForUser(_ context.Context, id, userID uuid.UUID) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok || b.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return &b, nil
}

func (s *ledgerStore) ListByUser(context.Context, uuid.UUID, domain.BookingFilter) ([]domain.Booking, int, error) {
	panic("not used")
}

func (s *ledgerStore) ListAll(context.Context) ([]domain.Booking, error) { panic("not used") }

func (s *ledgerStore) CountByStatus(context.Context, uuid.UUID) (map[domain.BookingStatus]int, error) {
	panic("not used")
}

func TestCompletePayment_ConcurrentRequestsRecordOnePayment(t *testing.T) {
	userID := uuid.New()
	b := cashBooking(userID, 300)
	store := newLedgerStore(b)

	publisher := mocks.NewNotificationPublisher(t)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()

	service := services.NewBookingService(store, mocks.NewVehicleRepository(t), mocks.NewPaymentRepository(t),
		lock.NewKeyedMutex(), publisher, invoice.NewRenderer("Car Rental"))

	caller := domain.Identity{UserID: userID, Role: domain.RoleUser}

	const attempts = 8
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_, errs[i] = service.MarkPaidByCash(context.Background(), caller, b.ID)
			} else {
				_, _, errs[i] = service.PayOnline(context.Background(), caller, b.ID, services.PayOnlineRequest{})
			}
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrAlreadyPaid)
	}

	assert.Equal(t, 1, succeeded)
	assert.Len(t, store.payments, 1)
	assert.Equal(t, 300.0, store.spent[userID])

	final, err := store.GetByIDForUser(context.Background(), b.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentFullPaid, final.PaymentStatus)
	assert.Equal(t, 2, final.Version)
}
