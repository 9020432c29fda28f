package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/srgjo27/car_rental/internal/core/domain"
	"github.com/srgjo27/car_rental/internal/core/ports"
	"github.com/srgjo27/car_rental/internal/platform/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/srgjo27/car_rental/internal/core/services")

type CreateBookingRequest struct {
	CarID           string    `json:"carId"`
	StartDate       domain.Date `json:"startDate"`
	EndDate         domain.Date `json:"endDate"`
	TotalAmount     float64     `json:"totalAmount"`
	PaymentMethod   string      `json:"paymentMethod"`
	PickupLocation  string      `json:"pickupLocation"`
	DropoffLocation string      `json:"dropoffLocation"`
	Notes           string      `json:"notes"`
}

type BookingService struct {
	bookingRepo ports.BookingRepository
	vehicleRepo ports.VehicleRepository
	paymentRepo ports.PaymentRepository
	locker      ports.Locker
	publisher   ports.NotificationPublisher
	invoices    ports.InvoiceRenderer
	now         func() time.Time
}

func NewBookingService(
	bookingRepo ports.BookingRepository,
	vehicleRepo ports.VehicleRepository,
	paymentRepo ports.PaymentRepository,
	locker ports.Locker,
	publisher ports.NotificationPublisher,
	invoices ports.InvoiceRenderer,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		vehicleRepo: vehicleRepo,
		paymentRepo: paymentRepo,
		locker:      locker,
		publisher:   publisher,
		invoices:    invoices,
		now:         time.Now,
	}
}

func (s *BookingService) CreateBooking(ctx context.Context, caller domain.Identity, req CreateBookingRequest) (*domain.Booking, error) {
	ctx, span := tracer.Start(ctx, "BookingService.CreateBooking")
	defer span.End()

	vehicleID, err := uuid.Parse(req.CarID)
	if err != nil {
		return nil, fail(span, domain.Errorf(domain.ErrValidation, "Invalid car id"))
	}

	in := domain.BookingRequest{
		VehicleID:       vehicleID,
		StartDate:       req.StartDate.Time,
		EndDate:         req.EndDate.Time,
		TotalAmount:     req.TotalAmount,
		PaymentMethod:   domain.ParsePaymentMethod(req.PaymentMethod),
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		Notes:           req.Notes,
	}
	if err := in.Validate(); err != nil {
		return nil, fail(span, err)
	}
	in.TotalAmount = domain.RoundCents(in.TotalAmount)

	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fail(span, domain.Errorf(domain.ErrNotFound, "Car not found"))
	}
	if err != nil {
		return nil, fail(span, err)
	}

	state, err := domain.Transition(domain.State{}, domain.BookedEvent(in.PaymentMethod))
	if err != nil {
		return nil, fail(span, err)
	}

	// Every prepaid method is stored as card; only cash-on-return is kept distinct.
	method := domain.MethodCard
	if !in.PaymentMethod.Prepaid() {
		method = domain.MethodCashOnReturn
	}

	now := s.now()
	booking := &domain.Booking{
		ID:              uuid.New(),
		UserID:          caller.UserID,
		VehicleID:       vehicleID,
		StartDate:       in.StartDate,
		EndDate:         in.EndDate,
		TotalAmount:     in.TotalAmount,
		PaymentMethod:   method,
		PickupLocation:  in.PickupLocation,
		DropoffLocation: in.DropoffLocation,
		Notes:           in.Notes,
		Version:         1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	booking.Apply(state)

	var payment *domain.Payment
	if booking.IsFullyPaid() {
		booking.PaidAmount = booking.TotalAmount
		payment = domain.NewFullPayment(booking, domain.ChannelCard, "", now)
		booking.PaymentID = payment.TransactionID
	}

	delta := domain.FinancialEvent{
		Kind:   domain.FinancialBookingCreated,
		Amount: booking.TotalAmount,
		Method: in.PaymentMethod,
	}.Delta()

	if err := ensureSettled(booking); err != nil {
		return nil, fail(span, err)
	}

	if err := s.bookingRepo.CreateBooking(ctx, booking, payment, delta); err != nil {
		return nil, fail(span, err)
	}

	booking.Vehicle = vehicle.Summary()

	span.SetAttributes(
		attribute.String("booking.id", booking.ID.String()),
		attribute.String("booking.payment_method", string(method)),
	)
	metrics.BookingsCreated.WithLabelValues(string(method)).Inc()
	if payment != nil {
		metrics.PaymentsRecorded.WithLabelValues(string(payment.Method)).Inc()
	}

	zerolog.Ctx(ctx).Info().
		Str("booking_id", booking.ID.String()).
		Str("status", string(booking.Status)).
		Str("payment_status", string(booking.PaymentStatus)).
		Float64("total_amount", booking.TotalAmount).
		Msg("booking created")

	s.notify(ctx, domain.BookingCreatedNotification(booking))

	return booking, nil
}

func (s *BookingService) ListOwnBookings(ctx context.Context, caller domain.Identity) ([]domain.Booking, error) {
	ctx, span := tracer.Start(ctx, "BookingService.ListOwnBookings")
	defer span.End()

	bookings, _, err := s.bookingRepo.ListByUser(ctx, caller.UserID, domain.BookingFilter{})
	if err != nil {
		return nil, fail(span, err)
	}

	return bookings, nil
}

func (s *BookingService) ListAllBookings(ctx context.Context, caller domain.Identity) ([]domain.Booking, error) {
	ctx, span := tracer.Start(ctx, "BookingService.ListAllBookings")
	defer span.End()

	if !caller.IsAdmin() {
		return nil, fail(span, domain.ErrForbidden)
	}

	bookings, err := s.bookingRepo.ListAll(ctx)
	if err != nil {
		return nil, fail(span, err)
	}

	return bookings, nil
}

// GetBooking never reveals whether a booking owned by someone else exists.
func (s *BookingService) GetBooking(ctx context.Context, caller domain.Identity, bookingID uuid.UUID) (*domain.Booking, error) {
	ctx, span := tracer.Start(ctx, "BookingService.GetBooking")
	defer span.End()

	booking, err := s.bookingRepo.GetByIDForUser(ctx, bookingID, caller.UserID)
	if err != nil {
		return nil, fail(span, err)
	}

	return booking, nil
}

type StatusUpdateRequest struct {
	Status string `json:"status"`
}

// UpdateStatus lets an admin complete or cancel a booking.
func (s *BookingService) UpdateStatus(ctx context.Context, caller domain.Identity, bookingID uuid.UUID, req StatusUpdateRequest) (*domain.Booking, error) {
	ctx, span := tracer.Start(ctx, "BookingService.UpdateStatus")
	defer span.End()

	if !caller.IsAdmin() {
		return nil, fail(span, domain.ErrForbidden)
	}

	var ev domain.Event
	switch domain.BookingStatus(req.Status) {
	case domain.BookingCompleted:
		ev = domain.EventComplete
	case domain.BookingCancelled:
		ev = domain.EventCancel
	default:
		return nil, fail(span, domain.Errorf(domain.ErrValidation, "Status must be completed or cancelled"))
	}

	release, err := s.locker.Acquire(ctx, lockKey(bookingID))
	if err != nil {
		return nil, fail(span, err)
	}
	defer release()

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fail(span, err)
	}

	next, err := domain.Transition(booking.State(), ev)
	if err != nil {
		return nil, fail(span, err)
	}

	expected := booking.Version
	booking.Apply(next)
	booking.UpdatedAt = s.now()

	if err := ensureSettled(booking); err != nil {
		return nil, fail(span, err)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, booking, expected); err != nil {
		return nil, fail(span, err)
	}

	zerolog.Ctx(ctx).Info().
		Str("booking_id", booking.ID.String()).
		Str("status", string(booking.Status)).
		Msg("booking status updated by admin")

	s.notify(ctx, domain.Notification{
		UserID:  booking.UserID,
		Title:   "Booking " + string(booking.Status),
		Message: fmt.Sprintf("Your booking is now %s.", booking.Status),
		Type:    domain.NotificationBookingUpdate,
		Link:    "/bookings/" + booking.ID.String(),
	})

	return booking, nil
}

// Invoice renders the owner's booking and its ledger entries as a PDF.
func (s *BookingService) Invoice(ctx context.Context, caller domain.Identity, bookingID uuid.UUID) ([]byte, *domain.Booking, error) {
	ctx, span := tracer.Start(ctx, "BookingService.Invoice")
	defer span.End()

	booking, err := s.bookingRepo.GetByIDForUser(ctx, bookingID, caller.UserID)
	if err != nil {
		return nil, nil, fail(span, err)
	}

	payments, err := s.paymentRepo.ListByBooking(ctx, booking.ID)
	if err != nil {
		return nil, nil, fail(span, err)
	}

	pdf, err := s.invoices.Render(booking, payments)
	if err != nil {
		return nil, nil, fail(span, err)
	}

	return pdf, booking, nil
}

func (s *BookingService) notify(ctx context.Context, n domain.Notification) {
	if err := s.publisher.Publish(ctx, n); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).
			Str("user_id", n.UserID.String()).
			Str("type", string(n.Type)).
			Msg("failed to publish notification")
	}
}

// ensureSettled refuses to persist a booking whose paymentStatus and
// paidAmount disagree.
func ensureSettled(b *domain.Booking) error {
	if b.Settled() {
		return nil
	}

	return fmt.Errorf("booking %s: payment status %s with paid amount %.2f of %.2f",
		b.ID, b.PaymentStatus, b.PaidAmount, b.TotalAmount)
}

func lockKey(bookingID uuid.UUID) string {
	return "booking:" + bookingID.String()
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
