package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/srgjo27/car_rental/internal/core/domain"
	"github.com/srgjo27/car_rental/internal/platform/metrics"
	"go.opentelemetry.io/otel/attribute"
)

const cashPaymentNote = "Cash payment marked as paid by user"

type PayOnlineRequest struct {
	PaymentMethod string `json:"paymentMethod"`
}

// MarkPaidByCash settles a booking the owner paid for in cash.
func (s *BookingService) MarkPaidByCash(ctx context.Context, caller domain.Identity, bookingID uuid.UUID) (*domain.Booking, error) {
	booking, _, err := s.completePayment(ctx, caller, bookingID, domain.ChannelCash, cashPaymentNote)
	return booking, err
}

// PayOnline settles a booking through the card channel and returns the new ledger entry.
func (s *BookingService) PayOnline(ctx context.Context, caller domain.Identity, bookingID uuid.UUID, req PayOnlineRequest) (*domain.Booking, *domain.Payment, error) {
	var notes string
	if req.PaymentMethod != "" && req.PaymentMethod != string(domain.MethodCard) {
		notes = "Requested method: " + req.PaymentMethod
	}

	return s.completePayment(ctx, caller, bookingID, domain.ChannelCard, notes)
}

func (s *BookingService) completePayment(ctx context.Context, caller domain.Identity, bookingID uuid.UUID, channel domain.Channel, notes string) (*domain.Booking, *domain.Payment, error) {
	ctx, span := tracer.Start(ctx, "BookingService.CompletePayment")
	defer span.End()

	span.SetAttributes(
		attribute.String("booking.id", bookingID.String()),
		attribute.String("payment.channel", string(channel)),
	)
	log := zerolog.Ctx(ctx).With().Str("booking_id", bookingID.String()).Str("channel", string(channel)).Logger()

	release, err := s.locker.Acquire(ctx, lockKey(bookingID))
	if err != nil {
		metrics.PaymentRejections.WithLabelValues("locked").Inc()
		return nil, nil, fail(span, err)
	}
	defer release()

	booking, err := s.bookingRepo.GetByIDForUser(ctx, bookingID, caller.UserID)
	if err != nil {
		return nil, nil, fail(span, err)
	}

	next, err := domain.Transition(booking.State(), domain.EventPaymentCompleted)
	if err != nil {
		metrics.PaymentRejections.WithLabelValues(rejectionReason(err)).Inc()
		return nil, nil, fail(span, err)
	}

	expected := booking.Version
	now := s.now()

	booking.Apply(next)
	booking.PaidAmount = booking.TotalAmount
	booking.UpdatedAt = now
	if channel == domain.ChannelCard {
		booking.PaymentMethod = domain.MethodCard
	}

	payment := domain.NewFullPayment(booking, channel, notes, now)
	booking.PaymentID = payment.TransactionID

	delta := domain.FinancialEvent{
		Kind:   domain.FinancialPaymentCompleted,
		Amount: booking.TotalAmount,
		Method: booking.PaymentMethod,
	}.Delta()

	if err := ensureSettled(booking); err != nil {
		return nil, nil, fail(span, err)
	}

	err = s.bookingRepo.CompletePayment(ctx, booking, expected, payment, delta)
	if errors.Is(err, domain.ErrVersionConflict) {
		err = s.resolveConflict(ctx, bookingID, caller.UserID, err)
	}
	if err != nil {
		metrics.PaymentRejections.WithLabelValues(rejectionReason(err)).Inc()
		return nil, nil, fail(span, err)
	}

	metrics.PaymentsRecorded.WithLabelValues(string(channel)).Inc()
	log.Info().
		Str("transaction_id", payment.TransactionID).
		Float64("amount", payment.Amount).
		Msg("payment completed")

	s.notify(ctx, domain.PaymentCompletedNotification(booking, payment))

	return booking, payment, nil
}

// resolveConflict reloads a booking whose version moved underneath us. A
// concurrent payment that won is reported as AlreadyPaid; anything else stays
// a conflict for the client to resolve.
func (s *BookingService) resolveConflict(ctx context.Context, bookingID, userID uuid.UUID, conflict error) error {
	current, err := s.bookingRepo.GetByIDForUser(ctx, bookingID, userID)
	if err != nil {
		return err
	}

	if current.IsFullyPaid() {
		return domain.ErrAlreadyPaid
	}

	return conflict
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrAlreadyPaid):
		return "already_paid"
	case errors.Is(err, domain.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, domain.ErrVersionConflict):
		return "conflict"
	default:
		return "error"
	}
}
