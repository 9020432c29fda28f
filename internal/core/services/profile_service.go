package services

import (
	"context"

	"github.com/srgjo27/car_rental/internal/core/domain"
	"github.com/srgjo27/car_rental/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

const defaultPageLimit = 10

type Profile struct {
	User     *domain.User        `json:"user"`
	Bookings []domain.Booking    `json:"bookings"`
	Payments []domain.Payment    `json:"payments"`
	Stats    domain.ProfileStats `json:"stats"`
}

type BookingPage struct {
	Bookings   []domain.Booking  `json:"bookings"`
	Pagination domain.Pagination `json:"pagination"`
}

type PaymentPage struct {
	Payments   []domain.Payment        `json:"payments"`
	Stats      []domain.PaymentSummary `json:"stats"`
	Pagination domain.Pagination       `json:"pagination"`
}

// ProfileService assembles read models across users, bookings and the ledger.
// It never writes.
type ProfileService struct {
	userRepo    ports.UserRepository
	bookingRepo ports.BookingRepository
	paymentRepo ports.PaymentRepository
}

func NewProfileService(userRepo ports.UserRepository, bookingRepo ports.BookingRepository, paymentRepo ports.PaymentRepository) *ProfileService {
	return &ProfileService{
		userRepo:    userRepo,
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
	}
}

func (s *ProfileService) GetProfile(ctx context.Context, caller domain.Identity) (*Profile, error) {
	ctx, span := tracer.Start(ctx, "ProfileService.GetProfile")
	defer span.End()

	user, err := s.userRepo.GetByID(ctx, caller.UserID)
	if err != nil {
		return nil, fail(span, err)
	}

	var (
		bookings []domain.Booking
		payments []domain.Payment
		counts   map[domain.BookingStatus]int
		summary  []domain.PaymentSummary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		bookings, _, err = s.bookingRepo.ListByUser(gctx, caller.UserID, domain.BookingFilter{})
		return err
	})
	g.Go(func() (err error) {
		payments, _, err = s.paymentRepo.ListByUser(gctx, caller.UserID, domain.Page{})
		return err
	})
	g.Go(func() (err error) {
		counts, err = s.bookingRepo.CountByStatus(gctx, caller.UserID)
		return err
	})
	g.Go(func() (err error) {
		summary, err = s.paymentRepo.SummaryByStatus(gctx, caller.UserID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fail(span, err)
	}

	return &Profile{
		User:     user,
		Bookings: nonNil(bookings),
		Payments: nonNil(payments),
		Stats:    domain.NewProfileStats(counts, summary),
	}, nil
}

func (s *ProfileService) ListBookings(ctx context.Context, caller domain.Identity, status string, page domain.Page) (*BookingPage, error) {
	ctx, span := tracer.Start(ctx, "ProfileService.ListBookings")
	defer span.End()

	filter := domain.BookingFilter{Page: page.Normalize(defaultPageLimit)}
	if status != "" {
		st := domain.BookingStatus(status)
		if !st.Valid() {
			return nil, fail(span, validationf("Unknown booking status %q", status))
		}
		filter.Status = &st
	}

	bookings, total, err := s.bookingRepo.ListByUser(ctx, caller.UserID, filter)
	if err != nil {
		return nil, fail(span, err)
	}

	return &BookingPage{
		Bookings:   nonNil(bookings),
		Pagination: domain.NewPagination(total, filter.Page),
	}, nil
}

func (s *ProfileService) ListPayments(ctx context.Context, caller domain.Identity, page domain.Page) (*PaymentPage, error) {
	ctx, span := tracer.Start(ctx, "ProfileService.ListPayments")
	defer span.End()

	page = page.Normalize(defaultPageLimit)

	payments, total, err := s.paymentRepo.ListByUser(ctx, caller.UserID, page)
	if err != nil {
		return nil, fail(span, err)
	}

	summary, err := s.paymentRepo.SummaryByStatus(ctx, caller.UserID)
	if err != nil {
		return nil, fail(span, err)
	}

	return &PaymentPage{
		Payments:   nonNil(payments),
		Stats:      nonNil(summary),
		Pagination: domain.NewPagination(total, page),
	}, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}

	return s
}
