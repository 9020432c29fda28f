package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingActive    BookingStatus = "active"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingActive, BookingCompleted, BookingCancelled:
		return true
	}

	return false
}

func (s BookingStatus) Terminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

type PaymentStatus string

const (
	PaymentPending     PaymentStatus = "pending"
	PaymentPartialPaid PaymentStatus = "partial_paid"
	PaymentFullPaid    PaymentStatus = "full_paid"
	PaymentFailed      PaymentStatus = "failed"
)

type PaymentMethod string

const (
	MethodCard         PaymentMethod = "card"
	MethodCashOnReturn PaymentMethod = "cash_on_return"
	MethodOther        PaymentMethod = "other"
)

// ParsePaymentMethod maps a client supplied method onto the known set.
// An empty value falls back to card, anything unrecognised becomes other.
func ParsePaymentMethod(raw string) PaymentMethod {
	switch PaymentMethod(strings.TrimSpace(raw)) {
	case "", MethodCard:
		return MethodCard
	case MethodCashOnReturn:
		return MethodCashOnReturn
	default:
		return MethodOther
	}
}

// Prepaid reports whether a booking made with this method is settled at creation time.
func (m PaymentMethod) Prepaid() bool {
	return m != MethodCashOnReturn
}

type Booking struct {
	ID              uuid.UUID     `json:"id"`
	UserID          uuid.UUID     `json:"userId"`
	VehicleID       uuid.UUID     `json:"carId"`
	DriverID        *uuid.UUID    `json:"driverId,omitempty"`
	StartDate       time.Time     `json:"startDate"`
	EndDate         time.Time     `json:"endDate"`
	TotalAmount     float64       `json:"totalAmount"`
	PaidAmount      float64       `json:"paidAmount"`
	Status          BookingStatus `json:"status"`
	PaymentStatus   PaymentStatus `json:"paymentStatus"`
	PaymentMethod   PaymentMethod `json:"paymentMethod"`
	PaymentID       string        `json:"paymentId,omitempty"`
	PickupLocation  string        `json:"pickupLocation"`
	DropoffLocation string        `json:"dropoffLocation"`
	Notes           string        `json:"notes,omitempty"`
	Version         int           `json:"version"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`

	Vehicle *VehicleSummary `json:"car,omitempty"`
	User    *UserSummary    `json:"user,omitempty"`
	Driver  *DriverSummary  `json:"driver,omitempty"`
}

type BookingRequest struct {
	VehicleID       uuid.UUID
	StartDate       time.Time
	EndDate         time.Time
	TotalAmount     float64
	PaymentMethod   PaymentMethod
	PickupLocation  string
	DropoffLocation string
	Notes           string
}

func (r BookingRequest) Validate() error {
	if r.VehicleID == uuid.Nil {
		return Errorf(ErrValidation, "Car id is required")
	}

	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		return Errorf(ErrValidation, "Start date and end date are required")
	}

	if !r.EndDate.After(r.StartDate) {
		return Errorf(ErrValidation, "End date must be after start date")
	}

	return validateAmount("Total amount", r.TotalAmount, MaxAmount)
}

func (b *Booking) State() State {
	return State{Status: b.Status, PaymentStatus: b.PaymentStatus}
}

func (b *Booking) Apply(s State) {
	b.Status = s.Status
	b.PaymentStatus = s.PaymentStatus
}

func (b *Booking) IsFullyPaid() bool {
	return b.PaymentStatus == PaymentFullPaid
}

// Settled reports whether paymentStatus and paidAmount agree with each other.
func (b *Booking) Settled() bool {
	return (b.PaymentStatus == PaymentFullPaid) == (b.PaidAmount == b.TotalAmount)
}

type BookingFilter struct {
	Status *BookingStatus
	Page   Page
}

type Page struct {
	Number int
	Limit  int
}

func (p Page) Normalize(defaultLimit int) Page {
	if p.Number < 1 {
		p.Number = 1
	}

	if p.Limit < 1 {
		p.Limit = defaultLimit
	}

	return p
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Pages int `json:"pages"`
}

func NewPagination(total int, p Page) Pagination {
	pages := 0
	if p.Limit > 0 {
		pages = (total + p.Limit - 1) / p.Limit
	}

	return Pagination{Total: total, Page: p.Number, Pages: pages}
}
