package domain

import "math"

type FinancialEventKind string

const (
	FinancialBookingCreated   FinancialEventKind = "booking_created"
	FinancialPaymentCompleted FinancialEventKind = "payment_completed"
)

// FinancialEvent describes something that moves a user's counters.
type FinancialEvent struct {
	Kind   FinancialEventKind
	Amount float64
	Method PaymentMethod
}

// StatsDelta is an increment applied atomically to the user's running totals.
type StatsDelta struct {
	Bookings      int
	Spent         float64
	LoyaltyPoints int
}

func (d StatsDelta) IsZero() bool {
	return d == StatsDelta{}
}

// LoyaltyFor awards one point per ten currency units booked.
func LoyaltyFor(amount float64) int {
	if amount <= 0 {
		return 0
	}

	return int(math.Floor(amount / 10))
}

// Delta is the single rule for how a financial event changes user stats.
// Spend is counted when money is actually received: at creation for prepaid
// bookings, at payment completion for cash-on-return ones. Loyalty accrues
// on booking creation regardless of method.
func (e FinancialEvent) Delta() StatsDelta {
	switch e.Kind {
	case FinancialBookingCreated:
		d := StatsDelta{Bookings: 1, LoyaltyPoints: LoyaltyFor(e.Amount)}
		if e.Method.Prepaid() {
			d.Spent = e.Amount
		}

		return d

	case FinancialPaymentCompleted:
		return StatsDelta{Spent: e.Amount}
	}

	return StatsDelta{}
}

type UserStats struct {
	TotalBookings int     `json:"totalBookings"`
	TotalSpent    float64 `json:"totalSpent"`
	LoyaltyPoints int     `json:"loyaltyPoints"`
}

// ProfileStats is computed from stored bookings and ledger entries on read.
type ProfileStats struct {
	TotalBookings     int     `json:"totalBookings"`
	ActiveBookings    int     `json:"activeBookings"`
	CompletedBookings int     `json:"completedBookings"`
	TotalSpent        float64 `json:"totalSpent"`
}

func NewProfileStats(byStatus map[BookingStatus]int, payments []PaymentSummary) ProfileStats {
	var st ProfileStats
	for status, n := range byStatus {
		st.TotalBookings += n
		switch status {
		case BookingActive:
			st.ActiveBookings += n
		case BookingCompleted:
			st.CompletedBookings += n
		}
	}

	for _, p := range payments {
		if p.Status == PaymentSuccess {
			st.TotalSpent += p.Total
		}
	}

	return st
}
