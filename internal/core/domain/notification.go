package domain

import (
	"fmt"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationBookingUpdate  NotificationType = "booking_update"
	NotificationPaymentSuccess NotificationType = "payment_success"
)

type Notification struct {
	UserID  uuid.UUID        `json:"userId"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
	Type    NotificationType `json:"type"`
	Link    string           `json:"link,omitempty"`
}

func BookingCreatedNotification(b *Booking) Notification {
	msg := "Your booking has been confirmed. Payment is due on return."
	if b.IsFullyPaid() {
		msg = fmt.Sprintf("Your booking is active. %.2f has been charged.", b.TotalAmount)
	}

	return Notification{
		UserID:  b.UserID,
		Title:   "Booking created",
		Message: msg,
		Type:    NotificationBookingUpdate,
		Link:    "/bookings/" + b.ID.String(),
	}
}

func PaymentCompletedNotification(b *Booking, p *Payment) Notification {
	return Notification{
		UserID:  b.UserID,
		Title:   "Payment received",
		Message: fmt.Sprintf("Payment %s of %.2f was recorded for your booking.", p.TransactionID, p.Amount),
		Type:    NotificationPaymentSuccess,
		Link:    "/bookings/" + b.ID.String(),
	}
}

// DriverSummary is the chauffeur data embedded in profile bookings.
type DriverSummary struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Phone  string    `json:"phone"`
	Rating float64   `json:"rating"`
}
