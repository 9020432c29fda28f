package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type PaymentType string

const (
	PaymentTypeAdvance PaymentType = "advance"
	PaymentTypeFull    PaymentType = "full_payment"
	PaymentTypeBalance PaymentType = "balance_payment"
	PaymentTypeRefund  PaymentType = "refund"
)

// Channel is the instrument a ledger entry was settled with.
type Channel string

const (
	ChannelCard     Channel = "card"
	ChannelCash     Channel = "cash"
	ChannelTransfer Channel = "transfer"
)

type PaymentRecordStatus string

const (
	PaymentSuccess  PaymentRecordStatus = "success"
	PaymentFailure  PaymentRecordStatus = "failed"
	PaymentInFlight PaymentRecordStatus = "pending"
)

// Payment is an append-only ledger entry. Rows are never updated after insert.
type Payment struct {
	ID            uuid.UUID           `json:"id"`
	BookingID     uuid.UUID           `json:"bookingId"`
	UserID        uuid.UUID           `json:"userId"`
	Amount        float64             `json:"amount"`
	Type          PaymentType         `json:"paymentType"`
	Method        Channel             `json:"paymentMethod"`
	TransactionID string              `json:"transactionId"`
	Status        PaymentRecordStatus `json:"status"`
	Notes         string              `json:"notes,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`

	Booking *Booking `json:"booking,omitempty"`
}

// NewTransactionID returns a unique TXN-prefixed identifier.
func NewTransactionID() string {
	return "TXN" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
}

// NewFullPayment records the booking total as settled through the given channel.
func NewFullPayment(b *Booking, ch Channel, notes string, at time.Time) *Payment {
	return &Payment{
		ID:            uuid.New(),
		BookingID:     b.ID,
		UserID:        b.UserID,
		Amount:        b.TotalAmount,
		Type:          PaymentTypeFull,
		Method:        ch,
		TransactionID: NewTransactionID(),
		Status:        PaymentSuccess,
		Notes:         notes,
		CreatedAt:     at,
	}
}

type PaymentSummary struct {
	Status PaymentRecordStatus `json:"status"`
	Count  int                 `json:"count"`
	Total  float64             `json:"total"`
}
