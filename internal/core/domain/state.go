package domain

// State is the pair of fields that moves together through the booking lifecycle.
type State struct {
	Status        BookingStatus
	PaymentStatus PaymentStatus
}

type Event string

const (
	EventBookedCash       Event = "booked_cash"
	EventBookedPrepaid    Event = "booked_prepaid"
	EventPaymentCompleted Event = "payment_completed"
	EventComplete         Event = "complete"
	EventCancel           Event = "cancel"
)

// BookedEvent returns the creation event for a payment method.
func BookedEvent(m PaymentMethod) Event {
	if m.Prepaid() {
		return EventBookedPrepaid
	}

	return EventBookedCash
}

// Transition is the only place allowed to compute a new booking state.
// Creation events expect the zero State as input.
func Transition(from State, ev Event) (State, error) {
	switch ev {
	case EventBookedCash:
		if from != (State{}) {
			return from, invalidTransition(from, ev)
		}

		return State{Status: BookingConfirmed, PaymentStatus: PaymentPending}, nil

	case EventBookedPrepaid:
		if from != (State{}) {
			return from, invalidTransition(from, ev)
		}

		return State{Status: BookingActive, PaymentStatus: PaymentFullPaid}, nil

	case EventPaymentCompleted:
		if from.PaymentStatus == PaymentFullPaid {
			return from, ErrAlreadyPaid
		}

		if from.Status.Terminal() {
			return from, invalidTransition(from, ev)
		}

		return State{Status: BookingActive, PaymentStatus: PaymentFullPaid}, nil

	case EventComplete:
		if from.Status != BookingConfirmed && from.Status != BookingActive {
			return from, invalidTransition(from, ev)
		}

		return State{Status: BookingCompleted, PaymentStatus: from.PaymentStatus}, nil

	case EventCancel:
		if from.Status.Terminal() || from == (State{}) {
			return from, invalidTransition(from, ev)
		}

		return State{Status: BookingCancelled, PaymentStatus: from.PaymentStatus}, nil
	}

	return from, Errorf(ErrInvalidTransition, "Unknown event %q", ev)
}

func invalidTransition(from State, ev Event) error {
	return Errorf(ErrInvalidTransition, "Cannot apply %s to %s/%s", ev, from.Status, from.PaymentStatus)
}
