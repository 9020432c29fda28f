package handler

import (
	"net/http"
	"strconv"

	"github.com/srgjo27/car_rental/internal/adapter/invoice"
	"github.com/srgjo27/car_rental/internal/core/domain"
	"github.com/srgjo27/car_rental/internal/core/services"
)

type BookingHandler struct {
	svc *services.BookingService
}

func NewBookingHandler(svc *services.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

type markPaidResponse struct {
	Message string          `json:"message"`
	Booking *domain.Booking `json:"booking"`
}

type payResponse struct {
	Message string          `json:"message"`
	Booking *domain.Booking `json:"booking"`
	Payment *domain.Payment `json:"payment"`
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req services.CreateBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	booking, err := h.svc.CreateBooking(r.Context(), identityFrom(r.Context()), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.svc.ListOwnBookings(r.Context(), identityFrom(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, nonNilSlice(bookings))
}

func (h *BookingHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.svc.ListAllBookings(r.Context(), identityFrom(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, nonNilSlice(bookings))
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "Booking")
	if err != nil {
		writeError(w, r, err)
		return
	}

	booking, err := h.svc.GetBooking(r.Context(), identityFrom(r.Context()), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "Booking")
	if err != nil {
		writeError(w, r, err)
		return
	}

	booking, err := h.svc.MarkPaidByCash(r.Context(), identityFrom(r.Context()), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, markPaidResponse{Message: "Booking marked as paid", Booking: booking})
}

func (h *BookingHandler) Pay(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "Booking")
	if err != nil {
		writeError(w, r, err)
		return
	}

	// The body is optional; an empty one pays by card.
	var req services.PayOnlineRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	booking, payment, err := h.svc.PayOnline(r.Context(), identityFrom(r.Context()), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, payResponse{Message: "Payment successful", Booking: booking, Payment: payment})
}

func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "Booking")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req services.StatusUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	booking, err := h.svc.UpdateStatus(r.Context(), identityFrom(r.Context()), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) Invoice(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "Booking")
	if err != nil {
		writeError(w, r, err)
		return
	}

	pdf, booking, err := h.svc.Invoice(r.Context(), identityFrom(r.Context()), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+invoice.InvoiceNumber(booking)+`.pdf"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}

	return s
}
