package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/srgjo27/car_rental/internal/core/domain"
)

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Warn().Err(err).Msg("failed to encode response")
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

// writeError translates a service error into a status code and a client-safe
// message. Anything unrecognised is logged and reported as a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("request failed")
		writeMessage(w, status, "Server Error")
		return
	}

	writeMessage(w, status, clientMessage(err))
}

var kindMessages = map[error]string{
	domain.ErrNotFound:           "Not found",
	domain.ErrForbidden:          "Access denied",
	domain.ErrValidation:         "Validation failed",
	domain.ErrAlreadyPaid:        "Booking is already paid",
	domain.ErrInvalidTransition:  "Invalid booking state transition",
	domain.ErrAlreadyExists:      "Already exists",
	domain.ErrInvalidCredentials: "Invalid credentials",
	domain.ErrUnauthenticated:    "Access denied. No token provided.",
	domain.ErrInvalidToken:       "Invalid token.",
	domain.ErrVersionConflict:    "Booking was modified by another request",
}

// clientMessage prefers the message carried by a domain.Error and falls back
// to the wording for the bare kind.
func clientMessage(err error) string {
	var de *domain.Error
	if errors.As(err, &de) {
		return de.Msg
	}

	for kind, msg := range kindMessages {
		if errors.Is(err, kind) {
			return msg
		}
	}

	return err.Error()
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrUnauthenticated), errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrAlreadyPaid),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrAlreadyExists),
		errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrVersionConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.Errorf(domain.ErrValidation, "Invalid json body")
	}

	return nil
}

func decodeOptionalJSON(r *http.Request, dst any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}

	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil && !errors.Is(err, io.EOF) {
		return domain.Errorf(domain.ErrValidation, "Invalid json body")
	}

	return nil
}

// pathID parses the {id} wildcard. A malformed id cannot match any row, so it
// is reported the same way as a missing one.
func pathID(r *http.Request, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(r.PathValue("id")))
	if err != nil {
		return uuid.Nil, domain.Errorf(domain.ErrNotFound, "%s not found", what)
	}

	return id, nil
}
