package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/srgjo27/car_rental/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.Errorf(domain.ErrNotFound, "Booking not found"), http.StatusNotFound},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrUnauthenticated, http.StatusUnauthorized},
		{domain.Errorf(domain.ErrInvalidToken, "Token expired"), http.StatusUnauthorized},
		{domain.Errorf(domain.ErrValidation, "Car id is required"), http.StatusBadRequest},
		{domain.ErrAlreadyPaid, http.StatusBadRequest},
		{domain.ErrInvalidTransition, http.StatusBadRequest},
		{domain.Errorf(domain.ErrAlreadyExists, "User already exists"), http.StatusBadRequest},
		{domain.ErrInvalidCredentials, http.StatusBadRequest},
		{fmt.Errorf("failed to insert payment: %w", domain.ErrVersionConflict), http.StatusConflict},
		{errors.New("dial tcp: connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}

func TestClientMessage(t *testing.T) {
	t.Run("domain error keeps its message", func(t *testing.T) {
		err := fmt.Errorf("failed to load: %w", domain.Errorf(domain.ErrNotFound, "Booking not found"))
		assert.Equal(t, "Booking not found", clientMessage(err))
	})

	t.Run("bare kind uses its wording", func(t *testing.T) {
		assert.Equal(t, "Booking is already paid", clientMessage(domain.ErrAlreadyPaid))
		assert.Equal(t, "Access denied", clientMessage(fmt.Errorf("list: %w", domain.ErrForbidden)))
	})

	t.Run("every kind has client wording", func(t *testing.T) {
		for kind, msg := range kindMessages {
			assert.NotEmpty(t, msg, kind.Error())
			assert.Equal(t, msg, clientMessage(kind))
		}
	})
}
