package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("access denied")
	ErrValidation         = errors.New("validation failed")
	ErrAlreadyPaid        = errors.New("booking is already paid")
	ErrInvalidTransition  = errors.New("invalid booking state transition")
	ErrAlreadyExists      = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("access denied. no token provided")
	ErrInvalidToken       = errors.New("invalid token")
	ErrVersionConflict    = errors.New("booking was modified concurrently")
)

// Error pairs a sentinel kind with a message that is safe to show to clients.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

func Errorf(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
