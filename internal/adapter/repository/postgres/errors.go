package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/srgjo27/car_rental/internal/core/domain"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

func mapError(err error, what string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return domain.Errorf(domain.ErrNotFound, "%s not found", what)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case uniqueViolation:
			return domain.Errorf(domain.ErrAlreadyExists, "%s already exists", what)
		case foreignKeyViolation:
			return domain.Errorf(domain.ErrValidation, "%s is still referenced", what)
		}
	}

	return err
}

type scanner interface {
	Scan(dest ...any) error
}
