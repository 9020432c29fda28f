package domain

import "math"

// Upper bounds of the NUMERIC(14,2) and NUMERIC(12,2) money columns.
const (
	MaxAmount      = 999_999_999_999.99
	MaxPricePerDay = 9_999_999_999.99
)

// RoundCents snaps v to the nearest cent.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func wholeCents(v float64) bool {
	cents := v * 100
	return math.Abs(cents-math.Round(cents)) < 1e-6
}

func validateAmount(field string, v, limit float64) error {
	if math.IsNaN(v) || v <= 0 {
		return Errorf(ErrValidation, "%s must be positive", field)
	}

	if v > limit {
		return Errorf(ErrValidation, "%s must not exceed %.2f", field, limit)
	}

	if !wholeCents(v) {
		return Errorf(ErrValidation, "%s must have at most two decimal places", field)
	}

	return nil
}
