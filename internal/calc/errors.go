package calc

import (
	"errors"
	"fmt"
	"math"
)

// ValidationError is returned for any input rejected before a formula runs.
// Message is safe to show to the user as is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

// IsValidationError reports whether err (or anything it wraps) is a *ValidationError.
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

func validatePositive(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return newValidationError(field, "must be a number")
	}
	if v <= 0 {
		return newValidationError(field, "must be greater than zero")
	}
	return nil
}

func validateRange(field string, v, min, max float64) error {
	if err := validatePositive(field, v); err != nil {
		return err
	}
	if v < min || v > max {
		return newValidationError(field, "must be between %g and %g", min, max)
	}
	return nil
}

func validateAge(age, min, max int) error {
	if age < min || age > max {
		return newValidationError("age", "must be between %d and %d", min, max)
	}
	return nil
}
