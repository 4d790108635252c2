// Package validation provides common validation utilities for the roundflow library.
package validation

import (
	"time"

	rferrors "github.com/vnykmshr/roundflow/pkg/common/errors"
)

// ValidatePositive validates that an integer value is positive (> 0).
// Returns a ValidationError if the value is not positive.
func ValidatePositive(module, field string, value int) error {
	if value <= 0 {
		return rferrors.NewValidationError(module, field, value, "must be positive").
			WithHint("value must be greater than 0")
	}
	return nil
}

// ValidateNonNegative validates that an integer value is non-negative (>= 0).
func ValidateNonNegative(module, field string, value int) error {
	if value < 0 {
		return rferrors.NewValidationError(module, field, value, "cannot be negative").
			WithHint("use 0 or a positive value")
	}
	return nil
}

// ValidatePositiveDuration validates that a duration is strictly positive.
func ValidatePositiveDuration(module, field string, value time.Duration) error {
	if value <= 0 {
		return rferrors.NewValidationError(module, field, value, "must be positive").
			WithHint("use a duration such as 50ms or 1s")
	}
	return nil
}

// ValidateNotNil validates that an interface value is not nil.
// Returns a ValidationError if the value is nil.
func ValidateNotNil(module, field string, value interface{}) error {
	if value == nil {
		return rferrors.NewValidationError(module, field, nil, "cannot be nil").
			WithHint("provide a valid " + field)
	}
	return nil
}

// ValidateNotEmpty validates that a string value is not empty.
// Returns a ValidationError if the string is empty.
func ValidateNotEmpty(module, field string, value string) error {
	if value == "" {
		return rferrors.NewValidationError(module, field, value, "cannot be empty").
			WithHint("provide a non-empty " + field)
	}
	return nil
}

// ValidateInsertIndex checks 0 <= index <= length, the range accepted by an
// insertion into a sequence of the given length.
func ValidateInsertIndex(module, op string, index, length int) error {
	if index < 0 || index > length {
		return rferrors.NewIndexError(module, op, index, length)
	}
	return nil
}

// ValidateElementIndex checks 0 <= index < length, the range that addresses
// an existing element.
func ValidateElementIndex(module, op string, index, length int) error {
	if index < 0 || index >= length {
		return rferrors.NewIndexError(module, op, index, length)
	}
	return nil
}
