// Package validation provides common validation utilities for configuration
// parameters and positional arguments across the roundflow library.
//
// Configuration checks return *errors.ValidationError, positional checks
// return *errors.IndexError, so callers can branch with errors.Is on
// errors.ErrInvalidConfiguration or errors.ErrIndexOutOfRange.
package validation
