// Package errors defines the error types shared by roundflow packages.
package errors

import (
	"errors"
	"fmt"
)

// Common error types used across the roundflow library

var (
	// ErrClosed indicates that an operation was attempted on a closed resource
	ErrClosed = errors.New("resource is closed")

	// ErrTimeout indicates that an operation timed out
	ErrTimeout = errors.New("operation timed out")

	// ErrInvalidConfiguration indicates invalid configuration parameters
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrRateLimited indicates that a request was rate limited
	ErrRateLimited = errors.New("rate limited")

	// ErrIndexOutOfRange indicates a positional operation with a bad index
	ErrIndexOutOfRange = errors.New("index out of range")
)

// ValidationError describes a rejected configuration or argument value.
type ValidationError struct {
	Module string
	Field  string
	Value  interface{}
	Reason string
	Hint   string
}

// NewValidationError creates a ValidationError without a hint.
func NewValidationError(module, field string, value interface{}, reason string) *ValidationError {
	return &ValidationError{
		Module: module,
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// WithHint sets a remediation hint and returns the same error for chaining.
func (e *ValidationError) WithHint(hint string) *ValidationError {
	e.Hint = hint
	return e
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: invalid %s=%v (%s)", e.Module, e.Field, e.Value, e.Reason)
	if e.Hint != "" {
		msg += " - " + e.Hint
	}
	return msg
}

// Unwrap makes every ValidationError match ErrInvalidConfiguration.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfiguration
}

// IndexError reports an insert or remove at a position outside the valid range.
type IndexError struct {
	Module string
	Op     string
	Index  int
	Len    int
}

// NewIndexError creates an IndexError.
func NewIndexError(module, op string, index, length int) *IndexError {
	return &IndexError{Module: module, Op: op, Index: index, Len: length}
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s.%s: index %d out of range [len=%d]", e.Module, e.Op, e.Index, e.Len)
}

// Unwrap makes every IndexError match ErrIndexOutOfRange.
func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}

// OperationError wraps a failure of a named operation.
type OperationError struct {
	Module    string
	Operation string
	Cause     error
	Context   string
}

// NewOperationError creates an OperationError.
func NewOperationError(module, operation string, cause error) *OperationError {
	return &OperationError{
		Module:    module,
		Operation: operation,
		Cause:     cause,
	}
}

// WithContext attaches extra detail and returns the same error for chaining.
func (e *OperationError) WithContext(context string) *OperationError {
	e.Context = context
	return e
}

func (e *OperationError) Error() string {
	msg := fmt.Sprintf("%s.%s failed: %v", e.Module, e.Operation, e.Cause)
	if e.Context != "" {
		msg += " (" + e.Context + ")"
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	return e.Cause
}

// PanicError carries a value recovered from a panic together with the stack
// captured at the recovery site.
type PanicError struct {
	Value interface{}
	Stack string
}

// NewPanicError creates a PanicError.
func NewPanicError(value interface{}, stack []byte) *PanicError {
	return &PanicError{Value: value, Stack: string(stack)}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap exposes the recovered value when it was itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// IsRetryable returns true if the error indicates a condition that might
// be resolved by retrying the operation
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, ErrRateLimited)
}

// IsValidationError reports whether err is or wraps a ValidationError.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// IsIndexError reports whether err is or wraps an IndexError.
func IsIndexError(err error) bool {
	var ierr *IndexError
	return errors.As(err, &ierr)
}

// StackOf returns the captured stack if err wraps a PanicError.
func StackOf(err error) string {
	var perr *PanicError
	if errors.As(err, &perr) {
		return perr.Stack
	}
	return ""
}
