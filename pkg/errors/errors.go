// Package errors provides typed errors for the application
package errors

import "errors"

// baseError is the base implementation for all error types
type baseError struct {
	msg string
}

func (e *baseError) Error() string {
	return e.msg
}

// ValidationError represents invalid input that retrying cannot fix
type ValidationError struct {
	baseError
}

// NewValidationError creates a new ValidationError
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{baseError{msg: msg}}
}

// NotFoundError represents a missing resource
type NotFoundError struct {
	baseError
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(msg string) *NotFoundError {
	return &NotFoundError{baseError{msg: msg}}
}

// UnavailableError represents a failure of an external collaborator
// (extraction tool, messaging platform) that may succeed on retry
type UnavailableError struct {
	baseError
}

// NewUnavailableError creates a new UnavailableError
func NewUnavailableError(msg string) *UnavailableError {
	return &UnavailableError{baseError{msg: msg}}
}

// InternalError represents an internal error
type InternalError struct {
	baseError
}

// NewInternalError creates a new InternalError
func NewInternalError(msg string) *InternalError {
	return &InternalError{baseError{msg: msg}}
}

// IsValidationError checks if err or any error it wraps is a ValidationError
func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsNotFoundError checks if err or any error it wraps is a NotFoundError
func IsNotFoundError(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsUnavailableError checks if err or any error it wraps is an UnavailableError
func IsUnavailableError(err error) bool {
	var target *UnavailableError
	return errors.As(err, &target)
}

// IsInternalError checks if err or any error it wraps is an InternalError
func IsInternalError(err error) bool {
	var target *InternalError
	return errors.As(err, &target)
}

// Kind names the kind of err for logs and metrics labels
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case IsValidationError(err):
		return "validation"
	case IsNotFoundError(err):
		return "not_found"
	case IsUnavailableError(err):
		return "unavailable"
	case IsInternalError(err):
		return "internal"
	default:
		return "unknown"
	}
}
