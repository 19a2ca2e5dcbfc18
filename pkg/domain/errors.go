package domain

import (
	"errors"
	"fmt"
)

// ErrorCode classifies domain errors so transport layers can map them
// to protocol-specific statuses without inspecting messages.
type ErrorCode string

const (
	ErrCodeValidation   ErrorCode = "VALIDATION_ERROR"
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeInvalidState ErrorCode = "INVALID_STATE"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeUnavailable  ErrorCode = "STORE_UNAVAILABLE"
)

// Error is a typed domain error carrying a classification code.
type Error struct {
	Code    ErrorCode
	Message string
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap exposes the underlying cause, if any.
func (e *Error) Unwrap() error { return e.cause }

// NewValidationError creates an error for invalid input or business-rule violations.
func NewValidationError(message string) *Error {
	return &Error{Code: ErrCodeValidation, Message: message}
}

// NewNotFoundError creates an error for an unresolved entity reference.
func NewNotFoundError(resource, id string) *Error {
	return &Error{Code: ErrCodeNotFound, Message: fmt.Sprintf("%s not found: %s", resource, id)}
}

// NewConflictError creates an error for operations rejected by concurrent state.
func NewConflictError(message string) *Error {
	return &Error{Code: ErrCodeConflict, Message: message}
}

// NewInvalidStateError creates an error for a disallowed lifecycle transition.
func NewInvalidStateError(from, to string) *Error {
	return &Error{Code: ErrCodeInvalidState, Message: fmt.Sprintf("invalid transition from %s to %s", from, to)}
}

// NewForbiddenError creates an error for operations the actor may not perform.
func NewForbiddenError(message string) *Error {
	return &Error{Code: ErrCodeForbidden, Message: message}
}

// NewUnavailableError wraps a transient backend failure.
func NewUnavailableError(message string, cause error) *Error {
	return &Error{Code: ErrCodeUnavailable, Message: message, cause: cause}
}

// CodeOf extracts the ErrorCode from err, or "" if err is not a domain Error.
func CodeOf(err error) ErrorCode {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
