package shared

import (
	"errors"
	"strings"
)

// FieldError names a single offending input field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// DomainError represents a domain-level error
type DomainError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches domain errors by code so that wrapped copies with extra
// details still compare equal to the package-level sentinels.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// WithDetails returns a copy of the error carrying field-level details
func (e *DomainError) WithDetails(details ...FieldError) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: append(append([]FieldError(nil), e.Details...), details...),
	}
}

// WithMessage returns a copy of the error with a more specific message
func (e *DomainError) WithMessage(message string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: message,
		Details: e.Details,
	}
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a validation error naming the offending field
func NewValidationError(field, message string) *DomainError {
	return ErrValidation.WithDetails(FieldError{Field: field, Message: message})
}

// Common domain errors
var (
	ErrNotFound      = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput  = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrValidation    = NewDomainError("VALIDATION_ERROR", "Validation failed")
	ErrUnauthorized  = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden     = NewDomainError("FORBIDDEN", "You do not have permission to perform this action")
	ErrInvalidState  = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrAuthFailed    = NewDomainError("AUTHENTICATION_FAILED", "Authentication failed")
)

// IsNotFound reports whether err is any domain error whose code ends in NOT_FOUND
func IsNotFound(err error) bool {
	var de *DomainError
	if !errors.As(err, &de) {
		return false
	}
	return de.Code == ErrNotFound.Code || strings.HasSuffix(de.Code, "_NOT_FOUND")
}

