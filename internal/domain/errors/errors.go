package errors

import (
	"errors"
	"fmt"
)

// Error types for the document domains
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeCanceled   ErrorType = "canceled"
)

// AppError represents a structured application error
type AppError struct {
	Type    ErrorType              `json:"type"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetails returns a copy carrying the given details so shared sentinels stay untouched.
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// WithCause returns a copy wrapping cause.
func (e *AppError) WithCause(cause error) *AppError {
	cp := *e
	cp.Cause = cause
	return &cp
}

// Is matches on type and code, so copies made by WithDetails/WithCause still
// compare equal to the sentinel they came from.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Type == t.Type && e.Code == t.Code
}

// Error constructors
func NewValidationError(code, message string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Code:    code,
		Message: message,
	}
}

func NewCanceledError(cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeCanceled,
		Code:    "CANCELED",
		Message: "operation canceled",
		Cause:   cause,
	}
}

// Predefined common errors
var (
	ErrInvalidRecord = NewValidationError("INVALID_RECORD", "record failed validation")
	ErrUnknownKind   = NewValidationError("UNKNOWN_KIND", "unknown document kind")
	ErrInvalidCount  = NewValidationError("INVALID_COUNT", "count must be positive")
)

// Wrap wraps an error with a message using fmt.Errorf with %w
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// IsType checks if an error is of a specific type
func IsType(err error, errorType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errorType
	}
	return false
}

// Code extracts the AppError code, or "" for foreign errors.
func Code(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
