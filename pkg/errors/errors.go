package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents an error code
type ErrorCode string

const (
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"    // client-correctable, carries per-field detail
	ErrCodeUnauthorized  ErrorCode = "UNAUTHORIZED"        // missing or invalid admin session
	ErrCodePersistence   ErrorCode = "PERSISTENCE_ERROR"   // fatal to the request, detail logged server-side only
	ErrCodeNotification  ErrorCode = "NOTIFICATION_ERROR"  // never fatal, logged only
	ErrCodeInternalError ErrorCode = "INTERNAL_ERROR"
)

// AppError represents an application error
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with an AppError
func Wrap(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// HasCode checks whether err carries the given code anywhere in its chain
func HasCode(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// IsUnauthorized checks if error is Unauthorized
func IsUnauthorized(err error) bool {
	return HasCode(err, ErrCodeUnauthorized)
}

// IsPersistence checks if error is a persistence failure
func IsPersistence(err error) bool {
	return HasCode(err, ErrCodePersistence)
}
