package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller may not access the requested resource.
var ErrForbidden = errors.New("forbidden")

// Transfer errors. Each maps to exactly one client-facing error code.
var (
	ErrAccountNotFound     = fmt.Errorf("%w: account not found", ErrNotFound)
	ErrAccountNotActive    = errors.New("account is not active")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidRequest      = fmt.Errorf("%w: invalid transfer request", ErrValidation)
	ErrNotAccountHolder    = fmt.Errorf("%w: caller is not the holder of the source account", ErrInvalidRequest)
)

// ErrTransient marks infrastructure failures after which nothing was committed.
// Callers may retry with the same idempotency key.
var ErrTransient = errors.New("transient storage failure")

// ErrLockTimeout is returned when a row lock could not be acquired within the configured wait.
var ErrLockTimeout = fmt.Errorf("%w: lock wait timeout", ErrTransient)

// AppError wraps an infrastructure error with a status code and a safe message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}
