package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrAccountNotFound indicates that a referenced account does not resolve in
// the account directory.
var ErrAccountNotFound = errors.New("account not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrUnbalanced indicates that an entry's line debits and credits differ.
var ErrUnbalanced = errors.New("journal entry debits and credits do not balance")

// ErrInvalidTransition indicates a status change not permitted by the entry
// state machine.
var ErrInvalidTransition = errors.New("status transition not allowed")

// ErrConflict indicates a mutation attempted on an entry whose current state
// forbids it.
var ErrConflict = errors.New("operation conflicts with current entry state")

// ErrInvalidOperation indicates an operation not applicable to the entry's
// configuration, e.g. validating a non-agent-sourced entry.
var ErrInvalidOperation = errors.New("operation not applicable to this entry")

// ErrDirectoryUnavailable indicates the account directory lookup could not
// complete.
var ErrDirectoryUnavailable = errors.New("account directory unavailable")

// ErrForbidden indicates the actor lacks permission for the operation.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError wraps an infrastructure failure with a status-like code and a
// human-readable message while preserving the cause for errors.Is/As.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError with the given code, message and cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
