// Package common provides shared utilities and types used across the application.
package common

import (
	"context"
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Remote workspace errors.
	ErrConflict  = errors.New("conflicting remote edit")
	ErrNotFound  = errors.New("block not found")
	ErrForbidden = errors.New("integration lacks access")

	// Layout errors.
	ErrLayout = errors.New("unexpected page layout")

	// Input errors.
	ErrInvalidDay = errors.New("invalid day")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// LayoutError reports a page whose shape does not match what the run expects.
func LayoutError(page, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrLayout, page, fmt.Sprintf(format, args...))
}

// IsRetryable determines if an error should trigger a retry.
// Only transient remote failures qualify; a canceled context never does.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	if errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrRateLimit) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}

	return false
}
