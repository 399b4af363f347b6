// Package common provides shared utilities and types used across the application.
package common

import (
	"context"
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Storage errors.
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEntry = errors.New("duplicate entry")

	// Assignment input errors. These are caller mistakes and are never retried.
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidWindow     = errors.New("invalid window: must be 30 or 180 days")
	ErrInvalidSlotBudget = errors.New("invalid slot budget: must be positive")

	// Collaborator errors. Distinct from input errors so callers can tell
	// "user has no data yet" apart from a failure in the assignment logic.
	ErrSnapshotUnavailable = errors.New("feature snapshot unavailable")

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

// IsRetryable determines if an error should trigger a retry. Input and
// configuration errors never retry; only transient storage or deadline
// conditions do.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrInvalidWindow) ||
		errors.Is(err, ErrInvalidSlotBudget) ||
		errors.Is(err, ErrInvalidConfig) {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) {
		return true
	}

	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}

	return false
}
