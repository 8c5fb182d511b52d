// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
)

// Common application errors.
var (
	// Inference errors.
	ErrRateLimit     = errors.New("rate limit exceeded")
	ErrMaxRetries    = errors.New("max retries exceeded")
	ErrEmptyResponse = errors.New("empty inference response")

	// Input errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrEmptyBatch    = errors.New("no items in batch")
	ErrEmptyRubric   = errors.New("rubric has no criteria")

	// Persistence errors.
	ErrNotFound = errors.New("not found")
)

// RetryableError wraps an error with retry-specific metadata.
type RetryableError struct {
	Err       error
	Retryable bool
}

func (e *RetryableError) Error() string {
	return e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}
