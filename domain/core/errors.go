package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound         = errors.New("resource not found")
	ErrJudgeNotFound    = fmt.Errorf("%w: judge", ErrNotFound)
	ErrReportNotFound   = fmt.Errorf("%w: report", ErrNotFound)
	ErrBaselineNotFound = fmt.Errorf("%w: baseline", ErrNotFound)

	// Contract violations - programmer errors, never data-quality issues
	ErrNoCases          = errors.New("bias indicators require at least one case")
	ErrMissingSummaries = errors.New("report assembly requires all pattern summaries")
	ErrInvalidReference = errors.New("reference date must not be zero")

	// External dependency errors
	ErrBaselineUnavailable = errors.New("baseline unavailable")
	ErrProviderUnavailable = errors.New("analysis provider unavailable")
	ErrCacheUnavailable    = errors.New("cache unavailable")
)

// NewNotFoundError builds a not-found error with resource context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

// NewValidationError builds a field-level validation error
func NewValidationError(field string, reason string) error {
	return fmt.Errorf("validation failed for %s: %s", field, reason)
}

// IsNotFoundError reports whether err is any not-found variant
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsContractViolation reports whether err represents a caller contract breach
// (these fail loudly rather than degrading to placeholder output)
func IsContractViolation(err error) bool {
	return errors.Is(err, ErrNoCases) ||
		errors.Is(err, ErrMissingSummaries) ||
		errors.Is(err, ErrInvalidReference)
}

// IsDependencyFailure reports whether err came from an external collaborator
// and is therefore eligible for fallback handling
func IsDependencyFailure(err error) bool {
	return errors.Is(err, ErrBaselineUnavailable) ||
		errors.Is(err, ErrProviderUnavailable) ||
		errors.Is(err, ErrCacheUnavailable)
}
