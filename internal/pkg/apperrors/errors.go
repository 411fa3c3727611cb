package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Lifecycle errors
	ErrInvalidTransition = errors.New("invalid status transition")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrPermissionDenied   = errors.New("permission denied")
)

// Application errors
var (
	ErrApplicationNotFound     = errors.New("application not found")
	ErrApplicationNumberExists = errors.New("application number already exists")
	ErrApplicantAlreadyApplied = errors.New("applicant already has an application for this program")
)

// Criteria errors
var (
	ErrCriteriaNotFound = errors.New("eligibility criteria not found")
)

// Merit list errors
var (
	ErrMeritListNotFound  = errors.New("merit list not found")
	ErrEmptyCandidatePool = errors.New("no applications in a rankable status for this program, batch and semester")
)

// Reviewer errors
var (
	ErrReviewerNotFound = errors.New("reviewer not found")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewValidationError creates a new custom error for malformed or missing input
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// InvalidTransitionError reports a lifecycle violation. It carries the current
// status, the requested status and the set of statuses that would have been
// legal from the current one.
type InvalidTransitionError struct {
	Current   string
	Requested string
	Allowed   []string
}

// Error implements error interface
func (e *InvalidTransitionError) Error() string {
	if len(e.Allowed) == 0 {
		return fmt.Sprintf("cannot transition from %s to %s: %s is terminal", e.Current, e.Requested, e.Current)
	}
	return fmt.Sprintf("cannot transition from %s to %s: allowed targets are %s",
		e.Current, e.Requested, strings.Join(e.Allowed, ", "))
}

// Unwrap makes the error match ErrInvalidTransition via errors.Is
func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// NewInvalidTransitionError creates an InvalidTransitionError
func NewInvalidTransitionError(current, requested string, allowed []string) error {
	return &InvalidTransitionError{
		Current:   current,
		Requested: requested,
		Allowed:   allowed,
	}
}
