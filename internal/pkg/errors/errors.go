package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError represents an application error with an HTTP mapping and an
// optional user-facing message distinct from the raw error.
type AppError struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Friendly   string      `json:"-"`
	StatusCode int         `json:"-"`
	Internal   error       `json:"-"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Internal)
	}
	return e.Message
}

// Unwrap returns the internal error for errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Internal
}

// Common error codes.
const (
	ErrCodeInternal      = "INTERNAL_ERROR"
	ErrCodeBadRequest    = "BAD_REQUEST"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeForbidden     = "FORBIDDEN"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeConflict      = "CONFLICT"
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeDatabase      = "DATABASE_ERROR"
	ErrCodeOracle        = "ORACLE_ERROR"
	ErrCodeQuotaExceeded = "QUOTA_EXCEEDED"
	ErrCodeFeatureLocked = "FEATURE_LOCKED"
	ErrCodeRateLimited   = "RATE_LIMITED"
)

// New creates a new AppError.
func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// Wrap wraps an error with an AppError.
func Wrap(err error, code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Internal:   err,
	}
}

// WithDetails adds details to an AppError.
func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

// WithFriendly attaches a user-facing message suitable for direct display.
func (e *AppError) WithFriendly(msg string) *AppError {
	e.Friendly = msg
	return e
}

// Internal creates an internal server error.
func Internal(message string, err error) *AppError {
	return Wrap(err, ErrCodeInternal, message, http.StatusInternalServerError)
}

// BadRequest creates a bad request error.
func BadRequest(message string) *AppError {
	return New(ErrCodeBadRequest, message, http.StatusBadRequest)
}

// Unauthorized creates an unauthorized error.
func Unauthorized(message string) *AppError {
	return New(ErrCodeUnauthorized, message, http.StatusUnauthorized)
}

// Forbidden creates a forbidden error.
func Forbidden(message string) *AppError {
	return New(ErrCodeForbidden, message, http.StatusForbidden)
}

// NotFound creates a not found error.
func NotFound(resource string) *AppError {
	return New(ErrCodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

// Conflict creates a conflict error.
func Conflict(message string) *AppError {
	return New(ErrCodeConflict, message, http.StatusConflict)
}

// ValidationError creates a validation error.
func ValidationError(message string, details interface{}) *AppError {
	return New(ErrCodeValidation, message, http.StatusBadRequest).WithDetails(details)
}

// DatabaseError creates a database error.
func DatabaseError(message string, err error) *AppError {
	return Wrap(err, ErrCodeDatabase, message, http.StatusInternalServerError)
}

// OracleError creates an error for a failed text-generation call. Handlers
// surface these as a generic 500 with a friendly message; the raw cause stays
// in logs only.
func OracleError(err error) *AppError {
	return Wrap(err, ErrCodeOracle, "Text generation failed", http.StatusInternalServerError).
		WithFriendly("We couldn't complete the analysis right now. Please try again in a moment.")
}

// QuotaExceeded creates an error for a metered action over its plan limit.
func QuotaExceeded(action string) *AppError {
	return New(ErrCodeQuotaExceeded,
		fmt.Sprintf("Monthly limit reached for %s", action),
		http.StatusForbidden).
		WithFriendly("You've reached your plan's monthly limit. Upgrade to continue.")
}

// FeatureLocked creates an error for a feature the current plan does not include.
func FeatureLocked(feature string) *AppError {
	return New(ErrCodeFeatureLocked,
		fmt.Sprintf("%s is not included in the current plan", feature),
		http.StatusForbidden).
		WithFriendly("This feature isn't available on your current plan.")
}

// RateLimited creates a rate limited error.
func RateLimited(message string) *AppError {
	return New(ErrCodeRateLimited, message, http.StatusTooManyRequests)
}

// IsNotFound reports whether err is an AppError with the not-found code.
func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeNotFound
}
