package client

import "fmt"

// APIError represents an error returned by the API. The "response" field, if
// set, carries a message suitable for direct display to end users.
type APIError struct {
	StatusCode int         `json:"-"`
	Message    string      `json:"error"`
	Response   string      `json:"response,omitempty"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("API error: %s (status: %d)", e.Message, e.StatusCode)
}

// IsNotFound reports a 404.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == 404
}

// IsUnauthorized reports a 401.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == 401
}

// IsPlanLimited reports a 403, which the API uses for plan and quota
// denials.
func (e *APIError) IsPlanLimited() bool {
	return e.StatusCode == 403
}

// IsValidationError reports a 400.
func (e *APIError) IsValidationError() bool {
	return e.StatusCode == 400
}

// IsServerError reports a 5xx.
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500
}
