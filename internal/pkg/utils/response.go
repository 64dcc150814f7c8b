package utils

import (
	"encoding/json"
	"net/http"

	"github.com/seogenix/backend/internal/pkg/errors"
)

// ErrorResponse is the uniform failure payload. Every endpoint fails with an
// "error" field; "response" carries an optional user-facing message suitable
// for direct display.
type ErrorResponse struct {
	Error    string      `json:"error"`
	Response string      `json:"response,omitempty"`
	Details  interface{} `json:"details,omitempty"`
}

// WriteJSON writes a JSON response.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(data)
}

// WriteError writes an error JSON response from an AppError.
func WriteError(w http.ResponseWriter, err *errors.AppError) error {
	return WriteJSON(w, err.StatusCode, ErrorResponse{
		Error:    err.Message,
		Response: err.Friendly,
		Details:  err.Details,
	})
}

// WriteErrorMessage writes a simple error message.
func WriteErrorMessage(w http.ResponseWriter, status int, message string) error {
	return WriteJSON(w, status, ErrorResponse{Error: message})
}
