// Package handlers provides HTTP response utilities for JSON APIs.
// These stateless functions standardize response formatting across handlers.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorResponse is the body written by RespondError.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is a confirmation body for operations without a resource result.
type MessageResponse struct {
	Message string `json:"message"`
}

// RespondJSON writes a JSON response with the given status code and data.
// It sets the Content-Type header to application/json.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError logs err and writes its message as {"error": "..."}.
// Client errors log at warn; server errors log at error.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	RespondErrorMessage(w, logger, status, err, err.Error())
}

// RespondErrorMessage logs err in full but writes only message to the client.
// Use it when err carries detail that must stay server-side.
func RespondErrorMessage(w http.ResponseWriter, logger *slog.Logger, status int, err error, message string) {
	if status >= http.StatusInternalServerError {
		logger.Error("handler error", "error", err, "status", status)
	} else {
		logger.Warn("request rejected", "error", err, "status", status)
	}
	RespondJSON(w, status, ErrorResponse{Error: message})
}
