package chat

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/pdf-chat/internal/ingestion"
)

var (
	ErrEmptyMessage = errors.New("message is required")
	ErrCompletion   = errors.New("language model request failed")
	ErrHistory      = errors.New("chat history unavailable")
)

// MapHTTPStatus converts chat errors to HTTP status codes.
// Document context errors are mapped by the ingestion package.
func MapHTTPStatus(err error) int {
	var ie *ingestion.Error
	switch {
	case errors.As(err, &ie):
		return ingestion.MapHTTPStatus(err)
	case errors.Is(err, ErrEmptyMessage):
		return http.StatusBadRequest
	case errors.Is(err, ErrCompletion):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the caller-facing message for err.
func PublicMessage(err error) string {
	var ie *ingestion.Error
	switch {
	case errors.As(err, &ie):
		return ie.Message()
	case errors.Is(err, ErrEmptyMessage):
		return ErrEmptyMessage.Error()
	case errors.Is(err, ErrCompletion):
		return ErrCompletion.Error()
	case errors.Is(err, ErrHistory):
		return ErrHistory.Error()
	default:
		return "internal server error"
	}
}
