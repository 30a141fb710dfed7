package auth

import (
	"errors"
	"net/http"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("email or password is incorrect")
	ErrUnauthorized       = errors.New("could not validate credentials")
	ErrNotFound           = errors.New("user not found")
)

// MapHTTPStatus converts auth errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrEmailTaken):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
