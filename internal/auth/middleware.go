package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JaimeStill/pdf-chat/pkg/handlers"
	"github.com/google/uuid"
)

type contextKey struct{}

// Verifier resolves a bearer token to a user id.
type Verifier interface {
	Verify(token string) (uuid.UUID, error)
}

// WithUserID returns a copy of ctx carrying the authenticated user id.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// UserID returns the authenticated user id placed by Authenticate.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(contextKey{}).(uuid.UUID)
	return id, ok
}

// Authenticate rejects requests without a valid bearer token.
func Authenticate(v Verifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				unauthorized(w, logger, ErrUnauthorized)
				return
			}

			id, err := v.Verify(token)
			if err != nil {
				unauthorized(w, logger, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), id)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(w http.ResponseWriter, logger *slog.Logger, err error) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	handlers.RespondErrorMessage(w, logger, http.StatusUnauthorized, err, ErrUnauthorized.Error())
}
