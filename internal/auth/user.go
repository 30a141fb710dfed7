// Package auth registers users, verifies credentials, and issues and checks
// the bearer tokens that identify callers to the rest of the API.
package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. The password hash never leaves this package.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`

	passwordHash string
}

// Credentials is the request body for register and login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Token is the login response.
type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}
