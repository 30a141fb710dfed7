package auth

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// System defines account and token operations.
type System interface {
	Register(ctx context.Context, creds Credentials) (*User, error)
	Login(ctx context.Context, creds Credentials) (*Token, error)
	Verify(token string) (uuid.UUID, error)
}

type service struct {
	users  users
	tokens *Tokens
	cost   int
	logger *slog.Logger
}

// New creates the auth system over the users table.
func New(db *sql.DB, tokens *Tokens, logger *slog.Logger) System {
	return &service{
		users:  &userRepo{db: db},
		tokens: tokens,
		cost:   bcrypt.DefaultCost,
		logger: logger.With("system", "auth"),
	}
}

func (s *service) Register(ctx context.Context, creds Credentials) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), s.cost)
	if err != nil {
		return nil, err
	}

	u, err := s.users.Create(ctx, creds.Email, string(hash))
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "user_id", u.ID)
	return u, nil
}

func (s *service) Login(ctx context.Context, creds Credentials) (*Token, error) {
	u, err := s.users.FindByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(creds.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.tokens.Issue(u.ID)
}

func (s *service) Verify(token string) (uuid.UUID, error) {
	return s.tokens.Verify(token)
}
