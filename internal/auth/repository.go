package auth

import (
	"context"
	"database/sql"

	"github.com/JaimeStill/pdf-chat/pkg/repository"
	"github.com/google/uuid"
)

// users is the account store.
type users interface {
	Create(ctx context.Context, email, passwordHash string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
}

type userRepo struct {
	db *sql.DB
}

const userColumns = `id, email, password_hash, created_at`

func scanUser(s repository.Scanner) (User, error) {
	var u User
	err := s.Scan(&u.ID, &u.Email, &u.passwordHash, &u.CreatedAt)
	if err == nil {
		u.CreatedAt = u.CreatedAt.UTC()
	}
	return u, err
}

func (r *userRepo) Create(ctx context.Context, email, passwordHash string) (*User, error) {
	q := `INSERT INTO users(id, email, password_hash)
		VALUES($1, $2, $3)
		RETURNING ` + userColumns

	u, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (User, error) {
		return repository.QueryOne(ctx, tx, q, []any{uuid.New(), email, passwordHash}, scanUser)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrEmailTaken)
	}
	return &u, nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	u, err := repository.QueryOne(ctx, r.db, q, []any{email}, scanUser)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrEmailTaken)
	}
	return &u, nil
}
