// Package parsed caches the most recent extraction result per user and document.
package parsed

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/JaimeStill/pdf-chat/pkg/repository"
	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("parsed text not found")
	ErrEmptyText = errors.New("parsed text is empty")
)

// Record is the extracted text of one document for one user.
type Record struct {
	UserID   uuid.UUID `json:"user_id"`
	Ref      string    `json:"file_id"`
	Text     string    `json:"text"`
	ParsedAt time.Time `json:"last_parsed_at"`
}

// System defines the parsed-text cache.
type System interface {
	// Upsert replaces the record for (UserID, Ref) wholesale.
	// Empty text is rejected with ErrEmptyText and leaves any prior record untouched.
	Upsert(ctx context.Context, rec Record) (*Record, error)

	Find(ctx context.Context, userID uuid.UUID, ref string) (*Record, error)
}

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "parsed"),
	}
}

const columns = `user_id, file_id, text, last_parsed_at`

func scanRecord(s repository.Scanner) (Record, error) {
	var r Record
	err := s.Scan(&r.UserID, &r.Ref, &r.Text, &r.ParsedAt)
	if err == nil {
		r.ParsedAt = r.ParsedAt.UTC()
	}
	return r, err
}

func (r *repo) Upsert(ctx context.Context, rec Record) (*Record, error) {
	if strings.TrimSpace(rec.Text) == "" {
		return nil, ErrEmptyText
	}

	q := `INSERT INTO parsed_texts(user_id, file_id, text, last_parsed_at)
		VALUES($1, $2, $3, $4)
		ON CONFLICT (user_id, file_id) DO UPDATE
		SET text = EXCLUDED.text, last_parsed_at = EXCLUDED.last_parsed_at
		RETURNING ` + columns

	saved, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Record, error) {
		return repository.QueryOne(ctx, tx, q, []any{rec.UserID, rec.Ref, rec.Text, rec.ParsedAt}, scanRecord)
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("parsed text stored", "user_id", saved.UserID, "file_id", saved.Ref, "chars", len(saved.Text))
	return &saved, nil
}

func (r *repo) Find(ctx context.Context, userID uuid.UUID, ref string) (*Record, error) {
	q := `SELECT ` + columns + ` FROM parsed_texts WHERE user_id = $1 AND file_id = $2`

	rec, err := repository.QueryOne(ctx, r.db, q, []any{userID, ref}, scanRecord)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrNotFound)
	}
	return &rec, nil
}
