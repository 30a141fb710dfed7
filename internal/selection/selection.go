// Package selection records which document each user has made active for chat.
package selection

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/JaimeStill/pdf-chat/pkg/repository"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("no document selected")

// Selection is a user's active document. Filename is a snapshot taken at selection time.
type Selection struct {
	UserID     uuid.UUID `json:"user_id"`
	Ref        string    `json:"selected_pdf_id"`
	Filename   string    `json:"selected_filename"`
	SelectedAt time.Time `json:"selected_at"`
}

type System interface {
	// Upsert replaces the user's selection. The last committed write wins.
	Upsert(ctx context.Context, sel Selection) (*Selection, error)

	Find(ctx context.Context, userID uuid.UUID) (*Selection, error)
}

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "selection"),
	}
}

const columns = `user_id, file_id, filename, selected_at`

func scanSelection(s repository.Scanner) (Selection, error) {
	var sel Selection
	err := s.Scan(&sel.UserID, &sel.Ref, &sel.Filename, &sel.SelectedAt)
	if err == nil {
		sel.SelectedAt = sel.SelectedAt.UTC()
	}
	return sel, err
}

func (r *repo) Upsert(ctx context.Context, sel Selection) (*Selection, error) {
	q := `INSERT INTO selections(user_id, file_id, filename, selected_at)
		VALUES($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET file_id = EXCLUDED.file_id, filename = EXCLUDED.filename, selected_at = EXCLUDED.selected_at
		RETURNING ` + columns

	saved, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Selection, error) {
		return repository.QueryOne(ctx, tx, q, []any{sel.UserID, sel.Ref, sel.Filename, sel.SelectedAt}, scanSelection)
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("document selected", "user_id", saved.UserID, "file_id", saved.Ref)
	return &saved, nil
}

func (r *repo) Find(ctx context.Context, userID uuid.UUID) (*Selection, error) {
	q := `SELECT ` + columns + ` FROM selections WHERE user_id = $1`

	sel, err := repository.QueryOne(ctx, r.db, q, []any{userID}, scanSelection)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrNotFound)
	}
	return &sel, nil
}
