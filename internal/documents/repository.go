package documents

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/pdf-chat/pkg/repository"
	"github.com/google/uuid"
)

// System defines the metadata catalog.
type System interface {
	// Insert records a stored blob. The blob must already exist.
	Insert(ctx context.Context, cmd InsertCommand) (*Document, error)

	// ListByUser returns the user's documents in insertion order.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Document, error)

	// FindOne returns the document with ref owned by userID.
	// It returns ErrInvalidReference for a malformed ref and ErrNotFound when
	// the ref does not exist or belongs to another user.
	FindOne(ctx context.Context, userID uuid.UUID, ref string) (*Document, error)
}

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a catalog backed by the documents table.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "documents"),
	}
}

func (r *repo) Insert(ctx context.Context, cmd InsertCommand) (*Document, error) {
	id, err := ParseRef(cmd.Ref)
	if err != nil {
		return nil, err
	}

	q := `INSERT INTO documents(file_id, user_id, filename, content_type, size_bytes, page_count)
		VALUES($1, $2, $3, $4, $5, $6)
		RETURNING ` + columns

	doc, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Document, error) {
		return repository.QueryOne(ctx, tx, q, []any{
			id, cmd.UserID, cmd.Filename, cmd.ContentType, cmd.SizeBytes, cmd.PageCount,
		}, scanDocument)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("document cataloged", "file_id", doc.Ref, "user_id", doc.UserID, "filename", doc.Filename)
	return &doc, nil
}

func (r *repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]Document, error) {
	q := `SELECT ` + columns + ` FROM documents WHERE user_id = $1 ORDER BY seq`

	docs, err := repository.QueryMany(ctx, r.db, q, []any{userID}, scanDocument)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	return docs, nil
}

func (r *repo) FindOne(ctx context.Context, userID uuid.UUID, ref string) (*Document, error) {
	id, err := ParseRef(ref)
	if err != nil {
		return nil, err
	}

	q := `SELECT ` + columns + ` FROM documents WHERE file_id = $1 AND user_id = $2`

	doc, err := repository.QueryOne(ctx, r.db, q, []any{id, userID}, scanDocument)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &doc, nil
}
