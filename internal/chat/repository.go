package chat

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/JaimeStill/pdf-chat/pkg/repository"
	"github.com/google/uuid"
)

// History persists chat messages.
type History interface {
	Save(ctx context.Context, msg Message) (*Message, error)

	// Recent returns up to limit messages, newest first. An empty pdfID
	// returns messages across all documents.
	Recent(ctx context.Context, userID uuid.UUID, pdfID string, limit int) ([]Message, error)
}

type historyRepo struct {
	db *sql.DB
}

// NewHistory creates a History backed by the chat_messages table.
func NewHistory(db *sql.DB) History {
	return &historyRepo{db: db}
}

const columns = `id, user_id, file_id, direction, message, created_at`

func scanMessage(s repository.Scanner) (Message, error) {
	var m Message
	err := s.Scan(&m.ID, &m.UserID, &m.PDFID, &m.Direction, &m.Message, &m.CreatedAt)
	if err == nil {
		m.CreatedAt = m.CreatedAt.UTC()
	}
	return m, err
}

func (r *historyRepo) Save(ctx context.Context, msg Message) (*Message, error) {
	q := `INSERT INTO chat_messages(user_id, file_id, direction, message, created_at)
		VALUES($1, $2, $3, $4, $5)
		RETURNING ` + columns

	saved, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Message, error) {
		return repository.QueryOne(ctx, tx, q, []any{
			msg.UserID, msg.PDFID, msg.Direction, msg.Message, msg.CreatedAt,
		}, scanMessage)
	})
	if err != nil {
		return nil, fmt.Errorf("save chat message: %w", err)
	}
	return &saved, nil
}

func (r *historyRepo) Recent(ctx context.Context, userID uuid.UUID, pdfID string, limit int) ([]Message, error) {
	q := `SELECT ` + columns + ` FROM chat_messages
		WHERE user_id = $1 AND ($2 = '' OR file_id::text = $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3`

	msgs, err := repository.QueryMany(ctx, r.db, q, []any{userID, pdfID, limit}, scanMessage)
	if err != nil {
		return nil, fmt.Errorf("query chat messages: %w", err)
	}
	return msgs, nil
}
