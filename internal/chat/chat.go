package chat

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/JaimeStill/pdf-chat/internal/parsed"
	"github.com/JaimeStill/pdf-chat/internal/selection"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const maxHistoryLimit = 100

// ContextSource resolves the caller's selected document and its parsed text.
type ContextSource interface {
	Context(ctx context.Context, userID uuid.UUID) (*selection.Selection, *parsed.Record, error)
}

// Config tunes prompt construction and the completion call.
type Config struct {
	HistoryLimit    int
	MaxContextChars int
	Timeout         time.Duration
}

// System defines the chat operations.
type System interface {
	// Send answers message using the selected document as context and records both turns.
	Send(ctx context.Context, userID uuid.UUID, message string) (*Reply, error)

	// History returns the caller's most recent messages, newest first.
	History(ctx context.Context, userID uuid.UUID, limit int) ([]Message, error)
}

type service struct {
	source    ContextSource
	history   History
	completer Completer
	cfg       Config
	logger    *slog.Logger
	now       func() time.Time
}

func New(source ContextSource, history History, completer Completer, cfg Config, logger *slog.Logger) System {
	return &service{
		source:    source,
		history:   history,
		completer: completer,
		cfg:       cfg,
		logger:    logger.With("system", "chat"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Send(ctx context.Context, userID uuid.UUID, message string) (*Reply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}
	received := s.now()

	sel, rec, err := s.source.Context(ctx, userID)
	if err != nil {
		return nil, err
	}

	recent, err := s.history.Recent(ctx, userID, sel.Ref, s.cfg.HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHistory, err)
	}

	prompt := Prompt{
		System:  s.systemPrompt(sel.Filename, rec.Text),
		History: turns(recent),
		Message: message,
	}

	completeCtx := ctx
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		completeCtx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	answer, err := s.completer.Complete(completeCtx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompletion, err)
	}
	s.logger.Info("chat completed", "user_id", userID, "pdf_id", sel.Ref, "history", len(recent), "duration", time.Since(start))

	s.record(ctx, userID, sel.Ref, message, received, answer, s.now())

	return &Reply{Reply: answer, PDFID: sel.Ref, Filename: sel.Filename}, nil
}

// record saves both turns concurrently. Explicit timestamps keep their order
// independent of insert order. Failures are logged; the reply is still returned.
func (s *service) record(ctx context.Context, userID uuid.UUID, pdfID, question string, asked time.Time, answer string, answered time.Time) {
	g, gctx := errgroup.WithContext(context.WithoutCancel(ctx))

	for _, msg := range []Message{
		{UserID: userID, PDFID: pdfID, Direction: Incoming, Message: question, CreatedAt: asked},
		{UserID: userID, PDFID: pdfID, Direction: Outgoing, Message: answer, CreatedAt: answered},
	} {
		g.Go(func() error {
			_, err := s.history.Save(gctx, msg)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Error("failed to record chat history", "user_id", userID, "pdf_id", pdfID, "error", err)
	}
}

func (s *service) History(ctx context.Context, userID uuid.UUID, limit int) ([]Message, error) {
	if limit <= 0 {
		limit = s.cfg.HistoryLimit
	}
	limit = min(limit, maxHistoryLimit)

	msgs, err := s.history.Recent(ctx, userID, "", limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHistory, err)
	}
	return msgs, nil
}

func (s *service) systemPrompt(filename, text string) string {
	if s.cfg.MaxContextChars > 0 && len(text) > s.cfg.MaxContextChars {
		text = strings.ToValidUTF8(text[:s.cfg.MaxContextChars], "")
	}

	return fmt.Sprintf(
		"You answer questions about the PDF document %q. "+
			"Base every answer on the document text below. "+
			"If the document does not contain the answer, say so.\n\n"+
			"Document text:\n%s",
		filename, text,
	)
}

// turns converts newest-first history into oldest-first prompt turns.
func turns(msgs []Message) []Turn {
	result := make([]Turn, 0, len(msgs))
	for _, m := range slices.Backward(msgs) {
		role := RoleUser
		if m.Direction == Outgoing {
			role = RoleModel
		}
		result = append(result, Turn{Role: role, Text: m.Message})
	}
	return result
}
