package parsed_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/JaimeStill/pdf-chat/internal/parsed"
	"github.com/google/uuid"
)

func TestUpsert_RejectsEmptyText(t *testing.T) {
	sys := parsed.New(nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	for _, text := range []string{"", " ", "\n\t\n"} {
		_, err := sys.Upsert(context.Background(), parsed.Record{
			UserID: uuid.New(),
			Ref:    uuid.NewString(),
			Text:   text,
		})
		if !errors.Is(err, parsed.ErrEmptyText) {
			t.Errorf("Upsert(%q) error = %v, want %v", text, err, parsed.ErrEmptyText)
		}
	}
}
