package api

import (
	"github.com/JaimeStill/pdf-chat/internal/auth"
	"github.com/JaimeStill/pdf-chat/internal/chat"
	"github.com/JaimeStill/pdf-chat/internal/config"
	"github.com/JaimeStill/pdf-chat/internal/documents"
	"github.com/JaimeStill/pdf-chat/internal/ingestion"
	"github.com/JaimeStill/pdf-chat/internal/parsed"
	"github.com/JaimeStill/pdf-chat/internal/selection"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Auth      auth.System
	Ingestion ingestion.System
	Chat      chat.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime, cfg *config.Config) *Domain {
	db := runtime.Database.Connection()

	authSys := auth.New(db, runtime.Tokens, runtime.Logger)

	ingestionSys := ingestion.New(
		ingestion.Deps{
			Blobs:       runtime.Blobs,
			Catalog:     documents.New(db, runtime.Logger),
			Extractor:   runtime.Extractor,
			Cache:       parsed.New(db, runtime.Logger),
			Selections:  selection.New(db, runtime.Logger),
			PageCounter: documents.PageCount,
		},
		runtime.Logger,
	)

	chatSys := chat.New(
		ingestionSys,
		chat.NewHistory(db),
		runtime.Completer,
		chat.Config{
			HistoryLimit:    cfg.LLM.HistoryLimit,
			MaxContextChars: cfg.LLM.MaxContextChars,
			Timeout:         cfg.LLM.TimeoutDuration(),
		},
		runtime.Logger,
	)

	return &Domain{
		Auth:      authSys,
		Ingestion: ingestionSys,
		Chat:      chatSys,
	}
}
