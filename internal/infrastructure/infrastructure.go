// Package infrastructure provides core service initialization for application startup.
// It assembles the dependencies (logging, database, blob storage, text extraction)
// that the PDF and chat systems require.
package infrastructure

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/pdf-chat/internal/blobs"
	"github.com/JaimeStill/pdf-chat/internal/config"
	"github.com/JaimeStill/pdf-chat/internal/extraction"
	"github.com/JaimeStill/pdf-chat/pkg/database"
	"github.com/JaimeStill/pdf-chat/pkg/lifecycle"
	"github.com/JaimeStill/pdf-chat/pkg/logging"
	"github.com/JaimeStill/pdf-chat/pkg/storage"
)

// Infrastructure holds the core systems shared by all domain modules.
// Blobs and Extractor wrap Storage and the PDF reader for document ingestion.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
	Blobs     *blobs.Store
	Extractor *extraction.Extractor
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := logging.New(&cfg.Logging)

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Storage:   store,
		Blobs:     blobs.New(store, logger),
		Extractor: extraction.New(logger),
	}, nil
}

// Start initializes all infrastructure systems and registers them with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	return nil
}

// Check reports whether startup has completed and the database answers a ping.
func (i *Infrastructure) Check(ctx context.Context) error {
	if !i.Lifecycle.Ready() {
		return fmt.Errorf("startup in progress")
	}
	if err := i.Database.Connection().PingContext(ctx); err != nil {
		return fmt.Errorf("database unreachable: %w", err)
	}
	return nil
}
