package storage

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/JaimeStill/pdf-chat/pkg/lifecycle"
)

// Attributes describe a stored object. Backends that support object metadata
// persist them alongside the bytes; the filesystem backend ignores them.
type Attributes struct {
	ContentType string
	Metadata    map[string]string
}

// System defines key-addressed blob storage.
type System interface {
	// Store writes data at key, replacing any existing object.
	// A failed Store leaves no object visible at key.
	Store(ctx context.Context, key string, data []byte, attrs Attributes) error

	// Retrieve returns the data stored at key, or ErrNotFound.
	Retrieve(ctx context.Context, key string) ([]byte, error)

	// Delete removes the object at key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Start registers lifecycle hooks with the coordinator.
	Start(lc *lifecycle.Coordinator) error
}

// New creates the storage System selected by cfg.Backend.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	switch cfg.Backend {
	case BackendS3:
		return newS3(&cfg.S3, logger)
	case BackendFilesystem, "":
		return newFilesystem(cfg.BasePath, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Backend)
	}
}

func cleanKey(key string) (string, error) {
	if key == "" {
		return "", ErrInvalidKey
	}

	cleaned := path.Clean(strings.ReplaceAll(key, "\\", "/"))
	if cleaned == "." || strings.HasPrefix(cleaned, "..") || strings.HasPrefix(cleaned, "/") {
		return "", ErrInvalidKey
	}

	return cleaned, nil
}
