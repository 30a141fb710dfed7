// Package blobs stores raw PDF bytes under opaque references.
// References are generated here; callers must treat them as opaque strings.
package blobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/pdf-chat/pkg/storage"
	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("blob not found")
	ErrWriteFailure = errors.New("blob write failed")
	ErrReadFailure  = errors.New("blob read failed")
)

const keyPrefix = "pdfs"

// Store maps references to keys in the underlying storage system.
type Store struct {
	storage storage.System
	logger  *slog.Logger
}

func New(sys storage.System, logger *slog.Logger) *Store {
	return &Store{
		storage: sys,
		logger:  logger.With("system", "blobs"),
	}
}

// Put writes data under a new reference. On failure nothing is visible under the reference.
func (s *Store) Put(ctx context.Context, data []byte, attrs storage.Attributes) (string, error) {
	ref := uuid.NewString()

	if err := s.storage.Store(ctx, key(ref), data, attrs); err != nil {
		return "", fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}

	s.logger.Debug("blob stored", "ref", ref, "size", len(data))
	return ref, nil
}

// Get returns the bytes for ref, or ErrNotFound.
func (s *Store) Get(ctx context.Context, ref string) ([]byte, error) {
	data, err := s.storage.Retrieve(ctx, key(ref))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidKey) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, ref)
		}
		return nil, fmt.Errorf("%w: %w", ErrReadFailure, err)
	}
	return data, nil
}

// Delete removes the blob for ref. It is used to compensate a failed catalog write.
func (s *Store) Delete(ctx context.Context, ref string) error {
	if err := s.storage.Delete(ctx, key(ref)); err != nil {
		return fmt.Errorf("delete blob %s: %w", ref, err)
	}
	return nil
}

func key(ref string) string {
	return keyPrefix + "/" + ref + ".pdf"
}
