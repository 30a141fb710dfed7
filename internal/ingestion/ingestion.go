// Package ingestion coordinates the PDF pipeline: upload into blob storage and
// the catalog, parse into the text cache, and select a document for chat.
// Ownership is enforced by the catalog lookup that starts every parse and select.
package ingestion

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/JaimeStill/pdf-chat/internal/blobs"
	"github.com/JaimeStill/pdf-chat/internal/documents"
	"github.com/JaimeStill/pdf-chat/internal/extraction"
	"github.com/JaimeStill/pdf-chat/internal/parsed"
	"github.com/JaimeStill/pdf-chat/internal/selection"
	"github.com/JaimeStill/pdf-chat/pkg/storage"
	"github.com/google/uuid"
)

const compensationTimeout = 30 * time.Second

// BlobStore holds raw PDF bytes under opaque references.
type BlobStore interface {
	Put(ctx context.Context, data []byte, attrs storage.Attributes) (string, error)
	Get(ctx context.Context, ref string) ([]byte, error)
	Delete(ctx context.Context, ref string) error
}

// Extractor converts PDF bytes to text.
type Extractor interface {
	Extract(data []byte) (string, error)
}

// Deps are the collaborators the orchestrator coordinates.
// PageCounter is optional; when nil, uploads are cataloged without a page count.
type Deps struct {
	Blobs       BlobStore
	Catalog     documents.System
	Extractor   Extractor
	Cache       parsed.System
	Selections  selection.System
	PageCounter func(data []byte) (*int, error)
}

// ListItem is one entry of a user's upload list.
type ListItem struct {
	Filename   string  `json:"filename"`
	UploadDate *string `json:"upload_date"`
	FileID     string  `json:"file_id"`
}

// System defines the ingestion operations.
type System interface {
	// Upload stores data and catalogs it for userID, returning the opaque reference.
	Upload(ctx context.Context, data []byte, filename, contentType string, userID uuid.UUID) (string, error)

	// List returns the user's uploads in insertion order.
	List(ctx context.Context, userID uuid.UUID) ([]ListItem, error)

	// Parse extracts the text of ref and caches it. When only the cache write fails,
	// the text is returned together with a KindCacheWriteFailure error.
	Parse(ctx context.Context, ref string, userID uuid.UUID) (string, error)

	// Select makes ref the user's active document.
	Select(ctx context.Context, ref string, userID uuid.UUID) (*selection.Selection, error)

	// Context returns the user's selection and its parsed text.
	// It fails with KindNoSelection or KindNotParsed.
	Context(ctx context.Context, userID uuid.UUID) (*selection.Selection, *parsed.Record, error)
}

type service struct {
	deps   Deps
	logger *slog.Logger
	now    func() time.Time
}

// New creates the orchestrator over deps.
func New(deps Deps, logger *slog.Logger) System {
	return &service{
		deps:   deps,
		logger: logger.With("system", "ingestion"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Upload(ctx context.Context, data []byte, filename, contentType string, userID uuid.UUID) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyUpload
	}

	var pageCount *int
	if s.deps.PageCounter != nil {
		pc, err := s.deps.PageCounter(data)
		if err != nil {
			s.logger.Warn("failed to read pdf page count", "filename", filename, "error", err)
		} else {
			pageCount = pc
		}
	}

	ref, err := s.deps.Blobs.Put(ctx, data, storage.Attributes{
		ContentType: contentType,
		Metadata: map[string]string{
			"user_id":  userID.String(),
			"filename": filename,
		},
	})
	if err != nil {
		return "", newError(KindStorageWriteFailure, err)
	}

	_, err = s.deps.Catalog.Insert(ctx, documents.InsertCommand{
		Ref:         ref,
		UserID:      userID,
		Filename:    filename,
		ContentType: contentType,
		SizeBytes:   int64(len(data)),
		PageCount:   pageCount,
	})
	if err != nil {
		s.compensate(ctx, ref)
		return "", newError(KindMetadataWriteFailure, err)
	}

	s.logger.Info("pdf uploaded", "file_id", ref, "user_id", userID, "filename", filename, "size", len(data))
	return ref, nil
}

// compensate removes a blob whose catalog write failed. It runs detached from
// request cancellation so a timed-out request still cleans up.
func (s *service) compensate(ctx context.Context, ref string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), compensationTimeout)
	defer cancel()

	if err := s.deps.Blobs.Delete(ctx, ref); err != nil {
		s.logger.Error("orphaned blob: compensating delete failed", "file_id", ref, "error", err)
		return
	}
	s.logger.Warn("blob removed after catalog write failure", "file_id", ref)
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]ListItem, error) {
	docs, err := s.deps.Catalog.ListByUser(ctx, userID)
	if err != nil {
		return nil, newError(KindStorageReadFailure, err)
	}

	items := make([]ListItem, 0, len(docs))
	for _, doc := range docs {
		item := ListItem{Filename: doc.Filename, FileID: doc.Ref}
		if !doc.UploadedAt.IsZero() {
			date := doc.UploadedAt.UTC().Format(time.RFC3339)
			item.UploadDate = &date
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *service) Parse(ctx context.Context, ref string, userID uuid.UUID) (string, error) {
	doc, err := s.lookup(ctx, ref, userID)
	if err != nil {
		return "", err
	}

	data, err := s.deps.Blobs.Get(ctx, doc.Ref)
	if err != nil {
		if errors.Is(err, blobs.ErrNotFound) {
			s.logger.Warn("catalog entry has no blob", "file_id", doc.Ref, "user_id", userID)
			return "", newError(KindNotFound, err)
		}
		return "", newError(KindStorageReadFailure, err)
	}

	text, err := s.deps.Extractor.Extract(data)
	if err != nil {
		return "", classifyExtraction(err)
	}

	_, err = s.deps.Cache.Upsert(ctx, parsed.Record{
		UserID:   userID,
		Ref:      doc.Ref,
		Text:     text,
		ParsedAt: s.now(),
	})
	if err != nil {
		s.logger.Error("failed to cache parsed text", "file_id", doc.Ref, "user_id", userID, "error", err)
		return text, newError(KindCacheWriteFailure, err)
	}

	return text, nil
}

func (s *service) Select(ctx context.Context, ref string, userID uuid.UUID) (*selection.Selection, error) {
	doc, err := s.lookup(ctx, ref, userID)
	if err != nil {
		return nil, err
	}

	sel, err := s.deps.Selections.Upsert(ctx, selection.Selection{
		UserID:     userID,
		Ref:        doc.Ref,
		Filename:   doc.Filename,
		SelectedAt: s.now(),
	})
	if err != nil {
		return nil, newError(KindSelectionWriteFailure, err)
	}
	return sel, nil
}

func (s *service) Context(ctx context.Context, userID uuid.UUID) (*selection.Selection, *parsed.Record, error) {
	sel, err := s.deps.Selections.Find(ctx, userID)
	if err != nil {
		if errors.Is(err, selection.ErrNotFound) {
			return nil, nil, ErrNoSelection
		}
		return nil, nil, newError(KindStorageReadFailure, err)
	}

	rec, err := s.deps.Cache.Find(ctx, userID, sel.Ref)
	if err != nil {
		if errors.Is(err, parsed.ErrNotFound) {
			return sel, nil, &Error{Kind: KindNotParsed, Input: sel.Ref, Err: err}
		}
		return sel, nil, newError(KindStorageReadFailure, err)
	}

	return sel, rec, nil
}

func (s *service) lookup(ctx context.Context, ref string, userID uuid.UUID) (*documents.Document, error) {
	doc, err := s.deps.Catalog.FindOne(ctx, userID, ref)
	if err == nil {
		return doc, nil
	}

	switch {
	case errors.Is(err, documents.ErrInvalidReference):
		return nil, &Error{Kind: KindInvalidReference, Input: ref, Err: err}
	case errors.Is(err, documents.ErrNotFound):
		return nil, &Error{Kind: KindNotFound, Input: ref, Err: err}
	default:
		return nil, newError(KindStorageReadFailure, err)
	}
}

func classifyExtraction(err error) error {
	var pe *extraction.PageError

	switch {
	case errors.Is(err, extraction.ErrMalformedDocument):
		return newError(KindMalformedDocument, err)
	case errors.Is(err, extraction.ErrNoTextExtracted):
		return newError(KindNoTextExtracted, err)
	case errors.As(err, &pe):
		return &Error{Kind: KindExtractionFailure, Page: pe.Page, Err: err}
	default:
		return newError(KindExtractionFailure, err)
	}
}
