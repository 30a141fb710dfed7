package ingestion

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/JaimeStill/pdf-chat/internal/blobs"
	"github.com/JaimeStill/pdf-chat/internal/documents"
	"github.com/JaimeStill/pdf-chat/internal/extraction"
	"github.com/JaimeStill/pdf-chat/internal/parsed"
	"github.com/JaimeStill/pdf-chat/internal/selection"
	"github.com/JaimeStill/pdf-chat/pkg/storage"
	"github.com/google/uuid"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type memBlobs struct {
	mu        sync.Mutex
	data      map[string][]byte
	putErr    error
	getErr    error
	deleteErr error
	deletes   int
}

func newMemBlobs() *memBlobs {
	return &memBlobs{data: map[string][]byte{}}
}

func (m *memBlobs) Put(_ context.Context, data []byte, _ storage.Attributes) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.putErr != nil {
		return "", m.putErr
	}
	ref := uuid.NewString()
	m.data[ref] = append([]byte(nil), data...)
	return ref, nil
}

func (m *memBlobs) Get(_ context.Context, ref string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.getErr != nil {
		return nil, m.getErr
	}
	data, ok := m.data[ref]
	if !ok {
		return nil, blobs.ErrNotFound
	}
	return data, nil
}

func (m *memBlobs) Delete(_ context.Context, ref string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.deletes++
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.data, ref)
	return nil
}

func (m *memBlobs) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

type memCatalog struct {
	mu        sync.Mutex
	docs      []documents.Document
	insertErr error
	clock     func() time.Time
}

func newMemCatalog() *memCatalog {
	return &memCatalog{clock: func() time.Time { return time.Now().UTC() }}
}

func (m *memCatalog) Insert(_ context.Context, cmd documents.InsertCommand) (*documents.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.insertErr != nil {
		return nil, m.insertErr
	}
	doc := documents.Document{
		Ref:         cmd.Ref,
		UserID:      cmd.UserID,
		Filename:    cmd.Filename,
		ContentType: cmd.ContentType,
		SizeBytes:   cmd.SizeBytes,
		PageCount:   cmd.PageCount,
		UploadedAt:  m.clock(),
	}
	m.docs = append(m.docs, doc)
	return &doc, nil
}

func (m *memCatalog) ListByUser(_ context.Context, userID uuid.UUID) ([]documents.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []documents.Document
	for _, d := range m.docs {
		if d.UserID == userID {
			result = append(result, d)
		}
	}
	return result, nil
}

func (m *memCatalog) FindOne(_ context.Context, userID uuid.UUID, ref string) (*documents.Document, error) {
	if _, err := documents.ParseRef(ref); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, d := range m.docs {
		if d.Ref == ref && d.UserID == userID {
			return &d, nil
		}
	}
	return nil, documents.ErrNotFound
}

func (m *memCatalog) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.docs)
}

type cacheKey struct {
	user uuid.UUID
	ref  string
}

type memCache struct {
	mu        sync.Mutex
	records   map[cacheKey]parsed.Record
	upsertErr error
}

func newMemCache() *memCache {
	return &memCache{records: map[cacheKey]parsed.Record{}}
}

func (m *memCache) Upsert(_ context.Context, rec parsed.Record) (*parsed.Record, error) {
	if strings.TrimSpace(rec.Text) == "" {
		return nil, parsed.ErrEmptyText
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.upsertErr != nil {
		return nil, m.upsertErr
	}
	m.records[cacheKey{rec.UserID, rec.Ref}] = rec
	return &rec, nil
}

func (m *memCache) Find(_ context.Context, userID uuid.UUID, ref string) (*parsed.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[cacheKey{userID, ref}]
	if !ok {
		return nil, parsed.ErrNotFound
	}
	return &rec, nil
}

type memSelections struct {
	mu        sync.Mutex
	records   map[uuid.UUID]selection.Selection
	upsertErr error
}

func newMemSelections() *memSelections {
	return &memSelections{records: map[uuid.UUID]selection.Selection{}}
}

func (m *memSelections) Upsert(_ context.Context, sel selection.Selection) (*selection.Selection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.upsertErr != nil {
		return nil, m.upsertErr
	}
	m.records[sel.UserID] = sel
	return &sel, nil
}

func (m *memSelections) Find(_ context.Context, userID uuid.UUID) (*selection.Selection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sel, ok := m.records[userID]
	if !ok {
		return nil, selection.ErrNotFound
	}
	return &sel, nil
}

// scriptedExtractor returns its results in order, repeating the last one.
type scriptedExtractor struct {
	mu      sync.Mutex
	results []extractResult
}

type extractResult struct {
	text string
	err  error
}

func (s *scriptedExtractor) Extract([]byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.results[0]
	if len(s.results) > 1 {
		s.results = s.results[1:]
	}
	return r.text, r.err
}

type fixture struct {
	svc        *service
	blobs      *memBlobs
	catalog    *memCatalog
	cache      *memCache
	selections *memSelections
}

func newFixture(ext Extractor) *fixture {
	if ext == nil {
		ext = extraction.New(testLogger())
	}

	f := &fixture{
		blobs:      newMemBlobs(),
		catalog:    newMemCatalog(),
		cache:      newMemCache(),
		selections: newMemSelections(),
	}

	f.svc = New(Deps{
		Blobs:       f.blobs,
		Catalog:     f.catalog,
		Extractor:   ext,
		Cache:       f.cache,
		Selections:  f.selections,
		PageCounter: documents.PageCount,
	}, testLogger()).(*service)

	return f
}
