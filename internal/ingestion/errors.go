package ingestion

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies ingestion failures. The set is closed; transport status
// is derived from the kind in MapHTTPStatus and nowhere else.
type Kind int

const (
	KindInvalidReference Kind = iota + 1
	KindEmptyUpload
	KindMalformedDocument
	KindNoTextExtracted
	KindNotFound
	KindStorageWriteFailure
	KindStorageReadFailure
	KindMetadataWriteFailure
	KindCacheWriteFailure
	KindExtractionFailure
	KindSelectionWriteFailure
	KindNoSelection
	KindNotParsed
)

var kindNames = map[Kind]string{
	KindInvalidReference:      "invalid_reference",
	KindEmptyUpload:           "empty_upload",
	KindMalformedDocument:     "malformed_document",
	KindNoTextExtracted:       "no_text_extracted",
	KindNotFound:              "not_found",
	KindStorageWriteFailure:   "storage_write_failure",
	KindStorageReadFailure:    "storage_read_failure",
	KindMetadataWriteFailure:  "metadata_write_failure",
	KindCacheWriteFailure:     "cache_write_failure",
	KindExtractionFailure:     "extraction_failure",
	KindSelectionWriteFailure: "selection_write_failure",
	KindNoSelection:           "no_selection",
	KindNotParsed:             "not_parsed",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is the single error type returned by the orchestrator.
// Page is set for KindExtractionFailure; Input holds caller-supplied data
// that may be echoed back (such as a malformed id).
type Error struct {
	Kind  Kind
	Page  int
	Input string
	Err   error
}

// Sentinels for errors.Is. Matching compares Kind only.
var (
	ErrInvalidReference      = &Error{Kind: KindInvalidReference}
	ErrEmptyUpload           = &Error{Kind: KindEmptyUpload}
	ErrMalformedDocument     = &Error{Kind: KindMalformedDocument}
	ErrNoTextExtracted       = &Error{Kind: KindNoTextExtracted}
	ErrNotFound              = &Error{Kind: KindNotFound}
	ErrStorageWriteFailure   = &Error{Kind: KindStorageWriteFailure}
	ErrStorageReadFailure    = &Error{Kind: KindStorageReadFailure}
	ErrMetadataWriteFailure  = &Error{Kind: KindMetadataWriteFailure}
	ErrCacheWriteFailure     = &Error{Kind: KindCacheWriteFailure}
	ErrExtractionFailure     = &Error{Kind: KindExtractionFailure}
	ErrSelectionWriteFailure = &Error{Kind: KindSelectionWriteFailure}
	ErrNoSelection           = &Error{Kind: KindNoSelection}
	ErrNotParsed             = &Error{Kind: KindNotParsed}
)

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message() + ": " + e.Err.Error()
	}
	return e.Message()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Message is safe to return to the caller.
func (e *Error) Message() string {
	switch e.Kind {
	case KindInvalidReference:
		return fmt.Sprintf("invalid pdf id: %q", e.Input)
	case KindEmptyUpload:
		return "uploaded file is empty"
	case KindMalformedDocument:
		return "file is not a readable pdf"
	case KindNoTextExtracted:
		return "no text could be extracted from the pdf"
	case KindNotFound:
		return "pdf not found"
	case KindStorageWriteFailure:
		return "failed to store file"
	case KindStorageReadFailure:
		return "failed to read file"
	case KindMetadataWriteFailure:
		return "failed to save file metadata"
	case KindCacheWriteFailure:
		return "failed to save parsed text"
	case KindExtractionFailure:
		return fmt.Sprintf("failed to extract text from page %d", e.Page)
	case KindSelectionWriteFailure:
		return "failed to save selection"
	case KindNoSelection:
		return "no pdf selected"
	case KindNotParsed:
		return "selected pdf has not been parsed"
	default:
		return "internal server error"
	}
}

func newError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// MapHTTPStatus converts ingestion errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}

	switch e.Kind {
	case KindInvalidReference, KindEmptyUpload, KindMalformedDocument, KindNoTextExtracted, KindNoSelection:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindNotParsed:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the caller-facing message for err.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message()
	}
	return "internal server error"
}
