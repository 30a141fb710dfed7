package ingestion

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindInvalidReference, http.StatusBadRequest},
		{KindEmptyUpload, http.StatusBadRequest},
		{KindMalformedDocument, http.StatusBadRequest},
		{KindNoTextExtracted, http.StatusBadRequest},
		{KindNoSelection, http.StatusBadRequest},
		{KindNotFound, http.StatusNotFound},
		{KindNotParsed, http.StatusConflict},
		{KindStorageWriteFailure, http.StatusInternalServerError},
		{KindStorageReadFailure, http.StatusInternalServerError},
		{KindMetadataWriteFailure, http.StatusInternalServerError},
		{KindCacheWriteFailure, http.StatusInternalServerError},
		{KindExtractionFailure, http.StatusInternalServerError},
		{KindSelectionWriteFailure, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			err := fmt.Errorf("wrapped: %w", &Error{Kind: tt.kind})
			if got := MapHTTPStatus(err); got != tt.want {
				t.Errorf("MapHTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}

	if got := MapHTTPStatus(errors.New("unknown")); got != http.StatusInternalServerError {
		t.Errorf("MapHTTPStatus(unknown) = %d, want 500", got)
	}
}

func TestError_IsMatchesKind(t *testing.T) {
	cause := errors.New("cause")
	err := &Error{Kind: KindExtractionFailure, Page: 3, Err: cause}

	if !errors.Is(err, ErrExtractionFailure) {
		t.Error("errors.Is() did not match same kind")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("errors.Is() matched different kind")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is() did not reach wrapped cause")
	}
}

func TestPublicMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"infrastructure hides cause", &Error{Kind: KindStorageReadFailure, Err: errors.New("dial tcp 10.0.0.1")}, "failed to read file"},
		{"caller input echoed", &Error{Kind: KindInvalidReference, Input: "x1"}, `invalid pdf id: "x1"`},
		{"page index", &Error{Kind: KindExtractionFailure, Page: 2}, "failed to extract text from page 2"},
		{"foreign error", errors.New("boom"), "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PublicMessage(tt.err); got != tt.want {
				t.Errorf("PublicMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
