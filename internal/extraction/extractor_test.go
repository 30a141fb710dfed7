package extraction

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/JaimeStill/pdf-chat/internal/extraction/pdftest"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeDoc struct {
	pages []string
	fail  map[int]error
}

func (d *fakeDoc) NumPage() int { return len(d.pages) }

func (d *fakeDoc) PageText(n int) (string, error) {
	if err, ok := d.fail[n]; ok {
		return "", err
	}
	return d.pages[n-1], nil
}

func withDoc(doc document, err error) *Extractor {
	return &Extractor{
		open:   func([]byte) (document, error) { return doc, err },
		logger: testLogger(),
	}
}

func TestExtract_Classification(t *testing.T) {
	pageFault := errors.New("bad content stream")

	tests := []struct {
		name     string
		doc      document
		openErr  error
		want     string
		wantErr  error
		wantPage int
	}{
		{
			name: "concatenates pages in order",
			doc:  &fakeDoc{pages: []string{"one", "two", "three"}},
			want: "one\ntwo\nthree\n",
		},
		{
			name: "empty pages contribute nothing",
			doc:  &fakeDoc{pages: []string{"one", "", "three"}},
			want: "one\nthree\n",
		},
		{
			name:    "open failure is malformed",
			openErr: errors.New("not a pdf"),
			wantErr: ErrMalformedDocument,
		},
		{
			name:    "zero pages is malformed",
			doc:     &fakeDoc{},
			wantErr: ErrMalformedDocument,
		},
		{
			name:    "whitespace only is no text",
			doc:     &fakeDoc{pages: []string{" ", "\n\t"}},
			wantErr: ErrNoTextExtracted,
		},
		{
			name:     "page failure reports 1-based page",
			doc:      &fakeDoc{pages: []string{"one", "two", "three"}, fail: map[int]error{2: pageFault}},
			wantErr:  pageFault,
			wantPage: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := withDoc(tt.doc, tt.openErr).Extract([]byte("ignored"))

			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Extract() error = %v", err)
				}
				if got != tt.want {
					t.Errorf("Extract() = %q, want %q", got, tt.want)
				}
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Extract() error = %v, want %v", err, tt.wantErr)
			}
			if got != "" {
				t.Errorf("Extract() returned partial text %q on error", got)
			}

			if tt.wantPage != 0 {
				var pe *PageError
				if !errors.As(err, &pe) {
					t.Fatalf("error %T is not *PageError", err)
				}
				if pe.Page != tt.wantPage {
					t.Errorf("Page = %d, want %d", pe.Page, tt.wantPage)
				}
			}
		})
	}
}

func TestExtract_RealDocuments(t *testing.T) {
	ext := New(testLogger())

	t.Run("single page", func(t *testing.T) {
		got, err := ext.Extract(pdftest.Build("Hello"))
		if err != nil {
			t.Fatalf("Extract() error = %v", err)
		}
		if !strings.Contains(got, "Hello") || !strings.HasSuffix(got, "\n") {
			t.Errorf("Extract() = %q, want Hello followed by newline", got)
		}
	})

	t.Run("page order", func(t *testing.T) {
		got, err := ext.Extract(pdftest.Build("First", "Second"))
		if err != nil {
			t.Fatalf("Extract() error = %v", err)
		}
		first, second := strings.Index(got, "First"), strings.Index(got, "Second")
		if first < 0 || second < 0 || first > second {
			t.Errorf("Extract() = %q, want First before Second", got)
		}
	})

	t.Run("image only pages", func(t *testing.T) {
		_, err := ext.Extract(pdftest.Build("", ""))
		if !errors.Is(err, ErrNoTextExtracted) {
			t.Errorf("Extract() error = %v, want %v", err, ErrNoTextExtracted)
		}
	})

	t.Run("zero pages", func(t *testing.T) {
		_, err := ext.Extract(pdftest.Build())
		if !errors.Is(err, ErrMalformedDocument) {
			t.Errorf("Extract() error = %v, want %v", err, ErrMalformedDocument)
		}
	})

	t.Run("not a pdf", func(t *testing.T) {
		_, err := ext.Extract([]byte("plain text, not a pdf"))
		if !errors.Is(err, ErrMalformedDocument) {
			t.Errorf("Extract() error = %v, want %v", err, ErrMalformedDocument)
		}
	})
}
