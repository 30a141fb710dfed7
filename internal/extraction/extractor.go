// Package extraction turns PDF bytes into plain text, page by page,
// and classifies failures as malformed input, text-less input, or a page fault.
package extraction

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"
)

// document is the page-level view of an opened PDF.
type document interface {
	NumPage() int
	PageText(n int) (string, error)
}

type opener func(data []byte) (document, error)

// Extractor extracts plain text from PDF documents.
type Extractor struct {
	open   opener
	logger *slog.Logger
}

// New creates an Extractor backed by github.com/ledongthuc/pdf.
func New(logger *slog.Logger) *Extractor {
	return &Extractor{
		open:   openPDF,
		logger: logger.With("system", "extraction"),
	}
}

// Extract returns the text of every page in order, each non-empty page followed by a newline.
//
// It fails with ErrMalformedDocument when data cannot be opened or has zero pages,
// with *PageError when any page fails (earlier pages are discarded), and with
// ErrNoTextExtracted when the trimmed result is empty.
func (e *Extractor) Extract(data []byte) (string, error) {
	doc, err := e.open(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	pages := doc.NumPage()
	if pages == 0 {
		return "", fmt.Errorf("%w: document has no pages", ErrMalformedDocument)
	}

	var b strings.Builder
	for i := 1; i <= pages; i++ {
		text, err := doc.PageText(i)
		if err != nil {
			return "", &PageError{Page: i, Err: err}
		}
		if text != "" {
			b.WriteString(text)
			b.WriteString("\n")
		}
	}

	result := b.String()
	if strings.TrimSpace(result) == "" {
		e.logger.Info("pdf contains no extractable text", "pages", pages)
		return "", ErrNoTextExtracted
	}

	e.logger.Debug("pdf text extracted", "pages", pages, "chars", len(result))
	return result, nil
}

type ledongthucDoc struct {
	r *pdf.Reader
}

func openPDF(data []byte) (doc document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	return &ledongthucDoc{r: r}, nil
}

func (d *ledongthucDoc) NumPage() (n int) {
	defer func() {
		if r := recover(); r != nil {
			n = 0
		}
	}()
	return d.r.NumPage()
}

func (d *ledongthucDoc) PageText(n int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("decoder panic: %v", r)
		}
	}()

	page := d.r.Page(n)
	if page.V.IsNull() {
		return "", errMissingPage
	}
	return page.GetPlainText(nil)
}
