package extraction

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedDocument indicates the bytes could not be opened as a PDF or it has no pages.
	ErrMalformedDocument = errors.New("malformed pdf document")

	// ErrNoTextExtracted indicates a well-formed PDF whose pages yield no text, such as a scan.
	ErrNoTextExtracted = errors.New("no text could be extracted from the pdf")

	errMissingPage = errors.New("page object missing")
)

// PageError reports a failure extracting a single page. Page is 1-based.
type PageError struct {
	Page int
	Err  error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("extract page %d: %v", e.Page, e.Err)
}

func (e *PageError) Unwrap() error {
	return e.Err
}
