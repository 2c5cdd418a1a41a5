package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/tsawler/reflow/text"
)

// ErrPageOutOfRange is returned when a page number is outside the document
var ErrPageOutOfRange = errors.New("page out of range")

// Source yields the text fragments of a document one page at a time.
// Page numbers are 1-based.
type Source interface {
	// Name identifies the document, typically its file name
	Name() string

	// PageCount returns the number of pages in the document
	PageCount(ctx context.Context) (int, error)

	// PageFragments returns the fragments of one page in no particular order
	PageFragments(ctx context.Context, page int) ([]text.TextFragment, error)

	// Close releases resources held by the source
	Close() error
}

// Static is an in-memory Source
type Static struct {
	name  string
	pages [][]text.TextFragment
}

// NewStatic creates a source whose pages are the given fragment slices
func NewStatic(name string, pages ...[]text.TextFragment) *Static {
	return &Static{name: name, pages: pages}
}

// Name returns the source name
func (s *Static) Name() string { return s.name }

// PageCount returns the number of pages
func (s *Static) PageCount(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return len(s.pages), nil
}

// PageFragments returns a copy of the fragments of the given page
func (s *Static) PageFragments(ctx context.Context, page int) ([]text.TextFragment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkPage(page, len(s.pages)); err != nil {
		return nil, err
	}
	out := make([]text.TextFragment, len(s.pages[page-1]))
	copy(out, s.pages[page-1])
	return out, nil
}

// Close is a no-op
func (s *Static) Close() error { return nil }

func checkPage(page, count int) error {
	if page < 1 || page > count {
		return fmt.Errorf("%w: page %d of %d", ErrPageOutOfRange, page, count)
	}
	return nil
}
