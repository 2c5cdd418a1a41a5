package convert

import (
	"errors"
	"fmt"
)

// ErrIncomplete is returned, wrapped, when a conversion stops early because
// its context was cancelled or its deadline passed. The document returned
// alongside holds every page completed before that point.
var ErrIncomplete = errors.New("conversion incomplete")

// Error is an extraction failure for one source document
type Error struct {
	// Source is the name of the failing document
	Source string

	// Page is the 1-based page number, 0 when the document itself failed
	Page int

	Err error
}

func (e *Error) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("%s: page %d: %v", e.Source, e.Page, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}
