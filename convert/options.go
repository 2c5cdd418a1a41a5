package convert

import (
	"log/slog"
	"time"

	"github.com/tsawler/reflow/layout"
)

// DefaultTimeout is the per-document deadline
const DefaultTimeout = 30 * time.Second

// Progress reports a completed page
type Progress struct {
	// Source is the name of the document being converted
	Source string

	// Document is the 1-based index of the source in the batch
	Document int

	// Documents is the number of sources in the batch
	Documents int

	// Page is the page number just completed
	Page int

	// Done is the number of pages of this source completed so far
	Done int

	// Pages is the number of pages selected from this source
	Pages int
}

// ProgressFunc receives progress after each page
type ProgressFunc func(Progress)

// Option configures a Converter
type Option func(*Converter)

// WithLayoutConfig sets the reconstruction thresholds
func WithLayoutConfig(config layout.Config) Option {
	return func(c *Converter) {
		c.reconstructor = layout.NewReconstructorWithConfig(config)
	}
}

// WithMode sets the reconstruction mode
func WithMode(mode layout.Mode) Option {
	return func(c *Converter) {
		c.mode = mode
	}
}

// WithTimeout sets the deadline for each source document. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Converter) {
		c.timeout = d
	}
}

// WithProgress sets the progress callback. Calls are serialized.
func WithProgress(fn ProgressFunc) Option {
	return func(c *Converter) {
		c.progress = fn
	}
}

// WithLogger sets the structured logger. The default discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithConcurrency sets how many pages of a document are processed at once.
// The default of 1 processes pages sequentially.
func WithConcurrency(n int) Option {
	return func(c *Converter) {
		if n < 1 {
			n = 1
		}
		c.concurrency = n
	}
}

// WithPages restricts conversion to the given 1-based page numbers of every
// source. Numbers outside a document are skipped with a warning.
func WithPages(pages ...int) Option {
	return func(c *Converter) {
		c.pages = append([]int(nil), pages...)
	}
}
