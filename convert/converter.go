package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/reflow/layout"
	"github.com/tsawler/reflow/model"
	"github.com/tsawler/reflow/source"
	"github.com/tsawler/reflow/text"
)

// Converter turns source documents into a reconstructed document
type Converter struct {
	reconstructor *layout.Reconstructor
	mode          layout.Mode
	timeout       time.Duration
	progress      ProgressFunc
	logger        *slog.Logger
	concurrency   int
	pages         []int
}

// New creates a converter. Without options it reconstructs every page
// sequentially in flow mode with a 30 second deadline per document.
func New(opts ...Option) *Converter {
	c := &Converter{
		reconstructor: layout.NewReconstructor(),
		mode:          layout.ModeFlow,
		timeout:       DefaultTimeout,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		concurrency:   1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert reconstructs every selected page of the sources, in order, into
// one document titled title.
//
// On cancellation or deadline the returned document holds the pages
// completed so far and the error wraps ErrIncomplete. On an extraction
// failure the error is an *Error and the document holds the pages of the
// sources before the failing one.
func (c *Converter) Convert(ctx context.Context, title string, sources ...source.Source) (*model.Document, []Warning, error) {
	if err := c.mode.Supported(); err != nil {
		return nil, nil, err
	}

	doc := model.NewDocument(title)
	var warnings []Warning

	for i, src := range sources {
		if err := ctx.Err(); err != nil {
			return doc, warnings, fmt.Errorf("%w: %s not started: %w", ErrIncomplete, src.Name(), err)
		}

		j := &job{
			conv:      c,
			src:       src,
			document:  i + 1,
			documents: len(sources),
		}
		pages, err := j.run(ctx)
		for _, page := range pages {
			doc.AddPage(page)
		}
		warnings = append(warnings, j.warnings...)

		if err != nil {
			c.logger.Error("conversion failed", "source", src.Name(), "pages", len(pages), "error", err)
			return doc, warnings, err
		}
		c.logger.Info("document converted", "source", src.Name(), "pages", len(pages))
	}

	return doc, warnings, nil
}

// ConvertPage reconstructs a single page of fragments
func (c *Converter) ConvertPage(name string, number int, fragments []text.TextFragment) *model.Page {
	result := c.reconstructor.ReconstructWithStats(fragments)
	page := model.NewPage(name, number, result.Paragraphs)
	page.Dropped = result.Dropped
	return page
}

// job converts the pages of one source
type job struct {
	conv      *Converter
	src       source.Source
	document  int
	documents int

	mu       sync.Mutex
	done     int
	warnings []Warning
}

func (j *job) run(ctx context.Context) ([]*model.Page, error) {
	if j.conv.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.conv.timeout)
		defer cancel()
	}

	count, err := j.src.PageCount(ctx)
	if err != nil {
		return nil, j.classify(ctx, 0, 0, err)
	}

	numbers := j.selectPages(count)
	results := make([]*model.Page, len(numbers))

	if j.conv.concurrency <= 1 {
		for i, n := range numbers {
			page, err := j.convertPage(ctx, n, len(numbers))
			if err != nil {
				return results[:i], j.classify(ctx, n, i, err)
			}
			results[i] = page
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(j.conv.concurrency)
	var failedPage int
	var failOnce sync.Once

	for i, n := range numbers {
		i, n := i, n
		g.Go(func() error {
			page, err := j.convertPage(gctx, n, len(numbers))
			if err != nil {
				failOnce.Do(func() { failedPage = n })
				return err
			}
			results[i] = page
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		prefix := completedPrefix(results)
		return results[:prefix], j.classify(ctx, failedPage, prefix, err)
	}
	return results, nil
}

func (j *job) convertPage(ctx context.Context, number, total int) (*model.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	frags, err := j.src.PageFragments(ctx, number)
	if err != nil {
		return nil, err
	}

	page := j.conv.ConvertPage(j.src.Name(), number, frags)
	j.conv.logger.Debug("page reconstructed",
		"source", j.src.Name(), "page", number,
		"fragments", len(frags), "paragraphs", len(page.Paragraphs))

	j.mu.Lock()
	defer j.mu.Unlock()

	if page.Dropped > 0 {
		j.warnf(number, "dropped %d fragments with blank text or invalid geometry", page.Dropped)
	}
	j.done++
	if j.conv.progress != nil {
		j.conv.progress(Progress{
			Source:    j.src.Name(),
			Document:  j.document,
			Documents: j.documents,
			Page:      number,
			Done:      j.done,
			Pages:     total,
		})
	}
	return page, nil
}

// selectPages returns the page numbers to convert in ascending order
func (j *job) selectPages(count int) []int {
	if len(j.conv.pages) == 0 {
		numbers := make([]int, count)
		for i := range numbers {
			numbers[i] = i + 1
		}
		return numbers
	}

	var numbers []int
	seen := make(map[int]bool)
	for _, n := range j.conv.pages {
		if n < 1 || n > count {
			j.warnf(0, "page %d out of range (document has %d pages)", n, count)
			continue
		}
		if !seen[n] {
			seen[n] = true
			numbers = append(numbers, n)
		}
	}
	sort.Ints(numbers)
	return numbers
}

// classify turns a page failure into ErrIncomplete when the context ended,
// or an *Error otherwise.
func (j *job) classify(ctx context.Context, page, completed int, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		return fmt.Errorf("%w: %s after %d pages: %w", ErrIncomplete, j.src.Name(), completed, ctxErr)
	}
	return &Error{Source: j.src.Name(), Page: page, Err: err}
}

// warnf records a warning; callers hold j.mu or run before pages start.
func (j *job) warnf(page int, format string, args ...any) {
	w := Warning{Source: j.src.Name(), Page: page, Message: fmt.Sprintf(format, args...)}
	j.warnings = append(j.warnings, w)
	j.conv.logger.Warn(w.Message, "source", w.Source, "page", page)
}

// completedPrefix returns the number of leading non-nil pages
func completedPrefix(pages []*model.Page) int {
	for i, p := range pages {
		if p == nil {
			return i
		}
	}
	return len(pages)
}
