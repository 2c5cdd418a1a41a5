package reflow

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/tsawler/reflow/config"
	"github.com/tsawler/reflow/convert"
	"github.com/tsawler/reflow/format"
	"github.com/tsawler/reflow/layout"
	"github.com/tsawler/reflow/model"
	"github.com/tsawler/reflow/ocr"
	"github.com/tsawler/reflow/source"
	"github.com/tsawler/reflow/text"
	"github.com/tsawler/reflow/writer"
)

// Extractor provides a fluent interface for converting PDFs, text-content
// dumps and scanned images. Each configuration method returns a new
// Extractor instance, allowing method chaining.
type Extractor struct {
	// Input
	filename string
	format   format.Format
	src      source.Source

	// Lifecycle
	ownsSource bool // true if we opened the source and should close it
	opened     bool

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename:   e.filename,
		format:     e.format,
		src:        e.src,
		ownsSource: e.ownsSource,
		opened:     e.opened,
		options:    e.options.clone(),
		err:        e.err,
	}
}

// ensureSource opens the input if not already open.
func (e *Extractor) ensureSource() error {
	if e.opened {
		return nil
	}
	if e.filename == "" {
		return fmt.Errorf("no filename specified")
	}

	src, f, err := openSource(e.filename, e.options.ocr)
	if err != nil {
		return err
	}
	e.src = src
	e.format = f
	e.ownsSource = true
	e.opened = true
	return nil
}

// openSource opens filename as the source matching its format.
func openSource(filename string, ocrOpts ocr.SourceOptions) (source.Source, format.Format, error) {
	f, err := detectFormat(filename)
	if err != nil {
		return nil, format.Unknown, err
	}
	name := filepath.Base(filename)

	switch {
	case f == format.PDF:
		src, err := source.OpenPDF(filename)
		if err != nil {
			return nil, f, fmt.Errorf("failed to open PDF: %w", err)
		}
		return src, f, nil

	case f == format.TextContent:
		file, err := os.Open(filename)
		if err != nil {
			return nil, f, err
		}
		defer file.Close()
		src, err := source.ReadTextContent(name, file)
		if err != nil {
			return nil, f, fmt.Errorf("failed to read text content: %w", err)
		}
		return src, f, nil

	case f.IsImage():
		data, err := os.ReadFile(filename)
		if err != nil {
			return nil, f, err
		}
		src, err := ocr.NewSource(name, ocrOpts, data)
		if err != nil {
			return nil, f, fmt.Errorf("failed to open %s image: %w", f, err)
		}
		return src, f, nil

	default:
		return nil, f, fmt.Errorf("unsupported file format: %s", filename)
	}
}

// detectFormat uses the extension, then the leading bytes of the file.
func detectFormat(filename string) (format.Format, error) {
	if f := format.Detect(filename); f != format.Unknown {
		return f, nil
	}
	file, err := os.Open(filename)
	if err != nil {
		return format.Unknown, err
	}
	defer file.Close()
	return format.DetectFromReader(file)
}

// Close releases resources associated with the Extractor.
// It is safe to call Close multiple times.
func (e *Extractor) Close() error {
	if e.ownsSource && e.src != nil {
		err := e.src.Close()
		e.src = nil
		e.ownsSource = false
		e.opened = false
		return err
	}
	return nil
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Pages specifies which pages to convert (1-indexed).
// Multiple calls are cumulative.
//
// Example:
//
//	text, _, err := reflow.Open("doc.pdf").Pages(1, 3, 5).Text(ctx)
func (e *Extractor) Pages(pages ...int) *Extractor {
	newExt := e.clone()
	newExt.options.pages = append(newExt.options.pages, pages...)
	return newExt
}

// PageRange specifies a range of pages to convert (1-indexed, inclusive).
func (e *Extractor) PageRange(start, end int) *Extractor {
	newExt := e.clone()
	for i := start; i <= end; i++ {
		newExt.options.pages = append(newExt.options.pages, i)
	}
	return newExt
}

// WithConfig replaces all settings with cfg, typically from config.Load.
// Page selection and logger are kept.
func (e *Extractor) WithConfig(cfg config.Config) *Extractor {
	newExt := e.clone()
	opts := optionsFromConfig(cfg)
	opts.pages = newExt.options.pages
	opts.logger = newExt.options.logger
	newExt.options = opts
	return newExt
}

// Layout sets the row and paragraph thresholds.
func (e *Extractor) Layout(cfg layout.Config) *Extractor {
	newExt := e.clone()
	newExt.options.layout = cfg
	return newExt
}

// Mode sets the reconstruction mode. Only layout.ModeFlow is supported;
// terminal operations fail with layout.ErrModeUnsupported otherwise.
func (e *Extractor) Mode(mode layout.Mode) *Extractor {
	newExt := e.clone()
	newExt.options.mode = mode
	return newExt
}

// Timeout sets the conversion deadline. Zero disables it.
func (e *Extractor) Timeout(d time.Duration) *Extractor {
	newExt := e.clone()
	newExt.options.timeout = d
	return newExt
}

// Concurrency sets how many pages are reconstructed at once.
func (e *Extractor) Concurrency(n int) *Extractor {
	newExt := e.clone()
	newExt.options.concurrency = n
	return newExt
}

// Logger sets the structured logger used by the pipeline.
func (e *Extractor) Logger(logger *slog.Logger) *Extractor {
	newExt := e.clone()
	newExt.options.logger = logger
	return newExt
}

// OCRLanguage sets the Tesseract language list used for images,
// e.g. "eng+deu". It has no effect on an already opened source.
func (e *Extractor) OCRLanguage(lang string) *Extractor {
	newExt := e.clone()
	newExt.options.ocr.Language = lang
	return newExt
}

// PageSegMode sets the Tesseract page segmentation mode used for images,
// e.g. ocr.PSM_SINGLE_COLUMN for narrow scans.
func (e *Extractor) PageSegMode(mode ocr.PageSegMode) *Extractor {
	newExt := e.clone()
	newExt.options.ocr.PageSegMode = mode
	return newExt
}

// Font sets the output font family and size in points.
func (e *Extractor) Font(family string, size float64) *Extractor {
	newExt := e.clone()
	newExt.options.writer.FontFamily = family
	newExt.options.writer.FontSize = size
	return newExt
}

// Justify aligns output paragraphs to both margins.
func (e *Extractor) Justify() *Extractor {
	newExt := e.clone()
	newExt.options.writer.Justify = true
	return newExt
}

// PreserveLines keeps line breaks between the rows of a paragraph.
func (e *Extractor) PreserveLines() *Extractor {
	newExt := e.clone()
	newExt.options.writer.PreserveLines = true
	return newExt
}

// ContinuousPages writes all pages as one flow without page breaks.
func (e *Extractor) ContinuousPages() *Extractor {
	newExt := e.clone()
	newExt.options.writer.PageBreaks = false
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// PageCount returns the number of pages in the input.
// This does NOT close the source, allowing further operations.
func (e *Extractor) PageCount(ctx context.Context) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	if err := e.ensureSource(); err != nil {
		return 0, err
	}
	return e.src.PageCount(ctx)
}

// Fragments returns the raw fragments of the selected pages in page order.
// This is a terminal operation that closes a source opened by Open.
func (e *Extractor) Fragments(ctx context.Context) ([]text.TextFragment, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	if err := e.ensureSource(); err != nil {
		return nil, nil, err
	}
	defer e.Close()

	count, err := e.src.PageCount(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get page count: %w", err)
	}
	pages, warnings := e.resolvePages(count)

	var all []text.TextFragment
	for _, n := range pages {
		frags, err := e.src.PageFragments(ctx, n)
		if err != nil {
			return nil, warnings, fmt.Errorf("page %d: %w", n, err)
		}
		all = append(all, frags...)
	}
	return all, warnings, nil
}

// Document converts the selected pages into a document. When the deadline
// passes or ctx is cancelled, the completed pages are returned together
// with an error wrapping convert.ErrIncomplete.
//
// Example:
//
//	doc, warnings, err := reflow.Open("report.pdf").Document(ctx)
//	for _, page := range doc.Pages {
//	    fmt.Printf("page %d: %d paragraphs\n", page.Number, len(page.Paragraphs))
//	}
func (e *Extractor) Document(ctx context.Context) (*model.Document, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	if err := e.ensureSource(); err != nil {
		return nil, nil, err
	}
	defer e.Close()

	return e.options.converter().Convert(ctx, e.title(), e.src)
}

// Paragraphs returns the reconstructed paragraphs of all selected pages.
func (e *Extractor) Paragraphs(ctx context.Context) ([]layout.Paragraph, []Warning, error) {
	doc, warnings, err := e.Document(ctx)
	if doc == nil {
		return nil, warnings, err
	}
	var paragraphs []layout.Paragraph
	for _, page := range doc.Pages {
		for _, p := range page.Paragraphs {
			if !p.IsEmpty() {
				paragraphs = append(paragraphs, p)
			}
		}
	}
	return paragraphs, warnings, err
}

// Text returns the reconstructed text, paragraphs separated by blank lines.
// Partial text is returned along with an incomplete conversion error.
//
// Example:
//
//	text, warnings, err := reflow.Open("document.pdf").Text(ctx)
func (e *Extractor) Text(ctx context.Context) (string, []Warning, error) {
	doc, warnings, err := e.Document(ctx)
	if doc == nil {
		return "", warnings, err
	}
	return doc.ExtractText(), warnings, err
}

// Markdown returns the reconstructed document as Markdown.
func (e *Extractor) Markdown(ctx context.Context) (string, []Warning, error) {
	var buf bytes.Buffer
	warnings, err := e.WriteTo(ctx, &buf, writer.FormatMarkdown)
	if err != nil {
		return "", warnings, err
	}
	return buf.String(), warnings, nil
}

// WriteTo converts the input and encodes it to w. Nothing is written when
// the conversion fails or is incomplete.
func (e *Extractor) WriteTo(ctx context.Context, w io.Writer, f writer.Format) ([]Warning, error) {
	wr, err := writer.New(f, e.options.writer)
	if err != nil {
		return nil, err
	}

	doc, warnings, err := e.Document(ctx)
	if err != nil {
		return warnings, err
	}

	if err := wr.Write(w, doc); err != nil {
		return warnings, fmt.Errorf("failed to write %s: %w", f, err)
	}
	return warnings, nil
}

// Save converts the input and writes it to path, choosing the output
// format from the extension of path.
//
// Example:
//
//	_, err := reflow.Open("scan.png").Justify().Save(ctx, "scan.docx")
func (e *Extractor) Save(ctx context.Context, path string) ([]Warning, error) {
	f, err := writer.ParseFormat(filepath.Ext(path))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	warnings, err := e.WriteTo(ctx, &buf, f)
	if err != nil {
		return warnings, err
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return warnings, err
	}
	return warnings, nil
}

// ============================================================================
// Internal helpers
// ============================================================================

// title names the document after the input file without its extension.
func (e *Extractor) title() string {
	name := e.filename
	if name == "" && e.src != nil {
		name = e.src.Name()
	}
	base := filepath.Base(name)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// resolvePages returns the selected 1-indexed pages. Out of range pages
// are skipped with a warning.
func (e *Extractor) resolvePages(count int) ([]int, []Warning) {
	if len(e.options.pages) == 0 {
		pages := make([]int, count)
		for i := range pages {
			pages[i] = i + 1
		}
		return pages, nil
	}

	var warnings []Warning
	seen := make(map[int]bool)
	var pages []int
	for _, p := range e.options.pages {
		if p < 1 || p > count {
			warnings = append(warnings, Warning{
				Source:  e.src.Name(),
				Message: fmt.Sprintf("page %d out of range (1-%d)", p, count),
			})
			continue
		}
		if !seen[p] {
			seen[p] = true
			pages = append(pages, p)
		}
	}
	sort.Ints(pages)
	return pages, warnings
}

// IsIncomplete reports whether err means the conversion stopped early and
// the returned document holds only part of the input.
func IsIncomplete(err error) bool {
	return errors.Is(err, convert.ErrIncomplete)
}
