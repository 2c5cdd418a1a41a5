package writer

import (
	"fmt"
	"io"
	"strings"

	"github.com/tsawler/reflow/layout"
	"github.com/tsawler/reflow/model"
)

// Format identifies an output format
type Format int

const (
	FormatText Format = iota
	FormatMarkdown
	FormatHTML
	FormatDOCX
	FormatPDF
)

// String returns a string representation of the format
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatMarkdown:
		return "markdown"
	case FormatHTML:
		return "html"
	case FormatDOCX:
		return "docx"
	case FormatPDF:
		return "pdf"
	default:
		return "unknown"
	}
}

// Extension returns the file extension for the format
func (f Format) Extension() string {
	switch f {
	case FormatText:
		return ".txt"
	case FormatMarkdown:
		return ".md"
	case FormatHTML:
		return ".html"
	case FormatDOCX:
		return ".docx"
	case FormatPDF:
		return ".pdf"
	default:
		return ""
	}
}

// ParseFormat converts a format name or extension to a Format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "txt", "text":
		return FormatText, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "html", "htm":
		return FormatHTML, nil
	case "docx", "word":
		return FormatDOCX, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return FormatText, fmt.Errorf("unknown output format %q", s)
	}
}

// Options holds presentation settings shared by all writers
type Options struct {
	// FontFamily is the body font (default: "Helvetica")
	FontFamily string

	// FontSize is the body font size in points (default: 11)
	FontSize float64

	// Justify aligns paragraphs to both margins
	Justify bool

	// PageBreaks starts each source page on a new output page or section
	PageBreaks bool

	// PreserveLines keeps line breaks between the rows of a paragraph
	PreserveLines bool
}

// DefaultOptions returns sensible default presentation settings
func DefaultOptions() Options {
	return Options{
		FontFamily: "Helvetica",
		FontSize:   11,
		PageBreaks: true,
	}
}

func (o Options) normalized() Options {
	d := DefaultOptions()
	if strings.TrimSpace(o.FontFamily) == "" {
		o.FontFamily = d.FontFamily
	}
	if !(o.FontSize > 0) {
		o.FontSize = d.FontSize
	}
	return o
}

// Writer encodes a document into an output format
type Writer interface {
	Write(w io.Writer, doc *model.Document) error
}

// New returns the writer for a format
func New(format Format, opts Options) (Writer, error) {
	opts = opts.normalized()
	switch format {
	case FormatText:
		return &TextWriter{opts: opts}, nil
	case FormatMarkdown:
		return &MarkdownWriter{opts: opts}, nil
	case FormatHTML:
		return &HTMLWriter{opts: opts}, nil
	case FormatDOCX:
		return &DOCXWriter{opts: opts}, nil
	case FormatPDF:
		return &PDFWriter{opts: opts}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// paragraphLines returns the text lines of a paragraph: one per row when
// lines are preserved, otherwise the joined paragraph text.
func paragraphLines(p layout.Paragraph, preserve bool) []string {
	if !preserve || len(p.Lines) < 2 {
		return []string{p.Text}
	}
	lines := make([]string, 0, len(p.Lines))
	for _, row := range p.Lines {
		if t := strings.TrimSpace(row.Text()); t != "" {
			lines = append(lines, t)
		}
	}
	return lines
}
