package model

import (
	"strings"
	"time"

	"github.com/tsawler/reflow/layout"
)

// Document represents the reconstructed text of one or more source documents
type Document struct {
	Metadata Metadata
	Pages    []*Page
}

// Metadata contains document-level information
type Metadata struct {
	Title   string
	Sources []string
	Created time.Time
}

// NewDocument creates a new empty document
func NewDocument(title string) *Document {
	return &Document{
		Metadata: Metadata{
			Title:   title,
			Created: time.Now(),
		},
		Pages: make([]*Page, 0),
	}
}

// AddPage appends a page, numbering it within the document and recording
// its source.
func (d *Document) AddPage(page *Page) {
	page.Index = len(d.Pages) + 1
	if page.Source != "" && !containsString(d.Metadata.Sources, page.Source) {
		d.Metadata.Sources = append(d.Metadata.Sources, page.Source)
	}
	d.Pages = append(d.Pages, page)
}

// GetPage returns a page by document index (1-indexed)
func (d *Document) GetPage(index int) *Page {
	if index < 1 || index > len(d.Pages) {
		return nil
	}
	return d.Pages[index-1]
}

// PageCount returns the total number of pages
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// ParagraphCount returns the number of non-empty paragraphs across all pages
func (d *Document) ParagraphCount() int {
	n := 0
	for _, page := range d.Pages {
		for _, p := range page.Paragraphs {
			if !p.IsEmpty() {
				n++
			}
		}
	}
	return n
}

// ExtractText returns all paragraphs separated by blank lines
func (d *Document) ExtractText() string {
	var parts []string
	for _, page := range d.Pages {
		if t := page.ExtractText(); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n\n")
}

// Page is the reconstructed text of one source page
type Page struct {
	// Index is the 1-based position of the page in the document
	Index int

	// Source identifies the source document
	Source string

	// Number is the 1-based page number within the source document
	Number int

	// Paragraphs in reading order, never empty
	Paragraphs []layout.Paragraph

	// Dropped counts fragments discarded during reconstruction
	Dropped int
}

// NewPage creates a page for the given source page. An empty paragraph list
// is replaced by a single empty paragraph.
func NewPage(source string, number int, paragraphs []layout.Paragraph) *Page {
	if len(paragraphs) == 0 {
		paragraphs = []layout.Paragraph{{}}
	}
	return &Page{
		Source:     source,
		Number:     number,
		Paragraphs: paragraphs,
	}
}

// IsBlank returns true if no paragraph on the page has text
func (p *Page) IsBlank() bool {
	for _, para := range p.Paragraphs {
		if !para.IsEmpty() {
			return false
		}
	}
	return true
}

// ExtractText returns the page's paragraphs separated by blank lines
func (p *Page) ExtractText() string {
	var parts []string
	for _, para := range p.Paragraphs {
		if !para.IsEmpty() {
			parts = append(parts, para.Text)
		}
	}
	return strings.Join(parts, "\n\n")
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
