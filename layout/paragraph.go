package layout

import (
	"math"
	"strings"
)

// Paragraph represents consecutive rows judged to form one block of prose
type Paragraph struct {
	// Lines are the rows of the paragraph (top to bottom)
	Lines []Row

	// Text is the rows' text joined with single spaces, trimmed
	Text string
}

// IsEmpty returns true if the paragraph has no text content
func (p Paragraph) IsEmpty() bool {
	return p.Text == ""
}

// WordCount returns an approximate word count for the paragraph
func (p Paragraph) WordCount() int {
	return len(strings.Fields(p.Text))
}

// newParagraph assembles the text of a run of rows.
func newParagraph(rows []Row) Paragraph {
	parts := make([]string, len(rows))
	for i, row := range rows {
		parts[i] = row.Text()
	}
	return Paragraph{
		Lines: rows,
		Text:  strings.TrimSpace(strings.Join(parts, " ")),
	}
}

// groupIntoParagraphs clusters rows into paragraphs. It always returns at
// least one paragraph.
func groupIntoParagraphs(rows []Row, gap float64) []Paragraph {
	var paragraphs []Paragraph
	var firstBlank *Paragraph
	var current []Row
	var lastRowY, lastRowHeight float64
	haveLast := false

	flush := func() {
		if len(current) == 0 {
			return
		}
		p := newParagraph(current)
		current = nil
		if p.IsEmpty() {
			if firstBlank == nil {
				firstBlank = &p
			}
			return
		}
		paragraphs = append(paragraphs, p)
	}

	for _, row := range rows {
		if haveLast && math.Abs(lastRowY-row.Y) > lastRowHeight*gap {
			flush()
		}
		current = append(current, row)
		lastRowY = row.Y
		lastRowHeight = row.Height
		haveLast = true
	}
	flush()

	if len(paragraphs) == 0 {
		if firstBlank != nil {
			return []Paragraph{*firstBlank}
		}
		return []Paragraph{{}}
	}
	return paragraphs
}
