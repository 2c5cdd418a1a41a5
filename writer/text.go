package writer

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/tsawler/reflow/model"
)

// TextWriter writes paragraphs as plain text separated by blank lines.
// Pages are separated by a form feed when page breaks are enabled.
type TextWriter struct {
	opts Options
}

// Write writes the document as plain text
func (tw *TextWriter) Write(w io.Writer, doc *model.Document) error {
	bw := bufio.NewWriter(w)
	first := true

	for i, page := range doc.Pages {
		if i > 0 && tw.opts.PageBreaks {
			bw.WriteString("\f")
			first = true
		}
		for _, p := range page.Paragraphs {
			if p.IsEmpty() {
				continue
			}
			if !first {
				bw.WriteString("\n\n")
			}
			bw.WriteString(strings.Join(paragraphLines(p, tw.opts.PreserveLines), "\n"))
			first = false
		}
	}
	bw.WriteString("\n")

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write text: %w", err)
	}
	return nil
}
