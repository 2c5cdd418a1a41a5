package writer

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/tsawler/reflow/model"
)

// MarkdownWriter writes paragraphs as Markdown. The title becomes a level
// one heading and pages are separated by thematic breaks when page breaks
// are enabled.
type MarkdownWriter struct {
	opts Options
}

var (
	// markdownInline matches characters that start inline constructs
	markdownInline = regexp.MustCompile("([\\\\`*_\\[\\]<>#|~!&])")

	// markdownBlockStart matches line starts that would open a block
	markdownBlockStart = regexp.MustCompile(`^(\s*)([-+=]+|\d+[.)])(\s|$)`)
)

// Write writes the document as Markdown
func (mw *MarkdownWriter) Write(w io.Writer, doc *model.Document) error {
	bw := bufio.NewWriter(w)
	var blocks []string

	if title := strings.TrimSpace(doc.Metadata.Title); title != "" {
		blocks = append(blocks, "# "+escapeMarkdownLine(title))
	}

	for i, page := range doc.Pages {
		if i > 0 && mw.opts.PageBreaks {
			blocks = append(blocks, "---")
		}
		for _, p := range page.Paragraphs {
			if p.IsEmpty() {
				continue
			}
			lines := paragraphLines(p, mw.opts.PreserveLines)
			for j, line := range lines {
				lines[j] = escapeMarkdownLine(line)
			}
			// Two trailing spaces force a hard line break
			blocks = append(blocks, strings.Join(lines, "  \n"))
		}
	}

	bw.WriteString(strings.Join(blocks, "\n\n"))
	bw.WriteString("\n")

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write markdown: %w", err)
	}
	return nil
}

// escapeMarkdownLine escapes text so that it renders as a literal paragraph
func escapeMarkdownLine(s string) string {
	s = markdownInline.ReplaceAllString(s, `\$1`)
	if m := markdownBlockStart.FindStringSubmatchIndex(s); m != nil {
		// Escape the last character of the marker: "-" -> "\-", "1." -> "1\."
		pos := m[5] - 1
		s = s[:pos] + `\` + s[pos:]
	}
	return s
}
