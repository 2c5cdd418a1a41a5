package source

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/reflow/text"
)

// advanceRatio is the estimated glyph advance, as a fraction of font size,
// for fonts that carry no width table.
const advanceRatio = 0.5

// runGapRatio is the horizontal gap, as a fraction of font size, above which
// two glyphs on the same baseline belong to different runs.
const runGapRatio = 0.15

// PDF reads text fragments from the text layer of a PDF document
type PDF struct {
	name   string
	file   *os.File
	reader *pdf.Reader
}

// OpenPDF opens a PDF file. The returned source must be closed.
func OpenPDF(path string) (*PDF, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF %s: %w", path, err)
	}
	return &PDF{name: filepath.Base(path), file: f, reader: r}, nil
}

// NewPDF reads a PDF document from r. The caller keeps ownership of r.
func NewPDF(name string, r io.ReaderAt, size int64) (*PDF, error) {
	pr, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF %s: %w", name, err)
	}
	return &PDF{name: name, reader: pr}, nil
}

// Name returns the document name
func (p *PDF) Name() string { return p.name }

// PageCount returns the number of pages
func (p *PDF) PageCount(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return p.reader.NumPage(), nil
}

// PageFragments returns the glyph runs of one page
func (p *PDF) PageFragments(ctx context.Context, page int) (frags []text.TextFragment, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkPage(page, p.reader.NumPage()); err != nil {
		return nil, err
	}

	// The reader panics on malformed page trees and content streams
	defer func() {
		if r := recover(); r != nil {
			frags = nil
			err = fmt.Errorf("failed to parse content of page %d: %v", page, r)
		}
	}()

	pg := p.reader.Page(page)
	if pg.V.IsNull() {
		return nil, nil
	}

	return mergeGlyphs(estimateAdvances(pg.Content().Text)), nil
}

// Close releases the underlying file if the source opened it
func (p *PDF) Close() error {
	if p.file != nil {
		err := p.file.Close()
		p.file = nil
		return err
	}
	return nil
}

// mergeGlyphs joins per-glyph text records into runs: consecutive glyphs
// with the same font and baseline that touch horizontally. Whitespace glyphs
// end a run.
func mergeGlyphs(glyphs []pdf.Text) []text.TextFragment {
	var out []text.TextFragment
	var run strings.Builder
	var cur pdf.Text
	var end float64
	open := false

	flush := func() {
		if open && strings.TrimSpace(run.String()) != "" {
			out = append(out, text.TextFragment{
				Text:     text.Normalize(run.String()),
				X:        cur.X,
				Y:        cur.Y,
				ScaleX:   cur.FontSize,
				ScaleY:   cur.FontSize,
				Width:    end - cur.X,
				FontName: cur.Font,
			})
		}
		run.Reset()
		open = false
	}

	for _, g := range glyphs {
		if strings.TrimSpace(g.S) == "" {
			flush()
			continue
		}

		if open && continuesRun(cur, end, g) {
			run.WriteString(g.S)
			end = g.X + g.W
			continue
		}

		flush()
		cur = g
		end = g.X + g.W
		run.WriteString(g.S)
		open = true
	}
	flush()

	return out
}

// estimateAdvances fills in positions for glyphs reported with zero width.
// Core fonts without a /Widths array leave the pen where the text object
// started, so every glyph of a line shares one X. Such glyphs are laid out
// from a running pen position instead.
func estimateAdvances(glyphs []pdf.Text) []pdf.Text {
	out := make([]pdf.Text, len(glyphs))
	var prevRaw pdf.Text
	var pen float64
	havePrev := false

	for i, g := range glyphs {
		raw := g
		if g.W == 0 {
			adv := g.FontSize * advanceRatio * float64(utf8.RuneCountInString(g.S))
			stalled := havePrev && prevRaw.W == 0 &&
				math.Abs(g.Y-prevRaw.Y) <= 0.01 &&
				math.Abs(g.X-prevRaw.X) <= g.FontSize*advanceRatio
			if stalled {
				g.X = pen
			}
			g.W = adv
			pen = g.X + adv
		}
		out[i] = g
		prevRaw = raw
		havePrev = true
	}
	return out
}

func continuesRun(start pdf.Text, end float64, g pdf.Text) bool {
	if g.Font != start.Font || g.FontSize != start.FontSize {
		return false
	}
	if math.Abs(g.Y-start.Y) > 0.01 {
		return false
	}
	gap := g.X - end
	tol := start.FontSize * runGapRatio
	return gap <= tol && gap >= -tol
}
