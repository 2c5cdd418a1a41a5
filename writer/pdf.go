package writer

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/tsawler/reflow/model"
)

// lineHeightRatio is the PDF line height as a multiple of the font size
const lineHeightRatio = 1.35

// PDFWriter writes the document as a PDF using the core fonts. Text outside
// the cp1252 code page is transliterated by the font translator.
type PDFWriter struct {
	opts Options
}

// Write renders the document as PDF
func (pw *PDFWriter) Write(w io.Writer, doc *model.Document) error {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetTitle(doc.Metadata.Title, true)
	pdf.SetCreator("reflow", true)
	if !doc.Metadata.Created.IsZero() {
		pdf.SetCreationDate(doc.Metadata.Created)
	}
	pdf.SetMargins(72, 72, 72)
	pdf.SetAutoPageBreak(true, 72)
	pdf.SetFont(coreFontFamily(pw.opts.FontFamily), "", pw.opts.FontSize)

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	align := "L"
	if pw.opts.Justify {
		align = "J"
	}
	lineHeight := pw.opts.FontSize * lineHeightRatio

	pdf.AddPage()
	for i, page := range doc.Pages {
		if i > 0 && pw.opts.PageBreaks {
			pdf.AddPage()
		}
		for _, p := range page.Paragraphs {
			if p.IsEmpty() {
				continue
			}
			text := strings.Join(paragraphLines(p, pw.opts.PreserveLines), "\n")
			pdf.MultiCell(0, lineHeight, tr(text), "", align, false)
			pdf.Ln(lineHeight / 2)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

// coreFontFamily maps a font family to one of the PDF core fonts
func coreFontFamily(family string) string {
	switch strings.ToLower(strings.TrimSpace(family)) {
	case "times", "times new roman", "serif":
		return "Times"
	case "courier", "courier new", "monospace":
		return "Courier"
	default:
		return "Helvetica"
	}
}
