package writer

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/tsawler/reflow/model"
)

// XML namespaces used in DOCX files
const (
	nsW       = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsDC      = "http://purl.org/dc/elements/1.1/"
	nsCP      = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	nsDCTerms = "http://purl.org/dc/terms/"
	nsXSI     = "http://www.w3.org/2001/XMLSchema-instance"
	nsPkgRels = "http://schemas.openxmlformats.org/package/2006/relationships"
)

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>
<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>
</Types>`

const packageRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="` + nsPkgRels + `">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>
</Relationships>`

const documentRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="` + nsPkgRels + `">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
</Relationships>`

// DOCXWriter writes the document as a WordprocessingML package
type DOCXWriter struct {
	opts Options
}

// Write assembles the DOCX package
func (dw *DOCXWriter) Write(w io.Writer, doc *model.Document) error {
	zw := zip.NewWriter(w)

	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(packageRelsXML)},
		{"word/_rels/document.xml.rels", []byte(documentRelsXML)},
		{"word/document.xml", dw.documentXML(doc)},
		{"word/styles.xml", dw.stylesXML()},
		{"docProps/core.xml", dw.coreXML(doc)},
	}

	for _, part := range parts {
		f, err := zw.Create(part.name)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", part.name, err)
		}
		if _, err := f.Write(part.data); err != nil {
			return fmt.Errorf("failed to write %s: %w", part.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish DOCX: %w", err)
	}
	return nil
}

// documentXML builds word/document.xml: one w:p per paragraph, a page break
// paragraph between source pages.
func (dw *DOCXWriter) documentXML(doc *model.Document) []byte {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	fmt.Fprintf(&buf, `<w:document xmlns:w="%s" xmlns:r="%s"><w:body>`, nsW, nsR)

	for i, page := range doc.Pages {
		if i > 0 && dw.opts.PageBreaks {
			buf.WriteString(`<w:p><w:r><w:br w:type="page"/></w:r></w:p>`)
		}
		for _, p := range page.Paragraphs {
			buf.WriteString(`<w:p>`)
			if dw.opts.Justify {
				buf.WriteString(`<w:pPr><w:jc w:val="both"/></w:pPr>`)
			}
			if !p.IsEmpty() {
				buf.WriteString(`<w:r>`)
				for j, line := range paragraphLines(p, dw.opts.PreserveLines) {
					if j > 0 {
						buf.WriteString(`<w:br/>`)
					}
					buf.WriteString(`<w:t xml:space="preserve">`)
					escapeXML(&buf, line)
					buf.WriteString(`</w:t>`)
				}
				buf.WriteString(`</w:r>`)
			}
			buf.WriteString(`</w:p>`)
		}
	}

	buf.WriteString(`<w:sectPr><w:pgSz w:w="11906" w:h="16838"/>` +
		`<w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440" w:header="708" w:footer="708" w:gutter="0"/>` +
		`</w:sectPr></w:body></w:document>`)
	return buf.Bytes()
}

// stylesXML sets the default run font and size. Sizes are in half-points.
func (dw *DOCXWriter) stylesXML() []byte {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	fmt.Fprintf(&buf, `<w:styles xmlns:w="%s"><w:docDefaults><w:rPrDefault><w:rPr>`, nsW)
	buf.WriteString(`<w:rFonts w:ascii="`)
	escapeXML(&buf, dw.opts.FontFamily)
	buf.WriteString(`" w:hAnsi="`)
	escapeXML(&buf, dw.opts.FontFamily)
	buf.WriteString(`" w:cs="`)
	escapeXML(&buf, dw.opts.FontFamily)
	halfPoints := int(math.Round(dw.opts.FontSize * 2))
	fmt.Fprintf(&buf, `"/><w:sz w:val="%d"/><w:szCs w:val="%d"/>`, halfPoints, halfPoints)
	buf.WriteString(`</w:rPr></w:rPrDefault><w:pPrDefault><w:pPr><w:spacing w:after="160" w:line="259" w:lineRule="auto"/></w:pPr></w:pPrDefault></w:docDefaults>`)
	buf.WriteString(`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style></w:styles>`)
	return buf.Bytes()
}

// coreXML carries the document title
func (dw *DOCXWriter) coreXML(doc *model.Document) []byte {
	created := doc.Metadata.Created
	if created.IsZero() {
		created = time.Now()
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	fmt.Fprintf(&buf, `<cp:coreProperties xmlns:cp="%s" xmlns:dc="%s" xmlns:dcterms="%s" xmlns:xsi="%s">`,
		nsCP, nsDC, nsDCTerms, nsXSI)
	buf.WriteString(`<dc:title>`)
	escapeXML(&buf, doc.Metadata.Title)
	buf.WriteString(`</dc:title><dc:creator>reflow</dc:creator>`)
	fmt.Fprintf(&buf, `<dcterms:created xsi:type="dcterms:W3CDTF">%s</dcterms:created>`,
		created.UTC().Format(time.RFC3339))
	buf.WriteString(`</cp:coreProperties>`)
	return buf.Bytes()
}

func escapeXML(buf *bytes.Buffer, s string) {
	// EscapeText only fails on writer errors; bytes.Buffer never returns one
	_ = xml.EscapeText(buf, []byte(s))
}
