package writer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/reflow/model"
)

// HTMLWriter writes the document as an HTML5 page with one section per
// source page and one p element per paragraph.
type HTMLWriter struct {
	opts Options
}

// Write renders the document as HTML
func (hw *HTMLWriter) Write(w io.Writer, doc *model.Document) error {
	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	htmlEl := element(atom.Html)
	root.AppendChild(htmlEl)

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, html.Attribute{Key: "charset", Val: "utf-8"}))
	title := element(atom.Title)
	title.AppendChild(textNode(doc.Metadata.Title))
	head.AppendChild(title)
	style := element(atom.Style)
	style.AppendChild(textNode(hw.stylesheet()))
	head.AppendChild(style)
	htmlEl.AppendChild(head)

	body := element(atom.Body)
	htmlEl.AppendChild(body)

	var container *html.Node
	for _, page := range doc.Pages {
		if container == nil || hw.opts.PageBreaks {
			container = element(atom.Section,
				html.Attribute{Key: "class", Val: "page"},
				html.Attribute{Key: "data-page", Val: strconv.Itoa(page.Index)},
			)
			body.AppendChild(container)
		}
		for _, p := range page.Paragraphs {
			container.AppendChild(hw.paragraph(paragraphLines(p, hw.opts.PreserveLines)))
		}
	}

	if err := html.Render(w, root); err != nil {
		return fmt.Errorf("failed to render HTML: %w", err)
	}
	return nil
}

func (hw *HTMLWriter) paragraph(lines []string) *html.Node {
	p := element(atom.P)
	for i, line := range lines {
		if i > 0 {
			p.AppendChild(element(atom.Br))
		}
		p.AppendChild(textNode(line))
	}
	return p
}

func (hw *HTMLWriter) stylesheet() string {
	align := "left"
	if hw.opts.Justify {
		align = "justify"
	}
	family := strings.NewReplacer(";", "", "{", "", "}", "", "<", "").Replace(hw.opts.FontFamily)
	return fmt.Sprintf("body{font-family:%s;font-size:%spt;text-align:%s}section.page{page-break-after:always}",
		family, strconv.FormatFloat(hw.opts.FontSize, 'f', -1, 64), align)
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
