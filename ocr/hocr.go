package ocr

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/reflow/text"
)

// HOCRPage is one page of an hOCR document converted to text fragments.
// Fragment coordinates are in pixels with Y growing upward from the bottom
// edge of the page.
type HOCRPage struct {
	Width     float64
	Height    float64
	Fragments []text.TextFragment
}

// ParseOptions controls hOCR conversion
type ParseOptions struct {
	// MinConfidence drops words whose x_wconf is below it (0-100)
	MinConfidence float64
}

// bbox is an hOCR bounding box in image coordinates (Y grows downward)
type bbox struct {
	x0, y0, x1, y1 float64
}

// lineInfo carries the line-level properties words inherit
type lineInfo struct {
	box       bbox
	slope     float64
	offset    float64
	hasBase   bool
	xSize     float64
	hasBounds bool
}

// ParseHOCR converts an hOCR document into pages of word fragments
func ParseHOCR(r io.Reader, opts ParseOptions) ([]HOCRPage, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse hOCR: %w", err)
	}

	p := &hocrParser{opts: opts}
	p.traverse(doc, nil)
	p.closePage()
	return p.pages, nil
}

type hocrParser struct {
	opts  ParseOptions
	pages []HOCRPage
	page  *HOCRPage
}

func (p *hocrParser) traverse(n *html.Node, line *lineInfo) {
	if n.Type == html.ElementNode {
		classes := strings.Fields(attr(n, "class"))
		title := parseTitle(attr(n, "title"))

		switch {
		case hasClass(classes, "ocr_page"):
			p.closePage()
			p.page = &HOCRPage{}
			if b, ok := title.bbox(); ok {
				p.page.Width = b.x1 - b.x0
				p.page.Height = b.y1 - b.y0
			}

		case hasClass(classes, "ocrx_word"):
			p.addWord(n, title, line)
			return

		case isLineClass(classes):
			line = newLineInfo(title)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.traverse(c, line)
	}
}

func (p *hocrParser) closePage() {
	if p.page != nil {
		p.pages = append(p.pages, *p.page)
		p.page = nil
	}
}

func (p *hocrParser) addWord(n *html.Node, title hocrTitle, line *lineInfo) {
	if p.page == nil {
		// Words outside any ocr_page form an implicit page
		p.page = &HOCRPage{}
	}

	word := strings.TrimSpace(nodeText(n))
	if word == "" {
		return
	}
	box, ok := title.bbox()
	if !ok {
		return
	}
	if conf, ok := title.float("x_wconf"); ok && conf < p.opts.MinConfidence {
		return
	}

	baseline := box.y1
	size := box.y1 - box.y0
	if line != nil {
		if line.hasBase && line.hasBounds {
			baseline = line.box.y1 + line.offset + line.slope*(box.x0-line.box.x0)
		}
		if line.xSize > 0 {
			size = line.xSize
		}
	}

	p.page.Fragments = append(p.page.Fragments, text.TextFragment{
		Text:   text.Normalize(word),
		X:      box.x0,
		Y:      p.page.Height - baseline,
		ScaleX: size,
		ScaleY: size,
		Width:  box.x1 - box.x0,
	})
}

func newLineInfo(title hocrTitle) *lineInfo {
	info := &lineInfo{}
	if b, ok := title.bbox(); ok {
		info.box = b
		info.hasBounds = true
	}
	if vals := title["baseline"]; len(vals) == 2 {
		slope, err1 := strconv.ParseFloat(vals[0], 64)
		offset, err2 := strconv.ParseFloat(vals[1], 64)
		if err1 == nil && err2 == nil {
			info.slope, info.offset, info.hasBase = slope, offset, true
		}
	}
	if size, ok := title.float("x_size"); ok {
		info.xSize = size
	}
	return info
}

// hocrTitle holds the semicolon-separated properties of a title attribute
type hocrTitle map[string][]string

func parseTitle(s string) hocrTitle {
	t := hocrTitle{}
	for _, part := range strings.Split(s, ";") {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			continue
		}
		t[fields[0]] = fields[1:]
	}
	return t
}

func (t hocrTitle) bbox() (bbox, bool) {
	vals := t["bbox"]
	if len(vals) != 4 {
		return bbox{}, false
	}
	var nums [4]float64
	for i, v := range vals {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return bbox{}, false
		}
		nums[i] = f
	}
	return bbox{nums[0], nums[1], nums[2], nums[3]}, true
}

func (t hocrTitle) float(key string) (float64, bool) {
	vals := t[key]
	if len(vals) == 0 {
		return 0, false
	}
	f, err := strconv.ParseFloat(vals[0], 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func isLineClass(classes []string) bool {
	for _, c := range []string{"ocr_line", "ocr_textfloat", "ocr_header", "ocr_caption"} {
		if hasClass(classes, c) {
			return true
		}
	}
	return false
}

func hasClass(classes []string, name string) bool {
	for _, c := range classes {
		if c == name {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(nodeText(c))
	}
	return sb.String()
}
