package source

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/tsawler/reflow/text"
)

// textContentItem is one positioned run as dumped by a browser-side text
// extraction layer. Transform is the 2x3 matrix [a b c d e f].
type textContentItem struct {
	Str       string    `json:"str"`
	Transform []float64 `json:"transform"`
	Width     float64   `json:"width"`
	FontName  string    `json:"fontName"`
}

type textContentPage struct {
	Items []textContentItem `json:"items"`
}

type textContentDocument struct {
	Pages []textContentPage `json:"pages"`
}

// ReadTextContent decodes a JSON text-content dump into a Static source.
//
// The expected shape is {"pages": [{"items": [{"str": "...", "transform":
// [a, b, c, d, e, f]}]}]}. Items without a complete transform are kept with
// non-finite coordinates so that reconstruction discards them.
func ReadTextContent(name string, r io.Reader) (*Static, error) {
	var doc textContentDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode text content %s: %w", name, err)
	}

	pages := make([][]text.TextFragment, len(doc.Pages))
	for i, p := range doc.Pages {
		frags := make([]text.TextFragment, 0, len(p.Items))
		for _, item := range p.Items {
			frags = append(frags, item.fragment())
		}
		pages[i] = frags
	}
	return NewStatic(name, pages...), nil
}

func (item textContentItem) fragment() text.TextFragment {
	f := text.TextFragment{
		Text:     text.Normalize(item.Str),
		Width:    item.Width,
		FontName: item.FontName,
		X:        math.NaN(),
		Y:        math.NaN(),
	}
	if len(item.Transform) == 6 {
		f.ScaleX = item.Transform[0]
		f.ScaleY = item.Transform[3]
		f.X = item.Transform[4]
		f.Y = item.Transform[5]
	}
	return f
}
