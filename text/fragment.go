package text

import (
	"math"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultFontSize is the effective font size used when a fragment carries no
// usable scale information.
const DefaultFontSize = 10.0

// TextFragment represents a piece of extracted text with position
type TextFragment struct {
	Text string

	// X, Y is the baseline origin in page space (Y increases upward)
	X, Y float64

	// ScaleX, ScaleY are the horizontal and vertical scale components of the
	// fragment's text transform
	ScaleX, ScaleY float64

	// Width is the advance width of the run, 0 when unknown
	Width float64

	// FontName is informational only
	FontName string
}

// FontSize returns the effective font size of the fragment, the larger of the
// absolute scale components. It returns DefaultFontSize when both are zero or
// not finite.
func (f TextFragment) FontSize() float64 {
	sx, sy := math.Abs(f.ScaleX), math.Abs(f.ScaleY)
	if !isFinite(sx) {
		sx = 0
	}
	if !isFinite(sy) {
		sy = 0
	}
	size := math.Max(sx, sy)
	if size == 0 {
		return DefaultFontSize
	}
	return size
}

// Valid reports whether the fragment's geometry can take part in clustering:
// finite coordinates and a positive, finite effective font size.
func (f TextFragment) Valid() bool {
	if !isFinite(f.X) || !isFinite(f.Y) {
		return false
	}
	size := f.FontSize()
	return size > 0 && isFinite(size)
}

// IsBlank reports whether the fragment has no readable text.
func (f TextFragment) IsBlank() bool {
	return strings.TrimSpace(f.Text) == ""
}

// Usable returns the fragments that carry text and valid geometry, in their
// original order, along with the number of fragments dropped. The input slice
// is not modified.
func Usable(fragments []TextFragment) ([]TextFragment, int) {
	out := make([]TextFragment, 0, len(fragments))
	for _, f := range fragments {
		if f.IsBlank() || !f.Valid() {
			continue
		}
		out = append(out, f)
	}
	return out, len(fragments) - len(out)
}

// Normalize returns s in Unicode normalization form C.
func Normalize(s string) string {
	if norm.NFC.IsNormalString(s) {
		return s
	}
	return norm.NFC.String(s)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
