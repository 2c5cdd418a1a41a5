// Package text defines the positioned text fragments consumed by layout
// reconstruction.
//
// A [TextFragment] is one run of glyphs as emitted by a text-extraction
// layer: the string, its baseline origin (X, Y) in page space with Y growing
// upward, and the horizontal and vertical scale of its text transform.
//
// # Effective Font Size
//
// Extraction layers rarely report a trustworthy font size. The effective size
// is derived from the transform instead:
//
//	size := frag.FontSize() // max(|ScaleX|, |ScaleY|), or DefaultFontSize
//
// # Validation
//
// Fragments with non-finite coordinates or a non-positive effective size
// cannot take part in tolerance comparisons. [TextFragment.Valid] reports
// whether a fragment is usable, and [Usable] filters a slice down to the
// fragments that carry readable text and sound geometry.
//
// # Normalization
//
// [Normalize] converts fragment text to Unicode NFC so that composed and
// decomposed forms of the same glyph run compare and join identically.
package text
