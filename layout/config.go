package layout

import "math"

const (
	// DefaultRowTolerance is the baseline distance, as a fraction of the
	// effective font size, within which fragments share a row.
	DefaultRowTolerance = 0.5

	// DefaultParagraphGap is the row distance, as a multiple of the previous
	// row's height, beyond which a new paragraph starts.
	DefaultParagraphGap = 2.5
)

// Config holds the reconstruction thresholds
type Config struct {
	// RowTolerance is the Y-distance tolerance for grouping fragments into rows
	// as a fraction of the fragment's effective font size (default: 0.5)
	RowTolerance float64

	// ParagraphGap is the multiplier of the previous row height above which
	// the distance between two rows is a paragraph break (default: 2.5)
	ParagraphGap float64
}

// DefaultConfig returns the default reconstruction thresholds
func DefaultConfig() Config {
	return Config{
		RowTolerance: DefaultRowTolerance,
		ParagraphGap: DefaultParagraphGap,
	}
}

// normalized replaces unusable thresholds with their defaults.
func (c Config) normalized() Config {
	if !(c.RowTolerance > 0) || math.IsInf(c.RowTolerance, 0) {
		c.RowTolerance = DefaultRowTolerance
	}
	if !(c.ParagraphGap > 0) || math.IsInf(c.ParagraphGap, 0) {
		c.ParagraphGap = DefaultParagraphGap
	}
	return c
}
