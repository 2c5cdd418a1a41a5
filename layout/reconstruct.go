package layout

import "github.com/tsawler/reflow/text"

// Result is the outcome of reconstructing one page
type Result struct {
	// Paragraphs in reading order, never empty
	Paragraphs []Paragraph

	// Rows is the number of rows found before paragraph clustering
	Rows int

	// Dropped is the number of fragments discarded for blank text or
	// unusable geometry
	Dropped int
}

// Reconstructor rebuilds paragraphs from a page's text fragments
type Reconstructor struct {
	config Config
}

// NewReconstructor creates a reconstructor with default configuration
func NewReconstructor() *Reconstructor {
	return &Reconstructor{
		config: DefaultConfig(),
	}
}

// NewReconstructorWithConfig creates a reconstructor with custom configuration.
// Non-positive or non-finite thresholds are replaced by their defaults.
func NewReconstructorWithConfig(config Config) *Reconstructor {
	return &Reconstructor{
		config: config.normalized(),
	}
}

// Config returns the thresholds in use
func (r *Reconstructor) Config() Config {
	return r.config
}

// Reconstruct groups fragments into rows and rows into paragraphs
func (r *Reconstructor) Reconstruct(fragments []text.TextFragment) []Paragraph {
	return r.ReconstructWithStats(fragments).Paragraphs
}

// ReconstructWithStats is Reconstruct with counts of rows and dropped fragments
func (r *Reconstructor) ReconstructWithStats(fragments []text.TextFragment) *Result {
	usable, dropped := text.Usable(fragments)

	// Step 1: Group fragments into rows by baseline proximity
	rows := groupIntoRows(usable, r.config.RowTolerance)

	// Step 2: Group rows into paragraphs by vertical gap
	paragraphs := groupIntoParagraphs(rows, r.config.ParagraphGap)

	return &Result{
		Paragraphs: paragraphs,
		Rows:       len(rows),
		Dropped:    dropped,
	}
}

// Reconstruct converts one page of fragments into paragraphs using config
func Reconstruct(fragments []text.TextFragment, config Config) []Paragraph {
	return NewReconstructorWithConfig(config).Reconstruct(fragments)
}
