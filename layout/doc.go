// Package layout reconstructs document structure from positioned text.
//
// Extraction layers emit text as geometry only: runs of glyphs with a
// baseline origin and a transform, in no particular order. This package
// recovers the reading structure of one page from that geometry.
//
// # Reconstruction
//
// [Reconstruct] turns a page's fragments into paragraphs in two passes:
//
//   - Row clustering - fragments are walked top to bottom and grouped into
//     rows while consecutive baselines stay within RowTolerance times the
//     fragment's effective font size. Each row is ordered left to right.
//   - Paragraph clustering - rows are grouped into paragraphs while the
//     vertical distance between consecutive rows stays within ParagraphGap
//     times the previous row's height.
//
// Usage:
//
//	paragraphs := layout.Reconstruct(fragments, layout.DefaultConfig())
//	for _, p := range paragraphs {
//	    fmt.Println(p.Text)
//	}
//
// The result always holds at least one paragraph. A page without usable text
// yields a single empty paragraph so that callers stay page-aligned.
//
// # Configuration
//
// Both thresholds are exposed for tuning:
//
//	config := layout.DefaultConfig()
//	config.RowTolerance = 0.4
//	config.ParagraphGap = 2.0
//	r := layout.NewReconstructorWithConfig(config)
//
// # Concurrency
//
// Reconstruction is a pure function of its input. A [Reconstructor] holds
// only its configuration and may be shared by goroutines working on
// different pages.
package layout
