// Package source provides the text-extraction side of a conversion: handles
// that yield positioned text fragments one page at a time.
//
// A [Source] is constructed explicitly and passed to the pipeline, so tests
// can substitute a [Static] source for a real document:
//
//	src := source.NewStatic("fixture", pageOne, pageTwo)
//
// [PDF] reads the embedded text layer of a PDF file:
//
//	src, err := source.OpenPDF("report.pdf")
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//	n, _ := src.PageCount(ctx)
//	frags, err := src.PageFragments(ctx, 1)
//
// Sources own all parsing and loading. A failure to open or decode a document
// is reported by the source before any of its pages are reconstructed.
package source
