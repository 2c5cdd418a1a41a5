// Package convert drives reconstruction across the pages of one or more
// source documents.
//
// A [Converter] pulls fragments from each [source.Source] page by page,
// rebuilds paragraphs with the layout package and assembles a
// [model.Document]:
//
//	conv := convert.New(
//	    convert.WithTimeout(30*time.Second),
//	    convert.WithProgress(func(p convert.Progress) {
//	        fmt.Printf("%s: page %d of %d\n", p.Source, p.Done, p.Pages)
//	    }),
//	)
//	doc, warnings, err := conv.Convert(ctx, "Report", src)
//
// Each source document gets its own deadline. When the deadline passes or
// ctx is cancelled, Convert returns the pages completed so far together with
// an error wrapping [ErrIncomplete], so partial results can still be shown.
//
// Extraction failures are reported as [*Error] values naming the source and
// page. Pages of earlier sources are kept.
//
// For callers that need to abandon a conversion from elsewhere, [Start] runs
// Convert as a [Task] that can be cancelled and waited on.
package convert
