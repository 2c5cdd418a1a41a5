// Package model holds the document aggregates assembled from reconstructed
// pages.
//
// A [Document] is an ordered list of [Page] values, one per source page, in
// the order the pages were processed. When several source documents are
// converted in one batch their pages are concatenated into a single
// Document; each page records the source it came from.
//
//	doc := model.NewDocument("Quarterly report")
//	doc.AddPage(model.NewPage("report.pdf", 1, paragraphs))
//
// Every page holds at least one paragraph. A page without extractable text
// carries a single empty paragraph so that writers can keep output
// page-aligned.
package model
