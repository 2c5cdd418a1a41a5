// Package reflow rebuilds readable paragraphs from positioned text
// fragments and writes them out as plain text, Markdown, HTML, DOCX or PDF.
//
// Basic usage:
//
//	text, warnings, err := reflow.Open("document.pdf").Text(ctx)
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", reflow.FormatWarnings(warnings))
//	}
//
// With options:
//
//	err := reflow.Open("scan.png").
//	    OCRLanguage("eng+deu").
//	    Timeout(time.Minute).
//	    Justify().
//	    Save(ctx, "scan.docx")
//
// The convert, layout and writer packages are available for lower-level use.
package reflow

import (
	"github.com/tsawler/reflow/convert"
	"github.com/tsawler/reflow/source"
)

// Warning is a non-fatal condition met during conversion
type Warning = convert.Warning

// FormatWarnings joins warnings into one message per line
func FormatWarnings(warnings []Warning) string {
	return convert.FormatWarnings(warnings)
}

// Open returns an Extractor for the file at filename. The format is detected
// from the extension, falling back to the file contents. The file is opened
// lazily and closed by terminal operations such as Text.
//
// Example:
//
//	text, warnings, err := reflow.Open("document.pdf").Text(ctx)
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromSource creates an Extractor from an already opened source.
// The caller is responsible for closing it.
//
// Example:
//
//	src, err := source.OpenPDF("document.pdf")
//	if err != nil {
//	    // handle error
//	}
//	defer src.Close()
//	text, warnings, err := reflow.FromSource(src).Text(ctx)
func FromSource(src source.Source) *Extractor {
	return &Extractor{
		src:     src,
		opened:  true,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := reflow.Must(reflow.Open("document.pdf").PageCount(ctx))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustText is a helper that wraps a call to Text or Document and panics
// if the error is non-nil. It discards warnings and returns just the value.
//
// Example:
//
//	text := reflow.MustText(reflow.Open("document.pdf").Text(ctx))
func MustText[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
