// integration.go joins several input files into one document
package reflow

import (
	"context"
	"errors"

	"github.com/tsawler/reflow/config"
	"github.com/tsawler/reflow/convert"
	"github.com/tsawler/reflow/layout"
	"github.com/tsawler/reflow/model"
	"github.com/tsawler/reflow/source"
	"github.com/tsawler/reflow/text"
)

// ConvertFiles converts the given files, in order, into a single document
// titled title. Each file gets its own deadline from the default settings.
//
// Example:
//
//	doc, warnings, err := reflow.ConvertFiles(ctx, "Scans", "p1.png", "p2.png")
//	if reflow.IsIncomplete(err) {
//	    // doc holds the pages finished before the deadline
//	}
func ConvertFiles(ctx context.Context, title string, paths ...string) (*model.Document, []Warning, error) {
	return ConvertFilesWithConfig(ctx, config.Default(), title, paths...)
}

// ConvertFilesWithConfig converts files with custom settings
func ConvertFilesWithConfig(ctx context.Context, cfg config.Config, title string, paths ...string) (*model.Document, []Warning, error) {
	opts := optionsFromConfig(cfg)

	sources := make([]source.Source, 0, len(paths))
	defer func() { _ = closeAll(sources) }()

	for _, path := range paths {
		src, _, err := openSource(path, opts.ocr)
		if err != nil {
			return nil, nil, &convert.Error{Source: path, Err: err}
		}
		sources = append(sources, src)
	}

	return opts.converter().Convert(ctx, title, sources...)
}

// PopulatePage reconstructs fragments and appends them to doc as a page
func PopulatePage(doc *model.Document, name string, fragments []text.TextFragment) *model.Page {
	return PopulatePageWithConfig(doc, name, fragments, layout.DefaultConfig())
}

// PopulatePageWithConfig reconstructs fragments with custom thresholds
func PopulatePageWithConfig(doc *model.Document, name string, fragments []text.TextFragment, cfg layout.Config) *model.Page {
	conv := convert.New(convert.WithLayoutConfig(cfg))
	page := conv.ConvertPage(name, len(doc.Pages)+1, fragments)
	doc.AddPage(page)
	return page
}

// closeAll closes every source, returning the joined errors
func closeAll(sources []source.Source) error {
	var errs []error
	for _, src := range sources {
		if err := src.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
