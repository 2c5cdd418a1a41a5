package reflow

import (
	"log/slog"
	"time"

	"github.com/tsawler/reflow/config"
	"github.com/tsawler/reflow/convert"
	"github.com/tsawler/reflow/layout"
	"github.com/tsawler/reflow/ocr"
	"github.com/tsawler/reflow/writer"
)

// ExtractOptions holds configuration for a conversion.
type ExtractOptions struct {
	// Page selection (1-indexed)
	pages []int

	// Reconstruction
	layout layout.Config
	mode   layout.Mode

	// Pipeline
	timeout     time.Duration
	concurrency int
	logger      *slog.Logger

	// Scanned images
	ocr ocr.SourceOptions

	// Output
	writer writer.Options
}

// defaultOptions returns the default conversion options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		pages:       nil, // nil means all pages
		layout:      layout.DefaultConfig(),
		mode:        layout.ModeFlow,
		timeout:     convert.DefaultTimeout,
		concurrency: 1,
		ocr:         ocr.DefaultSourceOptions(),
		writer:      writer.DefaultOptions(),
	}
}

// optionsFromConfig converts loaded settings into options.
func optionsFromConfig(cfg config.Config) ExtractOptions {
	opts := defaultOptions()
	opts.layout = cfg.Layout
	opts.mode = cfg.Mode
	opts.timeout = cfg.Timeout
	opts.concurrency = cfg.Concurrency
	if cfg.OCRLanguage != "" {
		opts.ocr.Language = cfg.OCRLanguage
	}
	opts.ocr.PageSegMode = cfg.OCRPageSeg
	opts.writer = cfg.Writer
	return opts
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := o
	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}
	return newOpts
}

// converter builds a pipeline from the options.
func (o ExtractOptions) converter() *convert.Converter {
	opts := []convert.Option{
		convert.WithLayoutConfig(o.layout),
		convert.WithMode(o.mode),
		convert.WithTimeout(o.timeout),
		convert.WithConcurrency(o.concurrency),
		convert.WithLogger(o.logger),
	}
	if len(o.pages) > 0 {
		opts = append(opts, convert.WithPages(o.pages...))
	}
	return convert.New(opts...)
}
