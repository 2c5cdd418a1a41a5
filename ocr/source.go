package ocr

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/tsawler/reflow/imaging"
	"github.com/tsawler/reflow/source"
	"github.com/tsawler/reflow/text"
)

// SourceOptions configures an image source
type SourceOptions struct {
	// Language is the Tesseract language list, e.g. "eng" or "eng+deu"
	Language string

	// MinHeight is the pixel height below which images are upscaled
	MinHeight int

	// MinConfidence drops words recognized with lower confidence (0-100)
	MinConfidence float64

	// PageSegMode is the Tesseract layout analysis mode. Zero keeps the
	// engine default; PSM_OSD_ONLY recognizes no words and cannot be set.
	PageSegMode PageSegMode
}

// DefaultSourceOptions returns sensible defaults for scanned pages
func DefaultSourceOptions() SourceOptions {
	return SourceOptions{
		Language:      "eng",
		MinHeight:     imaging.DefaultMinHeight,
		MinConfidence: 30,
		PageSegMode:   PSM_AUTO,
	}
}

// validate checks the options before the engine is started
func (o SourceOptions) validate() error {
	if !o.PageSegMode.Valid() {
		return fmt.Errorf("invalid page segmentation mode %d", o.PageSegMode)
	}
	return nil
}

// Source treats each image as one page and recognizes its words
type Source struct {
	name   string
	images [][]byte
	opts   SourceOptions

	mu     sync.Mutex
	client *Client
}

var _ source.Source = (*Source)(nil)

// NewSource creates an image source. It fails with ErrOCRNotEnabled when
// built without the ocr tag.
func NewSource(name string, opts SourceOptions, images ...[]byte) (*Source, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	client, err := New()
	if err != nil {
		return nil, err
	}
	if opts.PageSegMode != PSM_OSD_ONLY {
		if err := client.SetPageSegMode(opts.PageSegMode); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to set page segmentation mode %d: %w", opts.PageSegMode, err)
		}
	}
	if opts.Language != "" {
		if err := client.SetLanguage(opts.Language); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to set OCR language %q: %w", opts.Language, err)
		}
	}
	return &Source{name: name, images: images, opts: opts, client: client}, nil
}

// Name returns the source name
func (s *Source) Name() string { return s.name }

// PageCount returns the number of images
func (s *Source) PageCount(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return len(s.images), nil
}

// PageFragments recognizes the words of one image
func (s *Source) PageFragments(ctx context.Context, page int) ([]text.TextFragment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if page < 1 || page > len(s.images) {
		return nil, fmt.Errorf("%w: page %d of %d", source.ErrPageOutOfRange, page, len(s.images))
	}

	prepared, err := imaging.PrepareForOCR(s.images[page-1], s.opts.MinHeight)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", page, err)
	}

	s.mu.Lock()
	hocr, err := s.client.RecognizeHOCR(prepared)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", page, err)
	}

	pages, err := ParseHOCR(strings.NewReader(hocr), ParseOptions{MinConfidence: s.opts.MinConfidence})
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", page, err)
	}

	var frags []text.TextFragment
	for _, p := range pages {
		frags = append(frags, p.Fragments...)
	}
	return frags, nil
}

// Close releases the OCR engine
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.client.Close()
}
