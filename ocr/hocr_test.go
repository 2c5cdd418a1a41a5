package ocr

import (
	"math"
	"strings"
	"testing"
)

const sampleHOCR = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Transitional//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-transitional.dtd">
<html xmlns="http://www.w3.org/1999/xhtml" xml:lang="en" lang="en">
 <head><title></title></head>
 <body>
  <div class='ocr_page' id='page_1' title='image "unknown"; bbox 0 0 1000 800; ppageno 0'>
   <div class='ocr_carea' id='block_1_1' title="bbox 50 100 600 200">
    <p class='ocr_par' id='par_1_1' lang='eng' title="bbox 50 100 600 200">
     <span class='ocr_line' id='line_1_1' title="bbox 50 100 600 130; baseline 0 -6; x_size 30; x_descenders 6; x_ascenders 7">
      <span class='ocrx_word' id='word_1_1' title='bbox 50 100 150 124; x_wconf 95'>Hello</span>
      <span class='ocrx_word' id='word_1_2' title='bbox 170 100 300 124; x_wconf 91'><strong>World</strong></span>
      <span class='ocrx_word' id='word_1_3' title='bbox 320 100 340 124; x_wconf 12'>~</span>
     </span>
     <span class='ocr_line' id='line_1_2' title="bbox 50 140 400 170; baseline 0.01 -5; x_size 28">
      <span class='ocrx_word' id='word_1_4' title='bbox 50 140 120 165; x_wconf 88'>again</span>
     </span>
    </p>
   </div>
  </div>
 </body>
</html>`

func TestParseHOCR(t *testing.T) {
	pages, err := ParseHOCR(strings.NewReader(sampleHOCR), ParseOptions{MinConfidence: 30})
	if err != nil {
		t.Fatalf("ParseHOCR error: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("Expected 1 page, got %d", len(pages))
	}

	page := pages[0]
	if page.Width != 1000 || page.Height != 800 {
		t.Errorf("Expected 1000x800 page, got %vx%v", page.Width, page.Height)
	}

	var words []string
	for _, f := range page.Fragments {
		words = append(words, f.Text)
	}
	if strings.Join(words, " ") != "Hello World again" {
		t.Fatalf("Unexpected words: %v", words)
	}

	hello := page.Fragments[0]
	// baseline = line bottom (130) + offset (-6) = 124, flipped: 800 - 124
	if hello.Y != 676 {
		t.Errorf("Expected Y 676, got %v", hello.Y)
	}
	if hello.X != 50 || hello.Width != 100 {
		t.Errorf("Unexpected X/Width: %v/%v", hello.X, hello.Width)
	}
	if hello.FontSize() != 30 {
		t.Errorf("Expected font size from x_size (30), got %v", hello.FontSize())
	}

	again := page.Fragments[2]
	// baseline = 170 - 5 + 0.01*(50-50) = 165
	if math.Abs(again.Y-635) > 1e-9 {
		t.Errorf("Expected Y 635, got %v", again.Y)
	}
	if again.FontSize() != 28 {
		t.Errorf("Expected font size 28, got %v", again.FontSize())
	}
}

func TestParseHOCR_NoConfidenceFilter(t *testing.T) {
	pages, err := ParseHOCR(strings.NewReader(sampleHOCR), ParseOptions{})
	if err != nil {
		t.Fatalf("ParseHOCR error: %v", err)
	}
	if got := len(pages[0].Fragments); got != 4 {
		t.Errorf("Expected 4 words without filtering, got %d", got)
	}
}

func TestParseHOCR_WordWithoutLine(t *testing.T) {
	doc := `<div class='ocr_page' title='bbox 0 0 200 100'>
<span class='ocrx_word' title='bbox 10 20 60 40'>solo</span></div>`

	pages, err := ParseHOCR(strings.NewReader(doc), ParseOptions{})
	if err != nil {
		t.Fatalf("ParseHOCR error: %v", err)
	}
	if len(pages) != 1 || len(pages[0].Fragments) != 1 {
		t.Fatalf("Unexpected pages: %+v", pages)
	}
	f := pages[0].Fragments[0]
	if f.Y != 60 || f.FontSize() != 20 {
		t.Errorf("Expected bbox-derived geometry (Y 60, size 20), got Y %v size %v", f.Y, f.FontSize())
	}
}

func TestParseHOCR_Empty(t *testing.T) {
	pages, err := ParseHOCR(strings.NewReader("<html><body></body></html>"), ParseOptions{})
	if err != nil {
		t.Fatalf("ParseHOCR error: %v", err)
	}
	if len(pages) != 0 {
		t.Errorf("Expected no pages, got %d", len(pages))
	}
}

func TestParseTitle(t *testing.T) {
	title := parseTitle(`bbox 1 2 3 4; baseline 0.5 -3; x_size 12.5`)

	b, ok := title.bbox()
	if !ok || b != (bbox{1, 2, 3, 4}) {
		t.Errorf("bbox() = %v, %v", b, ok)
	}
	if size, ok := title.float("x_size"); !ok || size != 12.5 {
		t.Errorf("float(x_size) = %v, %v", size, ok)
	}
	if _, ok := title.float("missing"); ok {
		t.Error("Expected missing key to report false")
	}
}
