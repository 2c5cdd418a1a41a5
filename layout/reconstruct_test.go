package layout

import (
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/tsawler/reflow/text"
)

// makeFragment creates a test text fragment with a uniform scale
func makeFragment(txt string, x, y, size float64) text.TextFragment {
	return text.TextFragment{
		Text:   txt,
		X:      x,
		Y:      y,
		ScaleX: size,
		ScaleY: size,
	}
}

func paragraphTexts(paragraphs []Paragraph) []string {
	out := make([]string, len(paragraphs))
	for i, p := range paragraphs {
		out[i] = p.Text
	}
	return out
}

func TestReconstruct_EmptyFragments(t *testing.T) {
	paragraphs := Reconstruct(nil, DefaultConfig())

	if paragraphs == nil {
		t.Fatal("Expected non-nil paragraphs")
	}
	if len(paragraphs) != 1 {
		t.Fatalf("Expected 1 placeholder paragraph, got %d", len(paragraphs))
	}
	if !paragraphs[0].IsEmpty() || len(paragraphs[0].Lines) != 0 {
		t.Errorf("Expected empty placeholder, got %+v", paragraphs[0])
	}
}

func TestReconstruct_WhitespaceOnly(t *testing.T) {
	fragments := []text.TextFragment{
		makeFragment("   ", 0, 100, 10),
		makeFragment("\t\n", 40, 80, 10),
		makeFragment("", 80, 60, 10),
	}

	result := NewReconstructor().ReconstructWithStats(fragments)

	if len(result.Paragraphs) != 1 || !result.Paragraphs[0].IsEmpty() {
		t.Fatalf("Expected single empty paragraph, got %+v", result.Paragraphs)
	}
	if len(result.Paragraphs[0].Lines) != 0 {
		t.Errorf("Expected no lines, got %d", len(result.Paragraphs[0].Lines))
	}
	if result.Dropped != 3 {
		t.Errorf("Expected 3 dropped fragments, got %d", result.Dropped)
	}
	if result.Rows != 0 {
		t.Errorf("Expected 0 rows, got %d", result.Rows)
	}
}

func TestReconstruct_SingleRow(t *testing.T) {
	fragments := []text.TextFragment{
		makeFragment("Hello", 0, 100, 10),
		makeFragment("World", 50, 100, 10),
		makeFragment("!", 90, 101, 10),
	}

	paragraphs := Reconstruct(fragments, DefaultConfig())

	if len(paragraphs) != 1 {
		t.Fatalf("Expected 1 paragraph, got %d", len(paragraphs))
	}
	p := paragraphs[0]
	if len(p.Lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(p.Lines))
	}
	if p.Text != "Hello World !" {
		t.Errorf("Expected 'Hello World !', got '%s'", p.Text)
	}

	row := p.Lines[0]
	if row.Y != 101 {
		t.Errorf("Expected row Y from first assigned fragment (101), got %v", row.Y)
	}
	if row.Height != 10 {
		t.Errorf("Expected row height 10, got %v", row.Height)
	}
	if row.Left() != 0 {
		t.Errorf("Expected row to start at x=0, got %v", row.Left())
	}
}

func TestReconstruct_TwoParagraphs(t *testing.T) {
	fragments := []text.TextFragment{
		makeFragment("third", 0, 58, 10),
		makeFragment("first", 0, 100, 10),
		makeFragment("second", 0, 88, 10),
	}

	paragraphs := Reconstruct(fragments, DefaultConfig())

	want := []string{"first second", "third"}
	if got := paragraphTexts(paragraphs); !reflect.DeepEqual(got, want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	if len(paragraphs[0].Lines) != 2 {
		t.Errorf("Expected first paragraph to have 2 lines, got %d", len(paragraphs[0].Lines))
	}
	if len(paragraphs[1].Lines) != 1 {
		t.Errorf("Expected second paragraph to have 1 line, got %d", len(paragraphs[1].Lines))
	}
}

func TestReconstruct_RowThreshold(t *testing.T) {
	tests := []struct {
		name     string
		secondY  float64
		wantRows int
	}{
		{"well within tolerance", 98, 1},
		{"just inside tolerance", 100 - 10*0.5 + 1e-9, 1},
		{"exactly at tolerance", 95, 1},
		{"clearly beyond tolerance", 100 - 10*0.5 - 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fragments := []text.TextFragment{
				makeFragment("a", 0, 100, 10),
				makeFragment("b", 20, tt.secondY, 10),
			}
			result := NewReconstructor().ReconstructWithStats(fragments)
			if result.Rows != tt.wantRows {
				t.Errorf("Expected %d rows, got %d", tt.wantRows, result.Rows)
			}
		})
	}
}

func TestReconstruct_ParagraphThreshold(t *testing.T) {
	tests := []struct {
		name           string
		gap            float64
		wantParagraphs int
	}{
		{"ordinary line spacing", 12, 1},
		{"just under break", 24, 1},
		{"exactly at break", 25, 1},
		{"just over break", 26, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fragments := []text.TextFragment{
				makeFragment("upper", 0, 200, 10),
				makeFragment("lower", 0, 200-tt.gap, 10),
			}
			paragraphs := Reconstruct(fragments, DefaultConfig())
			if len(paragraphs) != tt.wantParagraphs {
				t.Errorf("Expected %d paragraphs, got %d (%v)", tt.wantParagraphs, len(paragraphs), paragraphTexts(paragraphs))
			}
		})
	}
}

func TestReconstruct_ParagraphGapUsesPreviousRowHeight(t *testing.T) {
	// A large heading followed by body text: the gap is judged against the
	// heading's height, not the body's.
	fragments := []text.TextFragment{
		makeFragment("Heading", 0, 700, 24),
		makeFragment("body", 0, 650, 10),
	}

	paragraphs := Reconstruct(fragments, DefaultConfig())
	if len(paragraphs) != 1 {
		t.Errorf("Expected heading and body in one paragraph (50 <= 24*2.5), got %v", paragraphTexts(paragraphs))
	}

	fragments = []text.TextFragment{
		makeFragment("body", 0, 700, 10),
		makeFragment("Heading", 0, 650, 24),
	}
	paragraphs = Reconstruct(fragments, DefaultConfig())
	if len(paragraphs) != 2 {
		t.Errorf("Expected break after small row (50 > 10*2.5), got %v", paragraphTexts(paragraphs))
	}
}

func TestReconstruct_DefaultFontSizeWithoutScale(t *testing.T) {
	fragments := []text.TextFragment{
		{Text: "a", X: 0, Y: 100},
		{Text: "b", X: 10, Y: 96},
		{Text: "c", X: 0, Y: 80},
	}

	result := NewReconstructor().ReconstructWithStats(fragments)
	if result.Rows != 2 {
		t.Errorf("Expected 2 rows with default size 10, got %d", result.Rows)
	}
	if h := result.Paragraphs[0].Lines[0].Height; h != text.DefaultFontSize {
		t.Errorf("Expected row height %v, got %v", text.DefaultFontSize, h)
	}
}

func TestReconstruct_DegenerateGeometry(t *testing.T) {
	fragments := []text.TextFragment{
		makeFragment("c", 5, 5, 10),
		makeFragment("a", 5, 5, 10),
		makeFragment("b", 5, 5, 10),
	}

	result := NewReconstructor().ReconstructWithStats(fragments)
	if result.Rows != 1 {
		t.Fatalf("Expected 1 row, got %d", result.Rows)
	}
	if len(result.Paragraphs) != 1 {
		t.Fatalf("Expected 1 paragraph, got %d", len(result.Paragraphs))
	}
	if result.Paragraphs[0].Text != "c a b" {
		t.Errorf("Expected input order 'c a b', got '%s'", result.Paragraphs[0].Text)
	}
}

func TestReconstruct_SamePositionKeepsInputOrder(t *testing.T) {
	fragments := []text.TextFragment{
		makeFragment("the", 72, 700, 12),
		makeFragment("quick", 72, 700, 12),
		makeFragment("brown", 72, 700, 12),
		makeFragment("fox", 120, 700, 12),
	}

	got := Reconstruct(fragments, DefaultConfig())
	if len(got) != 1 || got[0].Text != "the quick brown fox" {
		t.Errorf("Expected 'the quick brown fox', got %v", paragraphTexts(got))
	}
}

func TestReconstruct_InvalidGeometryFiltered(t *testing.T) {
	fragments := []text.TextFragment{
		makeFragment("good", 0, 100, 10),
		makeFragment("nan-y", 0, math.NaN(), 10),
		makeFragment("inf-x", math.Inf(1), 100, 10),
		makeFragment("also good", 40, 100, 10),
	}

	result := NewReconstructor().ReconstructWithStats(fragments)
	if result.Dropped != 2 {
		t.Errorf("Expected 2 dropped, got %d", result.Dropped)
	}
	if len(result.Paragraphs) != 1 || result.Paragraphs[0].Text != "good also good" {
		t.Errorf("Unexpected paragraphs: %v", paragraphTexts(result.Paragraphs))
	}
}

func TestReconstruct_RowMonotonicity(t *testing.T) {
	fragments := []text.TextFragment{
		makeFragment("d", 60, 88, 10),
		makeFragment("b", 60, 100, 10),
		makeFragment("c", 0, 88, 10),
		makeFragment("a", 0, 100, 10),
		makeFragment("f", 50, 40, 10),
		makeFragment("e", 0, 40, 10),
	}

	paragraphs := Reconstruct(fragments, DefaultConfig())

	var order []string
	lastY := math.Inf(1)
	for _, p := range paragraphs {
		for _, row := range p.Lines {
			if row.Y > lastY {
				t.Errorf("Row at %v follows row at %v", row.Y, lastY)
			}
			lastY = row.Y
			for i, f := range row.Fragments {
				if i > 0 && f.X < row.Fragments[i-1].X {
					t.Errorf("Fragments out of X order in row at %v", row.Y)
				}
				order = append(order, f.Text)
			}
		}
	}

	want := []string{"a", "b", "c", "d", "e", "f"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("Expected traversal %v, got %v", want, order)
	}
}

func TestReconstruct_PermutationInvariance(t *testing.T) {
	fragments := []text.TextFragment{
		makeFragment("Lorem", 72, 720, 12),
		makeFragment("ipsum", 110, 720.4, 12),
		makeFragment("dolor", 150, 719.8, 12),
		makeFragment("sit", 72, 706, 12),
		makeFragment("amet", 95, 706, 12),
		makeFragment("Next", 72, 660, 12),
		makeFragment("paragraph", 105, 660, 12),
		makeFragment("tail", 72, 646, 12),
	}

	want := Reconstruct(fragments, DefaultConfig())

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := make([]text.TextFragment, len(fragments))
		copy(shuffled, fragments)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		got := Reconstruct(shuffled, DefaultConfig())
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("Shuffle %d changed output:\n got %v\nwant %v", i, paragraphTexts(got), paragraphTexts(want))
		}
	}

	if texts := paragraphTexts(want); !reflect.DeepEqual(texts, []string{"Lorem ipsum dolor sit amet", "Next paragraph tail"}) {
		t.Errorf("Unexpected paragraphs: %v", texts)
	}
}

func TestReconstruct_DoesNotModifyInput(t *testing.T) {
	fragments := []text.TextFragment{
		makeFragment("b", 50, 100, 10),
		makeFragment("a", 0, 100, 10),
	}
	_ = Reconstruct(fragments, DefaultConfig())

	if fragments[0].Text != "b" || fragments[1].Text != "a" {
		t.Error("Input order was modified")
	}
}

func TestReconstructor_ConfigFallback(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{"zero values", Config{}},
		{"negative", Config{RowTolerance: -1, ParagraphGap: -2}},
		{"non-finite", Config{RowTolerance: math.NaN(), ParagraphGap: math.Inf(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewReconstructorWithConfig(tt.config).Config()
			if got != DefaultConfig() {
				t.Errorf("Expected defaults, got %+v", got)
			}
		})
	}
}

func TestReconstructor_CustomThresholds(t *testing.T) {
	fragments := []text.TextFragment{
		makeFragment("upper", 0, 100, 10),
		makeFragment("lower", 0, 85, 10),
	}

	paragraphs := Reconstruct(fragments, Config{RowTolerance: 0.5, ParagraphGap: 1.2})
	if len(paragraphs) != 2 {
		t.Errorf("Expected tight gap to split paragraphs, got %v", paragraphTexts(paragraphs))
	}

	result := NewReconstructorWithConfig(Config{RowTolerance: 2, ParagraphGap: 2.5}).ReconstructWithStats(fragments)
	if result.Rows != 1 {
		t.Errorf("Expected loose tolerance to merge rows, got %d", result.Rows)
	}
}

func TestParagraph_WordCount(t *testing.T) {
	p := Paragraph{Text: "one two  three"}
	if p.WordCount() != 3 {
		t.Errorf("Expected 3 words, got %d", p.WordCount())
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeFlow, false},
		{"flow", ModeFlow, false},
		{" Exact ", ModeExact, false},
		{"columns", ModeFlow, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	if err := ModeFlow.Supported(); err != nil {
		t.Errorf("Expected flow mode supported, got %v", err)
	}
	if err := ModeExact.Supported(); err == nil {
		t.Error("Expected exact mode to be unsupported")
	}
}
