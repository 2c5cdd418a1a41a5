package text

import (
	"math"
	"testing"
)

func TestTextFragment_FontSize(t *testing.T) {
	tests := []struct {
		name   string
		scaleX float64
		scaleY float64
		want   float64
	}{
		{"uniform scale", 12, 12, 12},
		{"larger vertical", 8, 14, 14},
		{"negative scale uses magnitude", -16, 9, 16},
		{"both zero falls back", 0, 0, DefaultFontSize},
		{"NaN ignored", math.NaN(), 11, 11},
		{"both non-finite falls back", math.Inf(1), math.NaN(), DefaultFontSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := TextFragment{Text: "x", ScaleX: tt.scaleX, ScaleY: tt.scaleY}
			if got := f.FontSize(); got != tt.want {
				t.Errorf("FontSize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTextFragment_Valid(t *testing.T) {
	tests := []struct {
		name string
		frag TextFragment
		want bool
	}{
		{"ordinary", TextFragment{Text: "a", X: 10, Y: 700, ScaleX: 12, ScaleY: 12}, true},
		{"no scale", TextFragment{Text: "a", X: 10, Y: 700}, true},
		{"NaN x", TextFragment{Text: "a", X: math.NaN(), Y: 700}, false},
		{"infinite y", TextFragment{Text: "a", X: 10, Y: math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.frag.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUsable(t *testing.T) {
	in := []TextFragment{
		{Text: "keep", X: 0, Y: 100},
		{Text: "   ", X: 0, Y: 90},
		{Text: "", X: 0, Y: 80},
		{Text: "nan", X: math.NaN(), Y: 70},
		{Text: "also", X: 5, Y: 60},
	}

	out, dropped := Usable(in)
	if dropped != 3 {
		t.Errorf("Expected 3 dropped, got %d", dropped)
	}
	if len(out) != 2 || out[0].Text != "keep" || out[1].Text != "also" {
		t.Errorf("Unexpected usable fragments: %+v", out)
	}
	if in[1].Text != "   " {
		t.Error("Input slice was modified")
	}
}

func TestNormalize(t *testing.T) {
	decomposed := "Cafe\u0301"
	if got := Normalize(decomposed); got != "Caf\u00e9" {
		t.Errorf("Normalize(%q) = %q, want composed form", decomposed, got)
	}
	if got := Normalize("plain"); got != "plain" {
		t.Errorf("Normalize changed ASCII input: %q", got)
	}
}
