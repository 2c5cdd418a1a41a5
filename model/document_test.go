package model

import (
	"testing"

	"github.com/tsawler/reflow/layout"
)

func TestNewPage_EmptyParagraphsGetPlaceholder(t *testing.T) {
	page := NewPage("a.pdf", 3, nil)

	if len(page.Paragraphs) != 1 {
		t.Fatalf("Expected 1 placeholder paragraph, got %d", len(page.Paragraphs))
	}
	if !page.IsBlank() {
		t.Error("Expected page to be blank")
	}
	if page.Number != 3 || page.Source != "a.pdf" {
		t.Errorf("Unexpected page identity: %+v", page)
	}
}

func TestDocument_AddPage(t *testing.T) {
	doc := NewDocument("Report")

	doc.AddPage(NewPage("a.pdf", 1, []layout.Paragraph{{Text: "first"}}))
	doc.AddPage(NewPage("a.pdf", 2, nil))
	doc.AddPage(NewPage("b.pdf", 1, []layout.Paragraph{{Text: "second"}, {Text: "third"}}))

	if doc.PageCount() != 3 {
		t.Fatalf("Expected 3 pages, got %d", doc.PageCount())
	}
	for i, page := range doc.Pages {
		if page.Index != i+1 {
			t.Errorf("Page %d has index %d", i, page.Index)
		}
	}
	if len(doc.Metadata.Sources) != 2 {
		t.Errorf("Expected 2 sources, got %v", doc.Metadata.Sources)
	}
	if doc.ParagraphCount() != 3 {
		t.Errorf("Expected 3 paragraphs, got %d", doc.ParagraphCount())
	}
	if got := doc.GetPage(3); got == nil || got.Source != "b.pdf" {
		t.Errorf("GetPage(3) = %+v", got)
	}
	if doc.GetPage(0) != nil || doc.GetPage(4) != nil {
		t.Error("Expected nil for out of range pages")
	}
}

func TestDocument_ExtractText(t *testing.T) {
	doc := NewDocument("")
	doc.AddPage(NewPage("", 1, []layout.Paragraph{{Text: "one"}, {Text: "two"}}))
	doc.AddPage(NewPage("", 2, nil))
	doc.AddPage(NewPage("", 3, []layout.Paragraph{{Text: "three"}}))

	want := "one\n\ntwo\n\nthree"
	if got := doc.ExtractText(); got != want {
		t.Errorf("ExtractText() = %q, want %q", got, want)
	}
}
