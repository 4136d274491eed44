package section

import (
	"testing"

	"github.com/summitlabs/summit/internal/extractor"
)

func frag(text string, page int, x0, y0, x1, y1 float64) extractor.TextFragment {
	return extractor.TextFragment{
		Text: text,
		Page: page,
		BBox: extractor.BBox{X0: x0, Y0: y0, X1: x1, Y1: y1},
	}
}

func TestBuildMergesNearbyFragments(t *testing.T) {
	frags := []extractor.TextFragment{
		frag("This is a short test paragraph used for verification of the extraction and grouping logic across this document.", 0, 50, 100, 400, 112),
		frag("continued text", 0, 50, 101, 150, 113),
	}

	sections := NewBuilder(0).Build(frags)
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}

	s := sections[0]
	want := "This is a short test paragraph used for verification of the extraction and grouping logic across this document. continued text"
	if s.Text != want {
		t.Errorf("unexpected text:\n got %q\nwant %q", s.Text, want)
	}

	// Union must be the coordinate-wise min/max of both boxes.
	wantBox := extractor.BBox{X0: 50, Y0: 100, X1: 400, Y1: 113}
	if s.BBox != wantBox {
		t.Errorf("expected bbox %+v, got %+v", wantBox, s.BBox)
	}
	if s.Page != 0 {
		t.Errorf("expected page 0, got %d", s.Page)
	}
	if s.Summary != "" {
		t.Errorf("summary should start empty, got %q", s.Summary)
	}
}

func TestBuildSplitsDistantFragments(t *testing.T) {
	frags := []extractor.TextFragment{
		frag("first paragraph", 0, 50, 700, 200, 712),
		frag("second paragraph", 0, 50, 680, 210, 692), // delta 20, at threshold
	}

	sections := NewBuilder(20).Build(frags)
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections for y-delta >= threshold, got %d", len(sections))
	}
	if sections[0].Text != "first paragraph" || sections[1].Text != "second paragraph" {
		t.Errorf("unexpected section texts: %q / %q", sections[0].Text, sections[1].Text)
	}
}

func TestBuildIDsFollowReadingOrder(t *testing.T) {
	frags := []extractor.TextFragment{
		frag("page one top", 0, 50, 700, 200, 712),
		frag("page one bottom", 0, 50, 300, 200, 312),
		frag("page two", 1, 50, 700, 200, 712),
	}

	sections := NewBuilder(0).Build(frags)
	if len(sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(sections))
	}
	for i, s := range sections {
		if s.ID != i {
			t.Errorf("section %d: expected ID %d, got %d", i, i, s.ID)
		}
	}
	if sections[2].Page != 1 {
		t.Errorf("expected third section on page 1, got %d", sections[2].Page)
	}
}

func TestBuildPageBoundaryForcesNewSection(t *testing.T) {
	// Same y-coordinates but different pages must never merge.
	frags := []extractor.TextFragment{
		frag("end of page one", 0, 50, 100, 200, 112),
		frag("start of page two", 1, 50, 101, 200, 113),
	}

	sections := NewBuilder(0).Build(frags)
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections across a page boundary, got %d", len(sections))
	}
}

func TestBuildEmptyInput(t *testing.T) {
	if sections := NewBuilder(0).Build(nil); len(sections) != 0 {
		t.Fatalf("expected no sections for empty input, got %d", len(sections))
	}
}

func TestBuildSkipsWhitespaceOnlySections(t *testing.T) {
	frags := []extractor.TextFragment{
		frag("   ", 0, 50, 700, 60, 712),
		frag("real text", 0, 50, 600, 150, 612),
	}

	sections := NewBuilder(0).Build(frags)
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if sections[0].Text != "real text" {
		t.Errorf("expected %q, got %q", "real text", sections[0].Text)
	}
	if sections[0].ID != 0 {
		t.Errorf("expected ID 0, got %d", sections[0].ID)
	}
}

func TestPerPagePreservesOrder(t *testing.T) {
	frags := []extractor.TextFragment{
		frag("a", 0, 0, 700, 10, 712),
		frag("b", 0, 0, 600, 10, 612),
		frag("c", 1, 0, 700, 10, 712),
	}
	byPage := PerPage(NewBuilder(0).Build(frags))

	if len(byPage[0]) != 2 || len(byPage[1]) != 1 {
		t.Fatalf("unexpected per-page counts: %d/%d", len(byPage[0]), len(byPage[1]))
	}
	if byPage[0][0].ID > byPage[0][1].ID {
		t.Errorf("per-page sections out of ID order: %d before %d", byPage[0][0].ID, byPage[0][1].ID)
	}
}
