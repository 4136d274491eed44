package layout

import (
	"strings"
	"testing"

	"github.com/summitlabs/summit/internal/extractor"
	"github.com/summitlabs/summit/internal/section"
)

const testPageHeight = 792.0

func sec(id, page int, summary string, x0, y0, x1, y1 float64) section.Section {
	return section.Section{
		ID:      id,
		Page:    page,
		Text:    "text",
		Summary: summary,
		BBox:    extractor.BBox{X0: x0, Y0: y0, X1: x1, Y1: y1},
	}
}

func TestPageEmptySections(t *testing.T) {
	engine := NewEngine(DefaultGeometry(), nil)
	set := engine.Page(0, nil, testPageHeight)
	if len(set.Highlights) != 0 || len(set.Markers) != 0 || len(set.Sidebar) != 0 {
		t.Fatalf("expected empty annotation set, got %+v", set)
	}
	if set.Overflow {
		t.Errorf("empty page must not overflow")
	}
}

func TestPageHighlightMatchesBBox(t *testing.T) {
	engine := NewEngine(DefaultGeometry(), nil)
	s := sec(0, 0, "a summary", 50, 100, 400, 120)
	set := engine.Page(0, []section.Section{s}, testPageHeight)

	if len(set.Highlights) != 1 {
		t.Fatalf("expected 1 highlight, got %d", len(set.Highlights))
	}
	want := Rect{X0: 50, Y0: 100, X1: 400, Y1: 120}
	if set.Highlights[0].Rect != want {
		t.Errorf("highlight rect %+v, want %+v", set.Highlights[0].Rect, want)
	}
}

func TestPageMarkerAnchor(t *testing.T) {
	g := DefaultGeometry()
	engine := NewEngine(g, nil)
	s := sec(2, 0, "a summary", 50, 100, 400, 120)
	set := engine.Page(0, []section.Section{s}, testPageHeight)

	if len(set.Markers) != 1 {
		t.Fatalf("expected 1 marker, got %d", len(set.Markers))
	}
	m := set.Markers[0]
	if m.Label != "3" {
		t.Errorf("display number must be section ID+1, got %q", m.Label)
	}
	if m.Rect.X0 != 400+g.MarkerOffset {
		t.Errorf("marker left edge %f, want %f", m.Rect.X0, 400+g.MarkerOffset)
	}
	if m.Rect.Y1 != 120-g.MarkerOffset {
		t.Errorf("marker top edge %f, want %f", m.Rect.Y1, 120-g.MarkerOffset)
	}
	if w := m.Rect.X1 - m.Rect.X0; w != g.MarkerSize {
		t.Errorf("marker width %f, want %f", w, g.MarkerSize)
	}
}

func TestPageSkipsEmptySummaries(t *testing.T) {
	engine := NewEngine(DefaultGeometry(), nil)
	sections := []section.Section{
		sec(0, 0, "has a summary", 50, 700, 200, 712),
		sec(1, 0, "  ", 50, 600, 200, 612),
		sec(2, 0, "another summary", 50, 500, 200, 512),
	}
	set := engine.Page(0, sections, testPageHeight)

	if len(set.Highlights) != 3 {
		t.Errorf("every section gets a highlight, got %d", len(set.Highlights))
	}
	if len(set.Sidebar) != 2 {
		t.Fatalf("blank summaries must be skipped, got %d entries", len(set.Sidebar))
	}
	if set.Sidebar[0].Number != 1 || set.Sidebar[1].Number != 3 {
		t.Errorf("unexpected entry numbers: %d, %d", set.Sidebar[0].Number, set.Sidebar[1].Number)
	}
}

func TestPageSidebarEntriesStackWithoutOverlap(t *testing.T) {
	g := DefaultGeometry()
	engine := NewEngine(g, nil)
	long := strings.Repeat("lorem ipsum dolor ", 10)
	sections := []section.Section{
		sec(0, 0, "Title: One\nSummary: "+long, 50, 700, 200, 712),
		sec(1, 0, "Title: Two\nSummary: "+long, 50, 600, 200, 612),
		sec(2, 0, "Title: Three\nSummary: "+long, 50, 500, 200, 512),
	}
	set := engine.Page(0, sections, testPageHeight)

	if len(set.Sidebar) != 3 {
		t.Fatalf("expected 3 sidebar entries, got %d", len(set.Sidebar))
	}
	if set.Sidebar[0].OffsetY != g.TopMargin {
		t.Errorf("first entry must start at the top margin, got %f", set.Sidebar[0].OffsetY)
	}
	for i := 1; i < len(set.Sidebar); i++ {
		prev, cur := set.Sidebar[i-1], set.Sidebar[i]
		prevHeight := g.entryHeight(len(prev.Title), len(prev.Body))
		if cur.OffsetY < prev.OffsetY+prevHeight {
			t.Errorf("entry %d at %f overlaps previous entry ending at %f",
				i, cur.OffsetY, prev.OffsetY+prevHeight)
		}
	}
}

func TestPageSidebarOrderFollowsIDs(t *testing.T) {
	engine := NewEngine(DefaultGeometry(), nil)
	sections := []section.Section{
		sec(3, 1, "s one", 50, 700, 200, 712),
		sec(4, 1, "s two", 50, 600, 200, 612),
	}
	set := engine.Page(1, sections, testPageHeight)

	if len(set.Sidebar) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(set.Sidebar))
	}
	if set.Sidebar[0].Number >= set.Sidebar[1].Number {
		t.Errorf("entries must render in ascending section order: %d then %d",
			set.Sidebar[0].Number, set.Sidebar[1].Number)
	}
	if set.Sidebar[0].OffsetY >= set.Sidebar[1].OffsetY {
		t.Errorf("later entries must sit lower: %f then %f",
			set.Sidebar[0].OffsetY, set.Sidebar[1].OffsetY)
	}
}

func TestPageTitleBodySplit(t *testing.T) {
	engine := NewEngine(DefaultGeometry(), nil)
	s := sec(0, 0, "Title: Test\nSummary: A verification paragraph.", 50, 700, 200, 712)
	set := engine.Page(0, []section.Section{s}, testPageHeight)

	if len(set.Sidebar) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(set.Sidebar))
	}
	e := set.Sidebar[0]
	if e.Number != 1 {
		t.Errorf("expected number 1, got %d", e.Number)
	}
	if strings.Join(e.Title, " ") != "Test" {
		t.Errorf("expected title %q, got %v", "Test", e.Title)
	}
	if strings.Join(e.Body, " ") != "A verification paragraph." {
		t.Errorf("expected body %q, got %v", "A verification paragraph.", e.Body)
	}
}

func TestPageOverflowKeepsDrawing(t *testing.T) {
	engine := NewEngine(DefaultGeometry(), nil)
	long := strings.Repeat("overflowing sidebar content ", 30)
	var sections []section.Section
	for i := 0; i < 12; i++ {
		sections = append(sections, sec(i, 0, "Title: T\nSummary: "+long, 50, 700, 200, 712))
	}
	set := engine.Page(0, sections, testPageHeight)

	if len(set.Sidebar) != 12 {
		t.Fatalf("overflow must not drop entries: got %d of 12", len(set.Sidebar))
	}
	if !set.Overflow {
		t.Errorf("expected overflow to be reported")
	}
}
