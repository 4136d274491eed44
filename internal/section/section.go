// Package section groups positioned text fragments into paragraph-level
// sections using a vertical-proximity heuristic. The heuristic assumes
// fragments arrive in natural reading order per page; it makes no attempt at
// a structural parse, so paragraph boundaries can be wrong when line spacing
// is irregular. That is a known limitation, not a bug.
package section

import (
	"math"
	"strings"

	"github.com/summitlabs/summit/internal/extractor"
)

// DefaultProximity is the vertical distance, in page coordinate units, within
// which two fragments are treated as belonging to the same paragraph.
const DefaultProximity = 20.0

// Section is a paragraph-level grouping of fragments. ID is the 0-based
// creation index and matches reading order across the whole document (pages
// ascending, top-down within a page). Summary stays empty until the
// summarizer assigns it, exactly once; the struct is read-only after that.
type Section struct {
	ID      int
	Text    string
	Page    int // 0-based
	BBox    extractor.BBox
	Summary string
}

// Builder accumulates fragments into sections.
type Builder struct {
	Proximity float64
}

func NewBuilder(proximity float64) *Builder {
	if proximity <= 0 {
		proximity = DefaultProximity
	}
	return &Builder{Proximity: proximity}
}

// Build merges adjacent fragments into sections, independently per page.
// A fragment within Proximity of the accumulator's y0 joins the current
// section (text appended with a space, bbox grown to the union); anything
// further away closes the section and seeds a new one. An empty fragment
// stream for a page simply yields no sections for that page.
func (b *Builder) Build(frags []extractor.TextFragment) []Section {
	var (
		sections []Section
		parts    []string
		bbox     extractor.BBox
		page     int
		open     bool
	)

	flush := func() {
		if !open {
			return
		}
		text := strings.TrimSpace(strings.Join(parts, " "))
		if text != "" {
			sections = append(sections, Section{
				ID:   len(sections),
				Text: text,
				Page: page,
				BBox: bbox,
			})
		}
		parts = parts[:0]
		open = false
	}

	for _, f := range frags {
		if open && f.Page == page && math.Abs(f.BBox.Y0-bbox.Y0) < b.Proximity {
			parts = append(parts, f.Text)
			bbox = bbox.Union(f.BBox)
			continue
		}
		flush()
		parts = append(parts, f.Text)
		bbox = f.BBox
		page = f.Page
		open = true
	}
	flush()

	return sections
}

// PerPage splits sections into per-page slices keyed by 0-based page index,
// preserving ascending ID order within each page.
func PerPage(sections []Section) map[int][]Section {
	byPage := make(map[int][]Section)
	for _, s := range sections {
		byPage[s.Page] = append(byPage[s.Page], s)
	}
	return byPage
}
