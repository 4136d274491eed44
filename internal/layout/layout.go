// Package layout computes per-page annotation geometry: highlight boxes,
// numbered markers, and a fixed-width sidebar of wrapped summary text laid
// out top-to-bottom without overlap. Layout is backend-independent; the
// compose package turns an AnnotationSet into drawn page content.
package layout

import (
	"strconv"
	"strings"

	"github.com/summitlabs/summit/internal/section"
	"github.com/summitlabs/summit/internal/summarize"
)

// lineSpacing scales a font size into a line advance.
const lineSpacing = 1.25

// Geometry fixes the drawing constants of the annotation layer for the
// reference page size.
type Geometry struct {
	SidebarWidth float64 // width of the reserved sidebar column
	Padding      float64 // inner padding of the sidebar column
	TopMargin    float64 // distance from page top to the first sidebar entry
	TitleSize    float64 // font size of the entry number and title lines
	BodySize     float64 // font size of the body lines
	MarkerSize   float64 // edge length of the square page marker
	MarkerOffset float64 // marker anchor offset from the section bbox corner
}

func DefaultGeometry() Geometry {
	return Geometry{
		SidebarWidth: 160,
		Padding:      8,
		TopMargin:    36,
		TitleSize:    9,
		BodySize:     8,
		MarkerSize:   14,
		MarkerOffset: 4,
	}
}

// LineHeight converts a font size into a vertical line advance.
func (g Geometry) LineHeight(size float64) float64 { return size * lineSpacing }

// TextWidth is the horizontal space available to wrapped sidebar lines.
func (g Geometry) TextWidth() float64 { return g.SidebarWidth - 2*g.Padding }

// entryHeight is the vertical room one sidebar entry consumes: number line,
// title lines, half-line gap, body lines, then a full inter-entry gap.
func (g Geometry) entryHeight(titleLines, bodyLines int) float64 {
	h := g.LineHeight(g.TitleSize)
	h += float64(titleLines) * g.LineHeight(g.TitleSize)
	h += 0.5 * g.LineHeight(g.BodySize)
	h += float64(bodyLines) * g.LineHeight(g.BodySize)
	h += g.LineHeight(g.BodySize)
	return h
}

// Measurer reports the rendered width of s at a font size. Compositors
// supply real font metrics; ApproxMeasurer serves callers without a
// rendering backend.
type Measurer func(s string, size float64) float64

// ApproxMeasurer estimates width as half the font size per rune, which is
// close to Helvetica's average advance.
func ApproxMeasurer(s string, size float64) float64 {
	return float64(len([]rune(s))) * size * 0.5
}

// Rect is an axis-aligned rectangle in PDF user space (y grows upward).
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// Highlight is a semi-transparent box over a section's original location.
type Highlight struct {
	Section int
	Rect    Rect
}

// Marker is the small numbered box anchored beside a section, linking it to
// its sidebar entry.
type Marker struct {
	Section int
	Label   string
	Rect    Rect
}

// SidebarEntry is one numbered summary in the sidebar column. Title and Body
// hold greedily wrapped lines fitted to the column text width. OffsetY is
// the distance from the top of the page to the top of the entry, growing
// downward, so compositors can place lines without re-running layout.
type SidebarEntry struct {
	Number  int
	Title   []string
	Body    []string
	OffsetY float64
}

// AnnotationSet holds everything drawn onto one page. Built fresh per page
// per request; never persisted.
type AnnotationSet struct {
	Page       int
	Highlights []Highlight
	Markers    []Marker
	Sidebar    []SidebarEntry

	// Overflow reports that the sidebar cursor ran past the page bottom.
	// Overflowing entries still draw, off-page.
	Overflow bool
}

// Engine computes annotation sets. Zero value is unusable; use NewEngine.
type Engine struct {
	geom    Geometry
	measure Measurer
}

func NewEngine(geom Geometry, measure Measurer) *Engine {
	if measure == nil {
		measure = ApproxMeasurer
	}
	return &Engine{geom: geom, measure: measure}
}

func (e *Engine) Geometry() Geometry { return e.geom }

// Page lays out the annotation set for one page. sections must be the page's
// sections in ascending ID order. Every section gets a highlight and a
// marker; only sections with a non-empty summary get a sidebar entry.
// Numbering is global across the document: display number = section ID + 1.
//
// The sidebar cursor advances downward from the top margin and is allowed to
// run past pageHeight; overflowing entries draw off-page rather than erroring,
// since sidebar pagination is out of scope.
func (e *Engine) Page(pageIdx int, sections []section.Section, pageHeight float64) AnnotationSet {
	g := e.geom
	set := AnnotationSet{Page: pageIdx}
	avail := g.TextWidth()
	cursor := g.TopMargin

	for _, s := range sections {
		set.Highlights = append(set.Highlights, Highlight{
			Section: s.ID,
			Rect:    Rect{X0: s.BBox.X0, Y0: s.BBox.Y0, X1: s.BBox.X1, Y1: s.BBox.Y1},
		})
		set.Markers = append(set.Markers, Marker{
			Section: s.ID,
			Label:   strconv.Itoa(s.ID + 1),
			Rect:    markerRect(s.BBox.X1, s.BBox.Y1, g),
		})

		if strings.TrimSpace(s.Summary) == "" {
			continue
		}
		sum := summarize.Parse(s.Summary)
		title := Wrap(sum.Title, g.TitleSize, avail, e.measure)
		body := Wrap(sum.Body, g.BodySize, avail, e.measure)

		set.Sidebar = append(set.Sidebar, SidebarEntry{
			Number:  s.ID + 1,
			Title:   title,
			Body:    body,
			OffsetY: cursor,
		})
		cursor += g.entryHeight(len(title), len(body))
	}

	set.Overflow = cursor > pageHeight
	return set
}

// markerRect anchors the marker's top-left at (x1+offset, y1-offset) in user
// space, just outside the section's top-right corner.
func markerRect(x1, y1 float64, g Geometry) Rect {
	top := y1 - g.MarkerOffset
	left := x1 + g.MarkerOffset
	return Rect{X0: left, Y0: top - g.MarkerSize, X1: left + g.MarkerSize, Y1: top}
}
