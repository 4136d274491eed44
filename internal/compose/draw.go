package compose

import (
	"strconv"

	"github.com/go-pdf/fpdf"
	"github.com/summitlabs/summit/internal/layout"
)

// Fixed highlight and marker style constants.
const (
	highlightAlpha = 0.3
	markerFontSize = 8
)

// drawHighlights paints one semi-transparent yellow box per section.
// Overlapping highlights simply paint over each other; source sections
// rarely overlap, so no resolution is attempted. pageH converts from PDF
// user space (y up) to fpdf's top-left origin.
func drawHighlights(pdf *fpdf.Fpdf, set layout.AnnotationSet, pageH float64) {
	if len(set.Highlights) == 0 {
		return
	}
	pdf.SetAlpha(highlightAlpha, "Normal")
	pdf.SetFillColor(255, 255, 0)
	for _, h := range set.Highlights {
		r := h.Rect
		pdf.Rect(r.X0, pageH-r.Y1, r.X1-r.X0, r.Y1-r.Y0, "F")
	}
	pdf.SetAlpha(1, "Normal")
}

// drawMarkers draws the small numbered boxes anchored beside each section.
func drawMarkers(pdf *fpdf.Fpdf, set layout.AnnotationSet, pageH float64) {
	if len(set.Markers) == 0 {
		return
	}
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Helvetica", "B", markerFontSize)
	pdf.SetDrawColor(200, 60, 30)
	pdf.SetFillColor(255, 255, 255)
	pdf.SetTextColor(200, 60, 30)
	for _, m := range set.Markers {
		r := m.Rect
		pdf.SetXY(r.X0, pageH-r.Y1)
		pdf.CellFormat(r.X1-r.X0, r.Y1-r.Y0, tr(m.Label), "1", 0, "CM", true, 0, "")
	}
}

// drawSidebar renders the sidebar column with its left edge at x0. Entry
// OffsetY values are already measured downward from the page top, matching
// fpdf's coordinate system directly.
func drawSidebar(pdf *fpdf.Fpdf, set layout.AnnotationSet, g layout.Geometry, x0, pageH float64) {
	if len(set.Sidebar) == 0 {
		return
	}
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Column background.
	pdf.SetAlpha(0.9, "Normal")
	pdf.SetFillColor(247, 247, 240)
	pdf.Rect(x0, 0, g.SidebarWidth, pageH, "F")
	pdf.SetAlpha(1, "Normal")
	pdf.SetDrawColor(180, 180, 170)
	pdf.Line(x0, 0, x0, pageH)

	tx := x0 + g.Padding
	for _, e := range set.Sidebar {
		y := e.OffsetY

		pdf.SetTextColor(200, 60, 30)
		pdf.SetFont("Helvetica", "B", g.TitleSize)
		pdf.Text(tx, y+g.TitleSize, strconv.Itoa(e.Number)+".")
		y += g.LineHeight(g.TitleSize)

		pdf.SetTextColor(30, 30, 30)
		for _, line := range e.Title {
			pdf.Text(tx, y+g.TitleSize, tr(line))
			y += g.LineHeight(g.TitleSize)
		}
		y += 0.5 * g.LineHeight(g.BodySize)

		pdf.SetFont("Helvetica", "", g.BodySize)
		pdf.SetTextColor(60, 60, 60)
		for _, line := range e.Body {
			pdf.Text(tx, y+g.BodySize, tr(line))
			y += g.LineHeight(g.BodySize)
		}
	}
}
