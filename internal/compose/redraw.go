package compose

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/summitlabs/summit/internal/layout"
)

// Redraw allocates one wider output page per original page: the extracted
// text re-rendered at its original coordinates on the left, the sidebar in
// the added right-hand region. Page cardinality is preserved exactly. Only
// text content is re-rendered; originals with images or vector art should go
// through the overlay backend instead, a documented trade-off of this
// strategy.
type Redraw struct {
	geom layout.Geometry
}

func (r *Redraw) Compose(doc *Document) ([]byte, error) {
	out := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: doc.PageWidth + r.geom.SidebarWidth, Ht: doc.PageHeight},
	})
	out.SetAutoPageBreak(false, 0)
	tr := out.UnicodeTranslatorFromDescriptor("")

	for _, p := range doc.Pages {
		out.AddPage()

		drawHighlights(out, p.Annotations, doc.PageHeight)

		out.SetTextColor(0, 0, 0)
		for _, f := range p.Fragments {
			size := f.BBox.Y1 - f.BBox.Y0
			if size <= 0 {
				continue
			}
			out.SetFont("Helvetica", "", size)
			// Fragment y0 is the text baseline in user space.
			out.Text(f.BBox.X0, doc.PageHeight-f.BBox.Y0, tr(f.Text))
		}

		drawMarkers(out, p.Annotations, doc.PageHeight)
		drawSidebar(out, p.Annotations, r.geom, doc.PageWidth, doc.PageHeight)
	}

	var buf bytes.Buffer
	if err := out.Output(&buf); err != nil {
		return nil, &CompositionError{Err: fmt.Errorf("render pages: %w", err)}
	}
	return buf.Bytes(), nil
}
