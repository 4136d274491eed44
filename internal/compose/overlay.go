package compose

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/summitlabs/summit/internal/layout"
)

// Overlay keeps the original pages untouched and stamps a generated
// annotation layer on top of each page that has at least one summarized
// section. Images and vector graphics of the original survive unchanged.
// The sidebar occupies the page's right-hand margin strip.
type Overlay struct {
	geom layout.Geometry
}

func (o *Overlay) Compose(doc *Document) ([]byte, error) {
	// One same-size overlay page per annotated original page. Pages without
	// a sidebar entry get no generated layer at all.
	ov := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: doc.PageWidth, Ht: doc.PageHeight},
	})
	ov.SetAutoPageBreak(false, 0)

	// original page number (1-based) -> overlay page number (1-based)
	stampPages := make(map[int]int)
	for _, p := range doc.Pages {
		if len(p.Annotations.Sidebar) == 0 {
			continue
		}
		ov.AddPage()
		drawHighlights(ov, p.Annotations, doc.PageHeight)
		drawMarkers(ov, p.Annotations, doc.PageHeight)
		drawSidebar(ov, p.Annotations, o.geom, doc.PageWidth-o.geom.SidebarWidth, doc.PageHeight)
		stampPages[p.Number+1] = ov.PageCount()
	}
	if len(stampPages) == 0 {
		// Nothing to annotate; the original is already the output.
		return doc.Original, nil
	}

	var ovBuf bytes.Buffer
	if err := ov.Output(&ovBuf); err != nil {
		return nil, &CompositionError{Err: fmt.Errorf("render overlay: %w", err)}
	}

	// pdfcpu resolves PDF stamps from the filesystem.
	tmpDir, err := os.MkdirTemp("", "summit-overlay-")
	if err != nil {
		return nil, &CompositionError{Err: err}
	}
	defer os.RemoveAll(tmpDir)
	ovPath := filepath.Join(tmpDir, "overlay.pdf")
	if err := os.WriteFile(ovPath, ovBuf.Bytes(), 0644); err != nil {
		return nil, &CompositionError{Err: err}
	}

	wms := make(map[int]*model.Watermark, len(stampPages))
	for origPage, ovPage := range stampPages {
		wm, err := api.PDFWatermark(fmt.Sprintf("%s:%d", ovPath, ovPage), "pos:c, scale:1 abs, rot:0", true, false, types.POINTS)
		if err != nil {
			return nil, &CompositionError{Err: fmt.Errorf("stamp page %d: %w", origPage, err)}
		}
		wms[origPage] = wm
	}

	var out bytes.Buffer
	conf := model.NewDefaultConfiguration()
	if err := api.AddWatermarksMap(bytes.NewReader(doc.Original), &out, wms, conf); err != nil {
		return nil, &CompositionError{Err: fmt.Errorf("merge overlay: %w", err)}
	}
	return out.Bytes(), nil
}
