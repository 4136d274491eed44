// Package compose merges original PDF pages with their generated annotation
// layers into final output bytes. Two backends implement the same contract:
// Overlay stamps a generated transparent layer onto the untouched original
// pages, Redraw re-renders extracted text onto wider pages with the sidebar
// beside the original content. Layout decisions are shared; only drawing is
// backend-specific.
package compose

import (
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/summitlabs/summit/internal/extractor"
	"github.com/summitlabs/summit/internal/layout"
)

// Backend names accepted by New.
const (
	BackendOverlay = "overlay"
	BackendRedraw  = "redraw"
)

// Page bundles one original page's extracted content and its annotations.
type Page struct {
	Number      int // 0-based original page index
	Fragments   []extractor.TextFragment
	Annotations layout.AnnotationSet
}

// Document is the per-request composition input. Original holds the
// untouched input bytes; Pages covers every original page in order, including
// pages with no annotations.
type Document struct {
	Original   []byte
	PageWidth  float64
	PageHeight float64
	Pages      []Page
}

// Compositor produces the final output document.
type Compositor interface {
	Compose(doc *Document) ([]byte, error)
}

// CompositionError indicates writing the final document failed. Fatal to the
// request; no partial output is returned.
type CompositionError struct {
	Err error
}

func (e *CompositionError) Error() string {
	return fmt.Sprintf("compose pdf: %s", e.Err)
}

func (e *CompositionError) Unwrap() error { return e.Err }

// New selects a compositor backend by name.
func New(backend string, geom layout.Geometry) (Compositor, error) {
	switch backend {
	case BackendOverlay, "":
		return &Overlay{geom: geom}, nil
	case BackendRedraw:
		return &Redraw{geom: geom}, nil
	default:
		return nil, fmt.Errorf("unknown compositor backend: %q", backend)
	}
}

// Measurer returns a layout.Measurer backed by the drawing backend's
// Helvetica metrics, so wrapped lines fit exactly what gets drawn. Not safe
// for concurrent use; build one per request.
func Measurer() layout.Measurer {
	doc := fpdf.New("P", "pt", "Letter", "")
	return func(s string, size float64) float64 {
		doc.SetFont("Helvetica", "", size)
		return doc.GetStringWidth(s)
	}
}
