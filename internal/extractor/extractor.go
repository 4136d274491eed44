package extractor

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// Fallback metrics for glyphs whose font information is missing from the
// content stream.
const (
	fallbackFontSize  = 12.0
	fallbackCharWidth = 12.0
)

// Word assembly thresholds. The content reader emits one element per glyph;
// glyphs separated horizontally by more than wordGapFactor of the font size
// (or vertically by more than baselineTolerance) belong to different words.
const (
	wordGapFactor     = 0.3
	baselineTolerance = 3.0
)

// BBox is an axis-aligned rectangle in PDF user space (origin bottom-left,
// y grows upward).
type BBox struct {
	X0, Y0, X1, Y1 float64
}

// Union returns the coordinate-wise min/max union of two boxes.
func (b BBox) Union(o BBox) BBox {
	return BBox{
		X0: min(b.X0, o.X0),
		Y0: min(b.Y0, o.Y0),
		X1: max(b.X1, o.X1),
		Y1: max(b.Y1, o.Y1),
	}
}

// TextFragment is one positioned word: a run of adjacent glyphs sharing a
// baseline, assembled from the per-glyph elements the content reader emits.
type TextFragment struct {
	Text string
	Page int // 0-based
	BBox BBox
}

// Result holds the fragments for an entire document plus the page count,
// which downstream stages need even for pages that carry no text.
type Result struct {
	Fragments []TextFragment
	Pages     int
}

// ExtractionError indicates the input could not be read as a PDF, or that
// extraction failed on every page. Fatal to the request.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract pdf: %s", e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Extract walks every page of the document in order and returns one fragment
// per word. The x,y of a glyph come from its text matrix translation; height
// is the font size and width the glyph advance, with fixed fallbacks when the
// font dictionary is unavailable. The input buffer is the only thing read;
// nothing is written.
func Extract(data []byte) (*Result, error) {
	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &ExtractionError{Err: err}
	}

	numPages := reader.NumPage()
	res := &Result{Pages: numPages}

	processed := 0
	var lastErr error
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		frags, err := extractPage(page, i-1)
		if err != nil {
			lastErr = err
			continue
		}
		processed++
		res.Fragments = append(res.Fragments, frags...)
	}

	if processed == 0 {
		if lastErr == nil {
			lastErr = fmt.Errorf("document has no readable pages (%d total)", numPages)
		}
		return nil, &ExtractionError{Err: lastErr}
	}
	return res, nil
}

// extractPage reads the positioned glyphs of a single page and assembles them
// into word fragments. The content reader panics on some malformed streams,
// so recover and report that page as failed instead of taking down the
// request.
func extractPage(page pdflib.Page, pageIdx int) (frags []TextFragment, err error) {
	defer func() {
		if r := recover(); r != nil {
			frags = nil
			err = fmt.Errorf("page %d content: %v", pageIdx+1, r)
		}
	}()

	var (
		word     strings.Builder
		bbox     BBox
		baseline float64
		open     bool
	)
	flush := func() {
		if !open {
			return
		}
		frags = append(frags, TextFragment{Text: word.String(), Page: pageIdx, BBox: bbox})
		word.Reset()
		open = false
	}

	content := page.Content()
	for _, t := range content.Text {
		// Whitespace glyphs only separate words.
		if strings.TrimSpace(t.S) == "" {
			flush()
			continue
		}
		height := t.FontSize
		if height <= 0 {
			height = fallbackFontSize
		}
		width := t.W
		if width <= 0 {
			width = float64(len([]rune(t.S))) * fallbackCharWidth
		}
		g := BBox{X0: t.X, Y0: t.Y, X1: t.X + width, Y1: t.Y + height}

		if open {
			// A baseline shift or a gap wider than a word space ends the
			// current word; small negative gaps are kerning and merge.
			if math.Abs(t.Y-baseline) > baselineTolerance || g.X0-bbox.X1 > wordGapFactor*height {
				flush()
			}
		}
		if !open {
			bbox = g
			baseline = t.Y
			open = true
		} else {
			bbox = bbox.Union(g)
		}
		word.WriteString(t.S)
	}
	flush()
	return frags, nil
}
