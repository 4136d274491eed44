// Package pipeline orchestrates one request through the stages: extract,
// build sections, summarize, lay out annotations, compose. Every stage works
// on per-request values; nothing survives the request or is shared between
// concurrent requests.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/summitlabs/summit/internal/compose"
	"github.com/summitlabs/summit/internal/compress"
	"github.com/summitlabs/summit/internal/config"
	"github.com/summitlabs/summit/internal/extractor"
	"github.com/summitlabs/summit/internal/layout"
	"github.com/summitlabs/summit/internal/section"
	"github.com/summitlabs/summit/internal/summarize"
)

// SectionResult is the JSON shape of one section for the inspection use case.
// Page is 1-based on the wire; Position is x0,y0,x1,y1 in page coordinates.
type SectionResult struct {
	Text     string     `json:"text"`
	Summary  string     `json:"summary"`
	Page     int        `json:"page"`
	Position [4]float64 `json:"position"`
}

// Processor runs the document pipeline. Extraction and composition are
// CPU-bound, so they run inside a bounded slot pool to keep concurrent
// requests from piling up unbounded work; summarizer calls are I/O-bound and
// fan out per section inside the adapter instead.
type Processor struct {
	cfg     config.Config
	adapter *summarize.Adapter
	log     *slog.Logger
	slots   chan struct{}
}

func NewProcessor(cfg config.Config, summarizer summarize.Summarizer, log *slog.Logger) *Processor {
	return &Processor{
		cfg:     cfg,
		adapter: summarize.NewAdapter(summarizer, log, cfg.WordThreshold, cfg.MaxConcurrentSummaries),
		log:     log,
		slots:   make(chan struct{}, cfg.WorkerCount),
	}
}

// run executes fn while holding a worker slot.
func (p *Processor) run(ctx context.Context, fn func() error) error {
	select {
	case p.slots <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-p.slots }()
	return fn()
}

// Annotate produces the annotated output document for the input PDF.
func (p *Processor) Annotate(ctx context.Context, data []byte) ([]byte, error) {
	sections, res, err := p.summarizedSections(ctx, data)
	if err != nil {
		return nil, err
	}

	measure := compose.Measurer()
	engine := layout.NewEngine(p.geometry(), measure)
	doc := p.buildDocument(data, res, sections, engine)

	compositor, err := compose.New(p.cfg.Compositor, p.geometry())
	if err != nil {
		return nil, err
	}

	var out []byte
	err = p.run(ctx, func() error {
		var cerr error
		out, cerr = compositor.Compose(doc)
		return cerr
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Summarize returns the structured section listing for the input PDF.
func (p *Processor) Summarize(ctx context.Context, data []byte) ([]SectionResult, error) {
	sections, _, err := p.summarizedSections(ctx, data)
	if err != nil {
		return nil, err
	}

	results := make([]SectionResult, 0, len(sections))
	for _, s := range sections {
		results = append(results, SectionResult{
			Text:     s.Text,
			Summary:  s.Summary,
			Page:     s.Page + 1,
			Position: [4]float64{s.BBox.X0, s.BBox.Y0, s.BBox.X1, s.BBox.Y1},
		})
	}
	return results, nil
}

// Compress re-serializes the document with recompressed streams.
func (p *Processor) Compress(ctx context.Context, data []byte) ([]byte, error) {
	var out []byte
	err := p.run(ctx, func() error {
		var cerr error
		out, cerr = compress.Compress(data, p.log)
		return cerr
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// summarizedSections runs extract -> build -> summarize.
func (p *Processor) summarizedSections(ctx context.Context, data []byte) ([]section.Section, *extractor.Result, error) {
	var res *extractor.Result
	err := p.run(ctx, func() error {
		var xerr error
		res, xerr = extractor.Extract(data)
		return xerr
	})
	if err != nil {
		return nil, nil, err
	}

	sections := section.NewBuilder(p.cfg.Proximity).Build(res.Fragments)
	p.log.Debug("built sections", "fragments", len(res.Fragments), "sections", len(sections), "pages", res.Pages)

	p.adapter.All(ctx, sections)
	return sections, res, nil
}

// buildDocument assembles the composition input: every original page in
// order, each with its fragments and freshly laid-out annotation set.
func (p *Processor) buildDocument(data []byte, res *extractor.Result, sections []section.Section, engine *layout.Engine) *compose.Document {
	fragsByPage := make(map[int][]extractor.TextFragment)
	for _, f := range res.Fragments {
		fragsByPage[f.Page] = append(fragsByPage[f.Page], f)
	}
	secsByPage := section.PerPage(sections)

	doc := &compose.Document{
		Original:   data,
		PageWidth:  p.cfg.PageWidth,
		PageHeight: p.cfg.PageHeight,
		Pages:      make([]compose.Page, 0, res.Pages),
	}
	for i := 0; i < res.Pages; i++ {
		set := engine.Page(i, secsByPage[i], p.cfg.PageHeight)
		if set.Overflow {
			p.log.Warn("sidebar overflows page", "page", i+1, "entries", len(set.Sidebar))
		}
		doc.Pages = append(doc.Pages, compose.Page{
			Number:      i,
			Fragments:   fragsByPage[i],
			Annotations: set,
		})
	}
	return doc
}

func (p *Processor) geometry() layout.Geometry {
	geom := layout.DefaultGeometry()
	geom.SidebarWidth = p.cfg.SidebarWidth
	return geom
}
