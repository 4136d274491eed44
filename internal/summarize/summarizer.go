// Package summarize assigns a short natural-language summary to every
// section of a document. Long sections go through an external summarizer;
// short sections pass through as their own summary.
package summarize

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/summitlabs/summit/internal/section"
)

const (
	// DefaultWordThreshold is the word count above which a section is sent
	// to the external summarizer.
	DefaultWordThreshold = 20

	// ErrorSentinel is the summary assigned when a summarizer call fails.
	// A single failed call never aborts the batch.
	ErrorSentinel = "Error generating summary"
)

// Summarizer is the external summarization capability. Latency and failure
// modes are opaque; replies are arbitrary free text.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Adapter decides which sections need an external summary and fans the calls
// out concurrently. Calls are independent per section, so end-to-end latency
// is bounded by the slowest single call rather than the sum.
type Adapter struct {
	summarizer    Summarizer
	log           *slog.Logger
	wordThreshold int
	maxConcurrent int
}

func NewAdapter(s Summarizer, log *slog.Logger, wordThreshold, maxConcurrent int) *Adapter {
	if wordThreshold <= 0 {
		wordThreshold = DefaultWordThreshold
	}
	if maxConcurrent <= 0 {
		maxConcurrent = 8
	}
	return &Adapter{
		summarizer:    s,
		log:           log,
		wordThreshold: wordThreshold,
		maxConcurrent: maxConcurrent,
	}
}

// All assigns every section a summary, mutating the slice in place. Sections
// at or below the word threshold get their own text back without an external
// call. Each goroutine writes only its own element, so no locking is needed.
func (a *Adapter) All(ctx context.Context, sections []section.Section) {
	sem := make(chan struct{}, a.maxConcurrent)
	var wg sync.WaitGroup

	for i := range sections {
		s := &sections[i]
		if wordCount(s.Text) <= a.wordThreshold {
			s.Summary = s.Text
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			summary, err := a.summarizer.Summarize(ctx, s.Text)
			if err != nil || strings.TrimSpace(summary) == "" {
				a.log.Warn("summarization failed", "section", s.ID, "page", s.Page, "error", err)
				s.Summary = ErrorSentinel
				return
			}
			s.Summary = summary
		}()
	}

	wg.Wait()
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}
