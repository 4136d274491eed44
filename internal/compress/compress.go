// Package compress re-serializes a PDF with recompressed internal object
// streams. It shares no state with the annotation pipeline.
package compress

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Compress optimizes the document and returns the re-serialized bytes.
func Compress(data []byte, log *slog.Logger) ([]byte, error) {
	var out bytes.Buffer
	conf := model.NewDefaultConfiguration()
	if err := api.Optimize(bytes.NewReader(data), &out, conf); err != nil {
		return nil, fmt.Errorf("optimize pdf: %w", err)
	}

	initial := len(data)
	final := out.Len()
	var ratio float64
	if initial > 0 {
		ratio = (1 - float64(final)/float64(initial)) * 100
	}
	log.Info("compressed pdf",
		"initial_kb", float64(initial)/1024,
		"final_kb", float64(final)/1024,
		"ratio_pct", ratio,
	)
	return out.Bytes(), nil
}
