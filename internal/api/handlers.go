package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/summitlabs/summit/internal/compose"
	"github.com/summitlabs/summit/internal/extractor"
)

var pdfMagic = []byte("%PDF-")

func (s *Server) handleAnnotate(w http.ResponseWriter, r *http.Request) {
	data, filename, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	out, err := s.processor.Annotate(r.Context(), data)
	if err != nil {
		s.pipelineError(w, err)
		return
	}
	writePDF(w, out, "annotated_"+filename)
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	data, _, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	sections, err := s.processor.Summarize(r.Context(), data)
	if err != nil {
		s.pipelineError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"sections": sections})
}

func (s *Server) handleCompress(w http.ResponseWriter, r *http.Request) {
	data, filename, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	out, err := s.processor.Compress(r.Context(), data)
	if err != nil {
		s.pipelineError(w, err)
		return
	}
	writePDF(w, out, "compressed_"+filename)
}

func (s *Server) handleLLMStats(w http.ResponseWriter, r *http.Request) {
	if s.stats == nil {
		jsonError(w, "llm stats unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"model": s.model,
		"stats": s.stats.Snapshot(),
	})
}

// readUpload validates and reads the multipart "pdf_file" field: size
// ceiling, .pdf extension, and PDF magic bytes (extension alone is not
// trusted). On failure it writes the error response and returns ok=false.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (data []byte, filename string, ok bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
			return nil, "", false
		}
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return nil, "", false
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("pdf_file")
	if err != nil {
		jsonError(w, "pdf_file is required: "+err.Error(), http.StatusBadRequest)
		return nil, "", false
	}
	defer file.Close()

	filename = sanitizeFilename(header.Filename)
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		jsonError(w, "Only PDF files are allowed", http.StatusBadRequest)
		return nil, "", false
	}

	data, err = io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return nil, "", false
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return nil, "", false
	}
	if !bytes.HasPrefix(data, pdfMagic) {
		jsonError(w, "Invalid file type. Only PDF files are allowed.", http.StatusBadRequest)
		return nil, "", false
	}

	return data, filename, true
}

// pipelineError maps the pipeline's fatal error taxonomy onto transport
// statuses: unreadable input is the client's fault, a failed composition is
// ours.
func (s *Server) pipelineError(w http.ResponseWriter, err error) {
	var exErr *extractor.ExtractionError
	var coErr *compose.CompositionError
	switch {
	case errors.As(err, &exErr):
		jsonError(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &coErr):
		jsonError(w, err.Error(), http.StatusInternalServerError)
	default:
		jsonError(w, err.Error(), http.StatusInternalServerError)
	}
}

func writePDF(w http.ResponseWriter, data []byte, filename string) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed.pdf"
	}
	return name
}
