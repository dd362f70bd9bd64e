package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"pkgcheck/internal/analysis"
	"pkgcheck/internal/aur"
	"pkgcheck/internal/llm"
)

// Analyzer is the pipeline boundary the HTTP layer talks to.
type Analyzer interface {
	Analyze(ctx context.Context, packageName string) (analysis.Result, error)
	Compare(ctx context.Context, packageName string) ([]analysis.ModelReport, error)
}

// Archiver persists successful analyses out of band. May be nil.
type Archiver interface {
	SaveAnalysis(ctx context.Context, packageName, report string, summaryJSON []byte) error
}

type AnalyzeHandler struct {
	pipeline Analyzer
	archive  Archiver
}

func NewAnalyzeHandler(pipeline Analyzer, archive Archiver) *AnalyzeHandler {
	return &AnalyzeHandler{pipeline: pipeline, archive: archive}
}

func (h *AnalyzeHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	packageName := strings.TrimSpace(r.URL.Query().Get("package"))
	if packageName == "" {
		http.Error(w, "Invalid request: Package name is required", http.StatusBadRequest)
		return
	}

	result, err := h.pipeline.Analyze(r.Context(), packageName)
	if err != nil {
		writeAnalysisError(w, packageName, err)
		return
	}

	h.archiveResult(r.Context(), packageName, result)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)
}

func (h *AnalyzeHandler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	packageName := strings.TrimSpace(r.URL.Query().Get("package"))
	if packageName == "" {
		http.Error(w, "Invalid request: Package name is required", http.StatusBadRequest)
		return
	}

	results, err := h.pipeline.Compare(r.Context(), packageName)
	if err != nil {
		writeAnalysisError(w, packageName, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"results": results})
}

func (h *AnalyzeHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("pkgcheck api\n"))
}

func (h *AnalyzeHandler) archiveResult(ctx context.Context, packageName string, result analysis.Result) {
	if h.archive == nil {
		return
	}
	summaryJSON, err := json.Marshal(result.Summary)
	if err != nil {
		log.Printf("api: marshal summary for archive: %v", err)
		return
	}
	if err := h.archive.SaveAnalysis(ctx, packageName, result.Report, summaryJSON); err != nil {
		log.Printf("api: archive analysis for %s: %v", packageName, err)
	}
}

// writeAnalysisError maps pipeline failures to the boundary. Everything in
// the taxonomy is an upstream dependency failing, so they all surface as
// 502 with the failure kind in the body.
func writeAnalysisError(w http.ResponseWriter, packageName string, err error) {
	log.Printf("api: analysis for %s failed: %v", packageName, err)
	status := http.StatusBadGateway
	switch {
	case errors.Is(err, aur.ErrMetadataUnavailable):
	case errors.Is(err, llm.ErrGenerationUnavailable):
	case errors.Is(err, analysis.ErrSchemaExtractionFailed):
	default:
		status = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
