package analysis

import (
	"context"

	"pkgcheck/internal/aur"
	"pkgcheck/internal/llm"
)

// Result is the externally visible outcome of one analysis.
type Result struct {
	Report  string  `json:"report"`
	Summary Summary `json:"summary"`
}

// Pipeline composes evidence collection, report generation and summary
// extraction into one request/response unit. It persists nothing; caching
// is the caller's concern.
type Pipeline struct {
	aur     *aur.Client
	client  llm.Client
	models  []llm.ModelRef
	factory llm.Factory
}

func NewPipeline(aurClient *aur.Client, client llm.Client, models []llm.ModelRef, factory llm.Factory) *Pipeline {
	return &Pipeline{aur: aurClient, client: client, models: models, factory: factory}
}

// Analyze runs collect, report and summary strictly in order. Extraction
// sees the full report text verbatim; no stage re-fetches evidence.
// Failures from any stage propagate unchanged.
func (p *Pipeline) Analyze(ctx context.Context, packageName string) (Result, error) {
	ev, err := p.aur.Collect(ctx, packageName)
	if err != nil {
		return Result{}, err
	}
	report, err := GenerateReport(ctx, p.client, ev)
	if err != nil {
		return Result{}, err
	}
	summary, err := ExtractSummary(ctx, p.client, report)
	if err != nil {
		return Result{}, err
	}
	return Result{Report: report, Summary: summary}, nil
}
