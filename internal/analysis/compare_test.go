package analysis

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"pkgcheck/internal/llm"
)

func TestCompare_LabeledResultsInOrder(t *testing.T) {
	models := []llm.ModelRef{
		{Name: "flash", Model: "gemini-2.0-flash-001"},
		{Name: "pro", Model: "gemini-2.0-pro-exp-02-05"},
	}
	factory := func(_ context.Context, model string) (llm.Client, error) {
		return &llm.FakeClient{
			TextFunc: func(_ context.Context, _, _ string) (string, error) {
				return "report from " + model, nil
			},
		}, nil
	}

	p := NewPipeline(newFakeAUR(t), &llm.FakeClient{}, models, factory)
	results, err := p.Compare(context.Background(), "yay")
	if err != nil {
		t.Fatalf("compare error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Model != "flash" || results[0].Report != "report from gemini-2.0-flash-001" {
		t.Errorf("results[0] = %+v", results[0])
	}
	if results[1].Model != "pro" || results[1].Report != "report from gemini-2.0-pro-exp-02-05" {
		t.Errorf("results[1] = %+v", results[1])
	}
}

func TestCompare_NoModelsConfigured(t *testing.T) {
	p := NewPipeline(newFakeAUR(t), &llm.FakeClient{}, nil, llm.GeminiFactory)
	if _, err := p.Compare(context.Background(), "yay"); err == nil {
		t.Fatal("expected error when no comparison models are configured")
	}
}

func TestCompare_ModelFailureIsLabeled(t *testing.T) {
	models := []llm.ModelRef{{Name: "flaky", Model: "flaky-model"}}
	factory := func(_ context.Context, model string) (llm.Client, error) {
		return &llm.FakeClient{
			TextFunc: func(_ context.Context, _, _ string) (string, error) {
				return "", fmt.Errorf("quota exceeded")
			},
		}, nil
	}
	p := NewPipeline(newFakeAUR(t), &llm.FakeClient{}, models, factory)
	_, err := p.Compare(context.Background(), "yay")
	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.Error(); !strings.Contains(got, "flaky") {
		t.Errorf("error %q does not name the failing model", got)
	}
}
