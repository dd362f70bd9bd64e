package agent

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"pkgcheck/internal/analysis"
	"pkgcheck/internal/store"
)

const yayURL = "https://aur.archlinux.org/packages/yay"

type fakeAnalyzer struct {
	calls   atomic.Int64
	result  analysis.Result
	err     error
	release chan struct{}
}

func (f *fakeAnalyzer) Analyze(_ context.Context, packageName, _ string) (analysis.Result, error) {
	f.calls.Add(1)
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return analysis.Result{}, f.err
	}
	return f.result, nil
}

func okResult() analysis.Result {
	return analysis.Result{
		Report: "## VERDICT\ninstall",
		Summary: analysis.Summary{
			Name:           "yay",
			RiskLevel:      analysis.RiskLow,
			RiskColor:      analysis.ColorGreen,
			Summary:        "fine",
			Recommendation: analysis.RecommendInstall,
			KeyPoints:      []string{"popular"},
			TopConcerns:    []string{},
		},
	}
}

func newTestOrchestrator(t *testing.T, api Analyzer) (*Orchestrator, *store.Store, chan Completion) {
	t.Helper()
	st := store.New(filepath.Join(t.TempDir(), "packages.json"))
	done := make(chan Completion, 8)
	orch := NewOrchestrator(st, api, func(c Completion) { done <- c })
	return orch, st, done
}

func waitCompletion(t *testing.T, ch chan Completion) Completion {
	t.Helper()
	select {
	case c := <-ch:
		return c
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for completion")
		return Completion{}
	}
}

func TestOrchestrator_FreshAnalysisPersists(t *testing.T) {
	api := &fakeAnalyzer{result: okResult()}
	orch, st, done := newTestOrchestrator(t, api)

	orch.Analyze(yayURL, "")
	c := waitCompletion(t, done)

	if !c.Success || c.PackageName != "yay" {
		t.Fatalf("completion = %+v", c)
	}
	if c.Data == nil || c.Data.Report != "## VERDICT\ninstall" {
		t.Fatalf("completion data = %+v", c.Data)
	}
	if _, ok := st.Lookup("yay"); !ok {
		t.Fatal("record not persisted")
	}
	if got := orch.StateOf("yay"); got != StateCompleted {
		t.Errorf("state = %s, want completed", got)
	}
}

func TestOrchestrator_CachePrecedence(t *testing.T) {
	api := &fakeAnalyzer{result: okResult()}
	orch, st, done := newTestOrchestrator(t, api)

	if _, err := st.Insert(store.AnalyzedPackage{PackageName: "yay", Summary: okResult().Summary, Report: "cached"}); err != nil {
		t.Fatal(err)
	}

	orch.Analyze(yayURL, "")
	c := waitCompletion(t, done)

	if !c.Success || c.Data == nil || c.Data.Report != "cached" {
		t.Fatalf("expected cached record, got %+v", c)
	}
	if got := api.calls.Load(); got != 0 {
		t.Errorf("pipeline called %d times despite cache hit", got)
	}
	if got := orch.StateOf("yay"); got != StateCached {
		t.Errorf("state = %s, want cached", got)
	}
}

func TestOrchestrator_FailureDoesNotPersist(t *testing.T) {
	api := &fakeAnalyzer{err: errors.New("generation unavailable")}
	orch, st, done := newTestOrchestrator(t, api)

	orch.Analyze(yayURL, "")
	c := waitCompletion(t, done)

	if c.Success {
		t.Fatal("expected failure completion")
	}
	if c.Error == "" {
		t.Error("error message missing")
	}
	if _, ok := st.Lookup("yay"); ok {
		t.Error("failed analysis must not persist a record")
	}
	if got := orch.StateOf("yay"); got != StateFailed {
		t.Errorf("state = %s, want failed", got)
	}
}

func TestOrchestrator_ForceReanalyze(t *testing.T) {
	api := &fakeAnalyzer{result: okResult()}
	orch, st, done := newTestOrchestrator(t, api)

	for i := 0; i < 2; i++ {
		if _, err := st.Insert(store.AnalyzedPackage{PackageName: "yay", Summary: okResult().Summary, Report: "stale"}); err != nil {
			t.Fatal(err)
		}
	}

	orch.ForceReanalyze(yayURL, "")
	c := waitCompletion(t, done)

	if !c.Success {
		t.Fatalf("completion = %+v", c)
	}
	rows, err := st.ListByName("yay")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected exactly one record after reanalyze, got %d", len(rows))
	}
	if rows[0].Report != "## VERDICT\ninstall" {
		t.Errorf("kept the stale record: %q", rows[0].Report)
	}
	if got := api.calls.Load(); got != 1 {
		t.Errorf("pipeline calls = %d, want 1", got)
	}
}

func TestOrchestrator_CoalescesInFlight(t *testing.T) {
	api := &fakeAnalyzer{result: okResult(), release: make(chan struct{})}
	orch, _, done := newTestOrchestrator(t, api)

	orch.Analyze(yayURL, "")
	orch.Analyze(yayURL, "") // coalesced into the pending request
	close(api.release)

	waitCompletion(t, done)
	if got := api.calls.Load(); got != 1 {
		t.Errorf("pipeline calls = %d, want 1", got)
	}
}

func TestOrchestrator_RejectsNonAURPage(t *testing.T) {
	api := &fakeAnalyzer{result: okResult()}
	orch, _, done := newTestOrchestrator(t, api)

	orch.Analyze("https://example.com/packages/yay", "")
	c := waitCompletion(t, done)
	if c.Success {
		t.Fatal("expected failure for non-AUR URL")
	}
	if got := api.calls.Load(); got != 0 {
		t.Errorf("pipeline called for invalid URL")
	}
}
