package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	genai "google.golang.org/genai"

	"pkgcheck/internal/aur"
	"pkgcheck/internal/llm"
)

func newFakeAUR(t *testing.T) *aur.Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/cgit/aur.git/plain/PKGBUILD", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "pkgname=yay\n")
	})
	mux.HandleFunc("/rpc/v5/info/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"resultcount":1,"version":5,"results":[{"ID":1,"Name":"yay","NumVotes":2042}]}`)
	})
	mux.HandleFunc("/packages/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body></body></html>")
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return aur.NewClient(srv.URL, srv.Client())
}

func TestPipeline_StrictComposition(t *testing.T) {
	const report = "## TRUST SIGNALS\nwidely used\n## VERDICT\ninstall"

	var extractorInput string
	fake := &llm.FakeClient{
		TextFunc: func(_ context.Context, _, _ string) (string, error) {
			return report, nil
		},
		ObjectFunc: func(_ context.Context, _, user string, _ *genai.Schema) (json.RawMessage, error) {
			extractorInput = user
			return json.RawMessage(validSummaryJSON), nil
		},
	}

	p := NewPipeline(newFakeAUR(t), fake, nil, nil)
	res, err := p.Analyze(context.Background(), "yay")
	if err != nil {
		t.Fatalf("analyze error: %v", err)
	}

	if res.Report != report {
		t.Errorf("report = %q, want generator output verbatim", res.Report)
	}
	if extractorInput != report {
		t.Errorf("extractor saw %q, want the report text verbatim", extractorInput)
	}
	if res.Summary.Name != "yay" {
		t.Errorf("summary = %+v", res.Summary)
	}
}

func TestPipeline_PropagatesGenerationFailure(t *testing.T) {
	fake := &llm.FakeClient{
		TextFunc: func(_ context.Context, _, _ string) (string, error) {
			return "", errors.New("model down")
		},
	}
	p := NewPipeline(newFakeAUR(t), fake, nil, nil)
	_, err := p.Analyze(context.Background(), "yay")
	if !errors.Is(err, llm.ErrGenerationUnavailable) {
		t.Fatalf("expected ErrGenerationUnavailable, got %v", err)
	}
}

func TestPipeline_PropagatesExtractionFailure(t *testing.T) {
	fake := &llm.FakeClient{
		ObjectFunc: func(_ context.Context, _, _ string, _ *genai.Schema) (json.RawMessage, error) {
			return nil, errors.New("schema rejected")
		},
	}
	p := NewPipeline(newFakeAUR(t), fake, nil, nil)
	_, err := p.Analyze(context.Background(), "yay")
	if !errors.Is(err, ErrSchemaExtractionFailed) {
		t.Fatalf("expected ErrSchemaExtractionFailed, got %v", err)
	}
}
