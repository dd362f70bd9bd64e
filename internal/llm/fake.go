package llm

import (
	"context"
	"encoding/json"

	genai "google.golang.org/genai"
)

// FakeClient returns deterministic payloads for offline use and tests. Any
// unset hook falls back to a minimal canned response.
type FakeClient struct {
	TextFunc   func(ctx context.Context, system, user string) (string, error)
	ObjectFunc func(ctx context.Context, system, user string, schema *genai.Schema) (json.RawMessage, error)
}

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }

func (f *FakeClient) GenerateText(ctx context.Context, system, user string) (string, error) {
	if f.TextFunc != nil {
		return f.TextFunc(ctx, system, user)
	}
	return "fake report", nil
}

func (f *FakeClient) GenerateObject(ctx context.Context, system, user string, schema *genai.Schema) (json.RawMessage, error) {
	if f.ObjectFunc != nil {
		return f.ObjectFunc(ctx, system, user, schema)
	}
	return json.RawMessage(`{}`), nil
}
