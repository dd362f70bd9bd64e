package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	genai "google.golang.org/genai"
)

// GeminiClient is a thin wrapper around the official genai client. The API
// key is read by the genai client from the environment (GOOGLE_API_KEY).
type GeminiClient struct {
	cli   *genai.Client
	model string
}

func NewGeminiClient(ctx context.Context, model string) (*GeminiClient, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, err
	}
	return &GeminiClient{cli: cli, model: model}, nil
}

// GeminiFactory opens GeminiClients for the comparison path.
func GeminiFactory(ctx context.Context, model string) (Client, error) {
	return NewGeminiClient(ctx, model)
}

func (g *GeminiClient) Name() string { return "Gemini:" + g.model }
func (g *GeminiClient) Close() error { return nil }

func (g *GeminiClient) GenerateText(ctx context.Context, system, user string) (string, error) {
	return g.generate(ctx, system, user, &genai.GenerateContentConfig{})
}

func (g *GeminiClient) GenerateObject(ctx context.Context, system, user string, schema *genai.Schema) (json.RawMessage, error) {
	txt, err := g.generate(ctx, system, user, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		return nil, err
	}
	raw := json.RawMessage(txt)
	if !json.Valid(raw) {
		return nil, fmt.Errorf("%w: model returned invalid JSON", ErrGenerationUnavailable)
	}
	return raw, nil
}

func (g *GeminiClient) generate(ctx context.Context, system, user string, cfg *genai.GenerateContentConfig) (string, error) {
	cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: system}}}
	log.Printf("llm: request to %s: %d bytes", g.Name(), len(system)+len(user))

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		resp, err := g.cli.Models.GenerateContent(ctx, g.model,
			[]*genai.Content{{Parts: []*genai.Part{{Text: user}}}},
			cfg,
		)
		if err != nil {
			lastErr = err
		} else if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
			lastErr = fmt.Errorf("%w: empty candidates", ErrGenerationUnavailable)
		} else {
			txt := resp.Candidates[0].Content.Parts[0].Text
			if strings.TrimSpace(txt) == "" {
				lastErr = fmt.Errorf("%w: empty text", ErrGenerationUnavailable)
			} else {
				return txt, nil
			}
		}
		time.Sleep(time.Duration(300*(1<<attempt)) * time.Millisecond)
	}
	return "", lastErr
}
