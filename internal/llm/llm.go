package llm

import (
	"context"
	"encoding/json"
	"errors"

	genai "google.golang.org/genai"
)

// ErrGenerationUnavailable means a generation call failed outright or came
// back empty.
var ErrGenerationUnavailable = errors.New("llm: generation unavailable")

// Client is the generation capability the analysis pipeline consumes.
type Client interface {
	Name() string
	Close() error
	// GenerateText returns free-form text for a system instruction plus
	// one user message.
	GenerateText(ctx context.Context, system, user string) (string, error)
	// GenerateObject returns JSON conforming to schema, or an error. It
	// never hands back non-conformant output for the caller to repair.
	GenerateObject(ctx context.Context, system, user string, schema *genai.Schema) (json.RawMessage, error)
}

// Factory opens a client bound to one named model. Used by the multi-model
// comparison path, which needs a client per model identifier.
type Factory func(ctx context.Context, model string) (Client, error)
