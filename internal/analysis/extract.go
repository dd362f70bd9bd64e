package analysis

import (
	"context"
	"encoding/json"
	"fmt"

	"pkgcheck/internal/llm"
)

// extractSystemPrompt fixes the report-to-summary transformation task. The
// field set and enum constraints live in the response schema, not here.
const extractSystemPrompt = `[PURPOSE]
You turn a narrative AUR package security report into a scannable,
structured summary for a small popup card.

[RULES]
- base every field only on the report you are given
- keep "summary" to a single sentence of at most 100 characters
- keyPoints and topConcerns are short phrases, not paragraphs
- topConcerns may be empty when the report raises none
- commentsFYI carries anything notable from user comments, or is empty
- riskLevel, riskColor and recommendation must use the allowed values only`

// ExtractSummary renders the report into the extraction prompt and invokes
// the schema-constrained generation call. The returned object either
// conforms to the Summary shape or the call fails; there is no hand repair
// of free text. No semantic cross-checks happen here, except that the badge
// color is derived from the risk level rather than trusted independently.
func ExtractSummary(ctx context.Context, client llm.Client, report string) (Summary, error) {
	raw, err := client.GenerateObject(ctx, extractSystemPrompt, report, summarySchema())
	if err != nil {
		return Summary{}, fmt.Errorf("%w: %v", ErrSchemaExtractionFailed, err)
	}
	var s Summary
	if err := json.Unmarshal(raw, &s); err != nil {
		return Summary{}, fmt.Errorf("%w: decode: %v", ErrSchemaExtractionFailed, err)
	}
	if err := s.Validate(); err != nil {
		return Summary{}, fmt.Errorf("%w: %v", ErrSchemaExtractionFailed, err)
	}
	s.RiskColor = riskColorFor(s.RiskLevel)
	return s, nil
}
