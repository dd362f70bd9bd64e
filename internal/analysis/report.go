package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"pkgcheck/internal/aur"
	"pkgcheck/internal/llm"
)

// reportSystemPrompt fixes the analyzer persona, the evaluation guidelines
// and the section structure of the narrative report. The section names are
// a contract: the summary extraction stage relies on reports following them
// even though it never machine-parses the text.
const reportSystemPrompt = `[PURPOSE]
You are an advanced AUR package safety analyzer. You evaluate Arch Linux
packages by examining their PKGBUILD, registry metadata and community
feedback to assess security risks and trustworthiness.

[GUIDELINES]
- focus on concrete security indicators and trust signals
- inspect the PKGBUILD for unsafe practices: opaque binary downloads,
  unpinned sources, missing checksums, curl-pipe-shell patterns
- weigh popularity, update cadence and maintainer track record
- highlight both positive and negative findings
- provide clear, actionable conclusions
- maintain a professional but conversational tone

[OUTPUT_FORMAT]
Generate a security report with exactly these sections:

1. TRUST SIGNALS
- package popularity and update frequency
- maintainer track record
- community sentiment summary

2. SECURITY ANALYSIS
- PKGBUILD inspection results
- dependency evaluation
- identified risk patterns

3. VERDICT
- clear install recommendation
- key concerns (if any)
- suggested precautions

Keep sections concise but thorough. Use markdown for formatting.`

// GenerateReport renders the evidence into the fixed prompt and asks the
// model for a narrative report. The text comes back unmodified.
func GenerateReport(ctx context.Context, client llm.Client, ev aur.Evidence) (string, error) {
	text, err := client.GenerateText(ctx, reportSystemPrompt, reportUserMessage(ev))
	if err != nil {
		return "", fmt.Errorf("%w: %v", llm.ErrGenerationUnavailable, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: model returned an empty report", llm.ErrGenerationUnavailable)
	}
	return text, nil
}

func reportUserMessage(ev aur.Evidence) string {
	metadata := mustJSON(ev.Metadata)
	comments := mustJSON(ev.Comments)

	var sb strings.Builder
	sb.WriteString("Analyze the package and provide a detailed report.\n\n")
	sb.WriteString("[PACKAGE_CONTEXT]\n")
	sb.WriteString("Metadata:\n" + metadata + "\n\n")
	sb.WriteString("PKGBUILD:\n" + ev.Build + "\n\n")
	sb.WriteString("Comments:\n" + comments + "\n")
	return sb.String()
}

func mustJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "null"
	}
	return string(b)
}
