package analysis

import (
	"errors"
	"fmt"

	genai "google.golang.org/genai"
)

// ErrSchemaExtractionFailed means the structured generation step could not
// produce a summary conforming to the schema.
var ErrSchemaExtractionFailed = errors.New("analysis: schema extraction failed")

const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"

	ColorGreen  = "green"
	ColorYellow = "yellow"
	ColorRed    = "red"

	RecommendInstall = "install"
	RecommendCaution = "proceed with caution"
	RecommendAvoid   = "avoid"
)

// Summary is the fixed-shape, UI-ready distillation of a narrative report.
// It is the only machine-validated output in the pipeline.
type Summary struct {
	Name           string   `json:"name"`
	RiskLevel      string   `json:"riskLevel"`
	RiskColor      string   `json:"riskColor"`
	Summary        string   `json:"summary"`
	Recommendation string   `json:"recommendation"`
	KeyPoints      []string `json:"keyPoints"`
	TopConcerns    []string `json:"topConcerns"`
	CommentsFYI    string   `json:"commentsFYI"`
}

// Validate enforces the enum constraints. Conformance failures are reported,
// never silently coerced.
func (s Summary) Validate() error {
	switch s.RiskLevel {
	case RiskLow, RiskMedium, RiskHigh:
	default:
		return fmt.Errorf("riskLevel %q is not one of low/medium/high", s.RiskLevel)
	}
	switch s.RiskColor {
	case ColorGreen, ColorYellow, ColorRed:
	default:
		return fmt.Errorf("riskColor %q is not one of green/yellow/red", s.RiskColor)
	}
	switch s.Recommendation {
	case RecommendInstall, RecommendCaution, RecommendAvoid:
	default:
		return fmt.Errorf("recommendation %q is not one of install/proceed with caution/avoid", s.Recommendation)
	}
	return nil
}

// riskColorFor keeps the badge color a pure function of the risk level
// instead of trusting two independently generated enum fields.
func riskColorFor(riskLevel string) string {
	switch riskLevel {
	case RiskLow:
		return ColorGreen
	case RiskMedium:
		return ColorYellow
	default:
		return ColorRed
	}
}

// summarySchema constrains the structured generation call to the Summary
// shape. The capability either returns a conformant object or fails.
func summarySchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name": {
				Type:        genai.TypeString,
				Description: "Exact package name the report is about.",
			},
			"riskLevel": {
				Type: genai.TypeString,
				Enum: []string{RiskLow, RiskMedium, RiskHigh},
			},
			"riskColor": {
				Type: genai.TypeString,
				Enum: []string{ColorGreen, ColorYellow, ColorRed},
			},
			"summary": {
				Type:        genai.TypeString,
				Description: "One scannable sentence, at most 100 characters.",
			},
			"recommendation": {
				Type: genai.TypeString,
				Enum: []string{RecommendInstall, RecommendCaution, RecommendAvoid},
			},
			"keyPoints": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "Short bullet points worth knowing before installing.",
			},
			"topConcerns": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "Short bullet points for concrete concerns. May be empty.",
			},
			"commentsFYI": {
				Type:        genai.TypeString,
				Description: "Anything notable from user comments. May be empty.",
			},
		},
		Required: []string{"name", "riskLevel", "riskColor", "summary", "recommendation", "keyPoints", "topConcerns", "commentsFYI"},
	}
}
