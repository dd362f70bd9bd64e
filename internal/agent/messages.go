package agent

import "pkgcheck/internal/store"

const (
	MessageTypeAnalyze         = "analyzePackage"
	MessageTypeForceReanalyze  = "forceReanalyzePackage"
	MessageTypeAnalyzeComplete = "analyzePackageComplete"
)

// Request is what the popup sends over the message channel. Password rides
// along so the popup can supply the API bearer token per request.
type Request struct {
	Type     string `json:"type"`
	URL      string `json:"url"`
	Password string `json:"password"`
}

// Completion is the asynchronous notification sent back once an analysis
// settles, whether from cache or from a fresh pipeline run.
type Completion struct {
	Type        string                 `json:"type"`
	Success     bool                   `json:"success"`
	PackageName string                 `json:"packageName"`
	Data        *store.AnalyzedPackage `json:"data,omitempty"`
	Error       string                 `json:"error,omitempty"`
}

func completionOK(packageName string, rec store.AnalyzedPackage) Completion {
	return Completion{
		Type:        MessageTypeAnalyzeComplete,
		Success:     true,
		PackageName: packageName,
		Data:        &rec,
	}
}

func completionErr(packageName string, err error) Completion {
	return Completion{
		Type:        MessageTypeAnalyzeComplete,
		Success:     false,
		PackageName: packageName,
		Error:       err.Error(),
	}
}
