package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pkgcheck/internal/analysis"
)

// Analyzer is the remote pipeline boundary as the orchestrator sees it.
type Analyzer interface {
	Analyze(ctx context.Context, packageName, password string) (analysis.Result, error)
}

// APIClient talks to the pkgcheck API server.
type APIClient struct {
	base  string
	token string
	http  *http.Client
}

func NewAPIClient(base, token string, hc *http.Client) *APIClient {
	if hc == nil {
		// Generation runs are slow and there is no cancellation path,
		// so the timeout is generous.
		hc = &http.Client{Timeout: 5 * time.Minute}
	}
	return &APIClient{
		base:  strings.TrimRight(strings.TrimSpace(base), "/"),
		token: token,
		http:  hc,
	}
}

func (c *APIClient) Analyze(ctx context.Context, packageName, password string) (analysis.Result, error) {
	endpoint := c.base + "/analyze?package=" + url.QueryEscape(packageName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return analysis.Result{}, err
	}
	token := strings.TrimSpace(password)
	if token == "" {
		token = c.token
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return analysis.Result{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		const max = 2048
		if len(body) > max {
			body = body[:max]
		}
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return analysis.Result{}, fmt.Errorf("api: %s", apiErr.Error)
		}
		return analysis.Result{}, fmt.Errorf("api: unexpected status %s: %s", resp.Status, string(body))
	}

	var result analysis.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return analysis.Result{}, fmt.Errorf("api: decode response: %w", err)
	}
	return result, nil
}
