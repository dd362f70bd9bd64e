package aur

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// ErrMetadataUnavailable means the registry gave no usable result for a
// package. Analysis must not proceed without metadata.
var ErrMetadataUnavailable = errors.New("aur: package metadata unavailable")

type rpcInfoEnvelope struct {
	ResultCount int               `json:"resultcount"`
	Type        string            `json:"type"`
	Version     int               `json:"version"`
	Results     []PackageMetadata `json:"results"`
}

// Metadata queries the v5 info RPC and unwraps its envelope.
func (c *Client) Metadata(ctx context.Context, packageName string) (PackageMetadata, error) {
	endpoint := c.base + "/rpc/v5/info/" + url.PathEscape(packageName)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return PackageMetadata{}, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return PackageMetadata{}, fmt.Errorf("%w: %v", ErrMetadataUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return PackageMetadata{}, fmt.Errorf("%w: registry returned %s", ErrMetadataUnavailable, resp.Status)
	}
	var env rpcInfoEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return PackageMetadata{}, fmt.Errorf("%w: decode envelope: %v", ErrMetadataUnavailable, err)
	}
	if env.ResultCount == 0 || len(env.Results) == 0 {
		return PackageMetadata{}, fmt.Errorf("%w: no results for %q", ErrMetadataUnavailable, packageName)
	}
	return env.Results[0], nil
}
