package aur

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Pkgbuild fetches the raw build script for a package. The script is not
// interpreted here; callers get the text trimmed of surrounding whitespace.
func (c *Client) Pkgbuild(ctx context.Context, packageName string) (string, error) {
	endpoint := c.base + "/cgit/aur.git/plain/PKGBUILD?h=" + url.QueryEscape(packageName)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("aur: pkgbuild fetch returned %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(body)), nil
}
