package agent

import (
	"fmt"
	"net/url"
	"strings"
)

// PackageNameFromURL extracts the package name from an AUR package page
// URL. Anything that is not a package page is rejected before any request
// is issued.
func PackageNameFromURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("agent: not a valid URL: %v", err)
	}
	if u.Host != "aur.archlinux.org" || !strings.HasPrefix(u.Path, "/packages/") {
		return "", fmt.Errorf("agent: %q is not an AUR package page", raw)
	}
	name := strings.Trim(strings.TrimPrefix(u.Path, "/packages/"), "/")
	if name == "" || strings.Contains(name, "/") {
		return "", fmt.Errorf("agent: no package name in %q", raw)
	}
	return name, nil
}
