package aur

import (
	"net/http"
	"strings"
	"time"
)

const DefaultBaseURL = "https://aur.archlinux.org"

const (
	// commentPageSize is the offset step the AUR comment pager uses.
	commentPageSize = 10
	// maxCommentOffset bounds comment fetching to four pages. Trades
	// completeness for a fixed worst-case cost per analysis; raise it if
	// deeper comment history turns out to matter.
	maxCommentOffset = 30
)

// Client fetches package evidence from the AUR website and RPC.
type Client struct {
	base string
	http *http.Client
}

func NewClient(baseURL string, hc *http.Client) *Client {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{base: base, http: hc}
}
