package aur

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
)

// Comments walks the paginated comment listing in offset steps of
// commentPageSize, stopping at the first empty page, the first transport
// failure (partial results are kept, not retried) or maxCommentOffset.
func (c *Client) Comments(ctx context.Context, packageName string) []Comment {
	var all []Comment
	for offset := 0; offset <= maxCommentOffset; offset += commentPageSize {
		page, err := c.commentPage(ctx, packageName, offset)
		if err != nil {
			log.Printf("aur: comment page fetch for %s failed at offset %d: %v", packageName, offset, err)
			break
		}
		if len(page) == 0 {
			break
		}
		all = append(all, page...)
	}
	return all
}

func (c *Client) commentPage(ctx context.Context, packageName string, offset int) ([]Comment, error) {
	endpoint := fmt.Sprintf("%s/packages/%s?O=%d", c.base, url.PathEscape(packageName), offset)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return parseComments(resp.Body, offset)
}
