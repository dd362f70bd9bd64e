package aur

import (
	"strings"
	"testing"
)

const firstPageHTML = `<html><body>
<div class="comments package-comments">
  <h4 class="comment-header" id="comment-910450">
    alice commented on <a href="#comment-910450" class="date">2024-01-05 10:12 (UTC)</a>
  </h4>
  <div id="comment-910450-content" class="article-content"><p>Pinned: verify sources before flagging.</p></div>
</div>
<div class="comments package-comments">
  <h4 class="comment-header" id="comment-911001">
    bob commented on <a href="#comment-911001" class="date">2024-02-01 08:00 (UTC)</a>
  </h4>
  <div id="comment-911001-content" class="article-content"><p>Builds fine here.</p></div>
  <h4 class="comment-header" id="comment-911002">
    carol commented on <a href="#comment-911002" class="date">2024-02-02 09:30 (UTC)</a>
  </h4>
  <div id="comment-911002-content" class="article-content"><p>Checksums updated, thanks.</p></div>
</div>
</body></html>`

func TestParseComments_FirstPage(t *testing.T) {
	comments, err := parseComments(strings.NewReader(firstPageHTML), 0)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(comments) != 3 {
		t.Fatalf("expected 3 comments, got %d", len(comments))
	}

	pinned := comments[0]
	if pinned.ID != 910450 {
		t.Errorf("pinned id = %d, want 910450", pinned.ID)
	}
	if pinned.Username != "alice" {
		t.Errorf("pinned username = %q, want alice", pinned.Username)
	}
	if pinned.Date != "2024-01-05 10:12 (UTC)" {
		t.Errorf("pinned date = %q", pinned.Date)
	}
	if pinned.Content != "Pinned: verify sources before flagging." {
		t.Errorf("pinned content = %q", pinned.Content)
	}
	if !pinned.Pinned {
		t.Error("first section on first page must be pinned")
	}

	for _, c := range comments[1:] {
		if c.Pinned {
			t.Errorf("comment %d from second section must not be pinned", c.ID)
		}
	}
	if comments[1].Username != "bob" || comments[2].Username != "carol" {
		t.Errorf("fetch order lost: %q, %q", comments[1].Username, comments[2].Username)
	}
}

func TestParseComments_LaterPageNeverPinned(t *testing.T) {
	comments, err := parseComments(strings.NewReader(firstPageHTML), 10)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	for _, c := range comments {
		if c.Pinned {
			t.Errorf("comment %d on offset 10 must not be pinned", c.ID)
		}
		if c.FromPage != 10 {
			t.Errorf("comment %d fromPage = %d, want 10", c.ID, c.FromPage)
		}
	}
}

func TestParseComments_NoSections(t *testing.T) {
	comments, err := parseComments(strings.NewReader("<html><body><p>no comments</p></body></html>"), 0)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(comments) != 0 {
		t.Fatalf("expected no comments, got %d", len(comments))
	}
}
