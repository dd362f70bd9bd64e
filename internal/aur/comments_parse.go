package aur

import (
	"io"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

var (
	commentIDPattern  = regexp.MustCompile(`\d+`)
	commentByPattern  = regexp.MustCompile(`^(.+?) commented on`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// parseComments extracts comments from one package page. The page carries up
// to two comment sections; on the first page the first section is the pinned
// one, so every comment found there is tagged pinned.
func parseComments(r io.Reader, fromPage int) ([]Comment, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var comments []Comment
	for sectionIndex, section := range findAll(doc, isCommentSection) {
		pinned := fromPage == 0 && sectionIndex == 0
		for _, header := range findAll(section, isCommentHeader) {
			headerID := attrValue(header, "id")
			var id int64
			if m := commentIDPattern.FindString(headerID); m != "" {
				id, _ = strconv.ParseInt(m, 10, 64)
			}

			headerText := strings.TrimSpace(whitespacePattern.ReplaceAllString(textContent(header), " "))
			var username string
			if m := commentByPattern.FindStringSubmatch(headerText); m != nil {
				username = strings.TrimSpace(m[1])
			}

			var date string
			if anchor := findFirst(header, isDateAnchor); anchor != nil {
				date = strings.TrimSpace(textContent(anchor))
			}

			var content string
			if headerID != "" {
				if body := findFirst(doc, hasID(headerID+"-content")); body != nil {
					content = strings.TrimSpace(textContent(body))
				}
			}

			comments = append(comments, Comment{
				ID:       id,
				Username: username,
				Date:     date,
				Content:  content,
				FromPage: fromPage,
				Pinned:   pinned,
			})
		}
	}
	return comments, nil
}

func isCommentSection(n *html.Node) bool {
	return n.Type == html.ElementNode && hasClass(n, "comments") && hasClass(n, "package-comments")
}

func isCommentHeader(n *html.Node) bool {
	return n.Type == html.ElementNode && n.Data == "h4" && hasClass(n, "comment-header")
}

func isDateAnchor(n *html.Node) bool {
	return n.Type == html.ElementNode && n.Data == "a" && hasClass(n, "date")
}

func hasID(id string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && attrValue(n, "id") == id
	}
}

func hasClass(n *html.Node, class string) bool {
	for _, f := range strings.Fields(attrValue(n, "class")) {
		if f == class {
			return true
		}
	}
	return false
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// findAll returns matching nodes in document order without descending into
// matches, so nested sections are not double counted.
func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if match(node) {
			out = append(out, node)
			return
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return out
}

func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findFirst(child, match); found != nil {
			return found
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return sb.String()
}
