package agent

import (
	"strings"
	"time"

	"pkgcheck/internal/store"
)

// expandableThreshold is the point length above which the popup collapses
// an entry behind a More/Less toggle.
const expandableThreshold = 50

type RiskBadge struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

type DisplayItem struct {
	Text       string `json:"text"`
	Expandable bool   `json:"expandable"`
}

// Display is the fixed shape the popup card renders. It consumes only the
// summary and record bookkeeping, never the narrative report.
type Display struct {
	PackageName    string        `json:"packageName"`
	Badge          RiskBadge     `json:"badge"`
	Summary        string        `json:"summary"`
	Recommendation string        `json:"recommendation"`
	KeyPoints      []DisplayItem `json:"keyPoints"`
	TopConcerns    []DisplayItem `json:"topConcerns"`
	CommentsFYI    string        `json:"commentsFYI"`
	LastChecked    string        `json:"lastChecked"`
}

func Present(rec store.AnalyzedPackage) Display {
	s := rec.Summary
	return Display{
		PackageName: rec.PackageName,
		Badge: RiskBadge{
			Label: strings.ToUpper(s.RiskLevel) + " RISK",
			Color: s.RiskColor,
		},
		Summary:        s.Summary,
		Recommendation: s.Recommendation,
		KeyPoints:      displayItems(s.KeyPoints),
		TopConcerns:    displayItems(s.TopConcerns),
		CommentsFYI:    s.CommentsFYI,
		LastChecked:    rec.LastChecked.Format(time.RFC1123),
	}
}

func displayItems(points []string) []DisplayItem {
	items := make([]DisplayItem, 0, len(points))
	for _, p := range points {
		items = append(items, DisplayItem{
			Text:       p,
			Expandable: len(p) > expandableThreshold,
		})
	}
	return items
}
