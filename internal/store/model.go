package store

import (
	"strings"
	"time"

	"pkgcheck/internal/analysis"
)

// AnalyzedPackage is the persisted outcome of one successful analysis.
// PackageName is a logical key, not a unique constraint; a reanalysis
// deletes old rows and inserts a fresh one rather than mutating in place.
type AnalyzedPackage struct {
	ID          int64            `json:"id"`
	PackageName string           `json:"packageName"`
	Summary     analysis.Summary `json:"summary"`
	Report      string           `json:"report"`
	LastChecked time.Time        `json:"lastChecked"`
}

func normalizeRecord(rec AnalyzedPackage) AnalyzedPackage {
	rec.PackageName = strings.TrimSpace(rec.PackageName)
	if rec.LastChecked.IsZero() {
		rec.LastChecked = time.Now()
	}
	return rec
}
