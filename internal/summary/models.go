// Package summary caches and generates per-case overall summaries so a
// summary already produced in this session is never regenerated.
package summary

import "time"

// OverallSummary is one generated case summary.
type OverallSummary struct {
	Body              string    `json:"overallSummary"`
	GeneratedAt       time.Time `json:"generatedAt"`
	DocumentsAnalyzed int       `json:"documentsAnalyzed"`
}

// cacheKey scopes the summary snapshot in tab-session storage.
const cacheKey = "case-summary-session"

// cacheSnapshot is the persisted shape: summaries keyed by numeric case id.
type cacheSnapshot struct {
	Summaries map[int]OverallSummary `json:"summaries"`
}
