package summary

import "time"

// Summary is a generated text artifact tied to a site. One row per
// generation request, immutable once created.
type Summary struct {
	ID          int64     `json:"id"`
	SiteID      string    `json:"site_id"`
	UserID      int64     `json:"user_id"`
	SummaryType string    `json:"summary_type"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
}

// Known summary types.
const (
	TypeSiteOverview   = "site_overview"
	TypePageSummary    = "page_summary"
	TypeAIReadiness    = "ai_readiness"
	TypeTLDR           = "tldr"
)
