package audit

import (
	"math"
	"time"
)

// Audit is an immutable snapshot of the five visibility sub-scores for a
// site at a point in time. Scores are 0-100.
type Audit struct {
	ID                int64     `json:"id"`
	SiteID            string    `json:"site_id"`
	UserID            int64     `json:"user_id"`
	AIVisibilityScore int       `json:"ai_visibility_score"`
	SchemaScore       int       `json:"schema_score"`
	SemanticScore     int       `json:"semantic_score"`
	CitationScore     int       `json:"citation_score"`
	TechnicalSEOScore int       `json:"technical_seo_score"`
	CreatedAt         time.Time `json:"created_at"`
}

// Overall is the unweighted mean of the five sub-scores, rounded.
func (a *Audit) Overall() int {
	sum := a.AIVisibilityScore + a.SchemaScore + a.SemanticScore + a.CitationScore + a.TechnicalSEOScore
	return int(math.Round(float64(sum) / 5.0))
}

// CompetitorAudit has the same shape as Audit but is scoped to a tracked
// competitor under a site.
type CompetitorAudit struct {
	ID                int64     `json:"id"`
	CompetitorID      string    `json:"competitor_site_id"`
	UserID            int64     `json:"user_id"`
	AIVisibilityScore int       `json:"ai_visibility_score"`
	SchemaScore       int       `json:"schema_score"`
	SemanticScore     int       `json:"semantic_score"`
	CitationScore     int       `json:"citation_score"`
	TechnicalSEOScore int       `json:"technical_seo_score"`
	CreatedAt         time.Time `json:"created_at"`
}

// Overall is the unweighted mean of the five sub-scores, rounded.
func (a *CompetitorAudit) Overall() int {
	sum := a.AIVisibilityScore + a.SchemaScore + a.SemanticScore + a.CitationScore + a.TechnicalSEOScore
	return int(math.Round(float64(sum) / 5.0))
}
