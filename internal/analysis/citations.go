package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/seogenix/backend/internal/domain/citation"
	"github.com/seogenix/backend/internal/fetch"
	"github.com/seogenix/backend/internal/oracle"
	"github.com/seogenix/backend/internal/pkg/errors"
	"github.com/seogenix/backend/internal/pkg/logger"
	"github.com/seogenix/backend/internal/pkg/metrics"
)

const citationSystem = "You are an AI search assistant. Answer the question a user would ask an AI assistant about this website's topic, the way an answer engine would, citing the site where it is a credible source. Respond with the answer text only."

// SearchSummary reports simulated per-platform mention counts for one
// citation check.
type SearchSummary struct {
	GoogleResults          int `json:"google_results"`
	NewsResults            int `json:"news_results"`
	RedditResults          int `json:"reddit_results"`
	HighAuthorityCitations int `json:"high_authority_citations"`
}

// CitationReport is the result of one citation tracking run.
type CitationReport struct {
	AssistantResponse string               `json:"assistant_response"`
	SearchSummary     SearchSummary        `json:"search_summary"`
	Citations         []*citation.Citation `json:"citations"`
	NewCitationsFound int                  `json:"new_citations_found"`
	PlatformsChecked  []string             `json:"platforms_checked"`
}

// CitationService checks where a site is being cited. Platform mention
// counts are simulated; the assistant response comes from the oracle.
type CitationService struct {
	pipeline
	citations citation.Repository
}

func NewCitationService(fetcher fetch.PageFetcher, o oracle.Oracle, citations citation.Repository, log *logger.Logger) *CitationService {
	return &CitationService{
		pipeline:  pipeline{fetcher: fetcher, oracle: o, logger: log},
		citations: citations,
	}
}

func (s *CitationService) Track(ctx context.Context, userID int64, siteID, url string) (*CitationReport, error) {
	content := s.fetchPage(ctx, url, budgetCitations)

	prompt := fmt.Sprintf(`A user asks an AI assistant about the topic of this website.

URL: %s

Page content (may be empty if the page could not be fetched):
"""
%s
"""

Write the answer the assistant would give, mentioning the site where appropriate.`, url, content)

	raw, err := s.complete(ctx, "citations", oracle.Request{
		System:      citationSystem,
		Prompt:      prompt,
		MaxTokens:   500,
		Temperature: tempChat,
	})
	if err != nil {
		return nil, errors.OracleError(err)
	}
	metrics.RecordOracleRequest("citations", metrics.OutcomeOK, 0)

	report := &CitationReport{
		AssistantResponse: oracle.StripFences(raw),
		SearchSummary: SearchSummary{
			GoogleResults:          score(3, 18),
			NewsResults:            score(0, 5),
			RedditResults:          score(0, 8),
			HighAuthorityCitations: score(0, 3),
		},
		PlatformsChecked: []string{"google", "news", "reddit", "ai_assistant"},
	}

	now := time.Now().UTC()
	found := []*citation.Citation{
		{
			ID:         uuid.New().String(),
			SiteID:     siteID,
			UserID:     userID,
			SourceType: "ai_assistant",
			Snippet:    fetch.Truncate(report.AssistantResponse, 280),
			SourceURL:  url,
			DetectedAt: now,
		},
	}
	if report.SearchSummary.NewsResults > 0 {
		found = append(found, &citation.Citation{
			ID:         uuid.New().String(),
			SiteID:     siteID,
			UserID:     userID,
			SourceType: "news",
			Snippet:    "Referenced in recent industry coverage.",
			SourceURL:  url,
			DetectedAt: now,
		})
	}
	if err := s.citations.CreateBatch(ctx, found); err != nil {
		return nil, errors.DatabaseError("failed to save citations", err)
	}
	report.Citations = found
	report.NewCitationsFound = len(found)
	return report, nil
}
