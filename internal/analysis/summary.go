package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/seogenix/backend/internal/domain/summary"
	"github.com/seogenix/backend/internal/fetch"
	"github.com/seogenix/backend/internal/oracle"
	"github.com/seogenix/backend/internal/pkg/errors"
	"github.com/seogenix/backend/internal/pkg/logger"
	"github.com/seogenix/backend/internal/pkg/metrics"
)

const summarySystem = "You are a content summarizer optimized for AI citability. You write plain, factual summaries that answer engines can quote directly. Respond with the summary text only."

var summaryInstructions = map[string]string{
	summary.TypeSiteOverview: "Write a 3-4 paragraph overview of what this website offers, who it serves and what makes it distinct.",
	summary.TypePageSummary:  "Write a 1-2 paragraph summary of this specific page's content.",
	summary.TypeAIReadiness:  "Write an assessment of how ready this site's content is for AI search, covering structure, clarity and citability.",
	summary.TypeTLDR:         "Write a 2-3 sentence TL;DR of this page.",
}

// SummaryResult wraps a stored summary with generation metadata.
type SummaryResult struct {
	Summary    *summary.Summary `json:"summary"`
	DataSource string           `json:"data_source"`
	WordCount  int              `json:"word_count"`
}

// SummaryService generates citable summaries and persists each artifact.
type SummaryService struct {
	pipeline
	summaries summary.Repository
}

func NewSummaryService(fetcher fetch.PageFetcher, o oracle.Oracle, summaries summary.Repository, log *logger.Logger) *SummaryService {
	return &SummaryService{
		pipeline:  pipeline{fetcher: fetcher, oracle: o, logger: log},
		summaries: summaries,
	}
}

func (s *SummaryService) Generate(ctx context.Context, userID int64, siteID, url, summaryType string) (*SummaryResult, error) {
	instruction, ok := summaryInstructions[summaryType]
	if !ok {
		summaryType = summary.TypeSiteOverview
		instruction = summaryInstructions[summaryType]
	}

	content := s.fetchPage(ctx, url, budgetSummary)
	dataSource := "page_content"
	if content == "" {
		dataSource = "url_only"
	}

	prompt := fmt.Sprintf(`%s

URL: %s

Page content (may be empty if the page could not be fetched):
"""
%s
"""`, instruction, url, content)

	raw, err := s.complete(ctx, "summary", oracle.Request{
		System:      summarySystem,
		Prompt:      prompt,
		MaxTokens:   800,
		Temperature: tempContent,
	})
	if err != nil {
		return nil, errors.OracleError(err)
	}
	metrics.RecordOracleRequest("summary", metrics.OutcomeOK, 0)

	text := strings.TrimSpace(oracle.StripFences(raw))
	rec := &summary.Summary{
		SiteID:      siteID,
		UserID:      userID,
		SummaryType: summaryType,
		Content:     text,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.summaries.Create(ctx, rec); err != nil {
		return nil, errors.DatabaseError("failed to save summary", err)
	}
	return &SummaryResult{
		Summary:    rec,
		DataSource: dataSource,
		WordCount:  len(strings.Fields(text)),
	}, nil
}
