package analysis

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/seogenix/backend/internal/fetch"
	"github.com/seogenix/backend/internal/oracle"
	"github.com/seogenix/backend/internal/pkg/errors"
	"github.com/seogenix/backend/internal/pkg/logger"
)

// MinContentLength is the shortest text the content analyzer accepts.
const MinContentLength = 50

const contentSystem = "You are a content optimization expert for AI search visibility. You analyze written content for how well AI assistants can parse, understand and cite it. Respond with JSON only, no prose."

const contentPromptTemplate = `Analyze the following content for AI search optimization.

Content:
"""
%s
"""

Respond with exactly this JSON shape:
{
  "score": <int 0-100>,
  "ai_optimization_score": <int 0-100>,
  "semantic_clarity_score": <int 0-100>,
  "entity_coverage_score": <int 0-100>,
  "readability_score": <int 0-100>,
  "analysis_summary": "<two sentences>",
  "strengths": ["<string>", ...],
  "weaknesses": ["<string>", ...],
  "recommendations": ["<string>", ...]
}`

// ContentAnalysis is the result of one content-analysis run. It is returned
// inline and not persisted.
type ContentAnalysis struct {
	Score                int      `json:"score"`
	AIOptimizationScore  int      `json:"ai_optimization_score"`
	SemanticClarityScore int      `json:"semantic_clarity_score"`
	EntityCoverageScore  int      `json:"entity_coverage_score"`
	ReadabilityScore     int      `json:"readability_score"`
	WordCount            int      `json:"word_count"`
	AnalysisSummary      string   `json:"analysis_summary"`
	Strengths            []string `json:"strengths"`
	Weaknesses           []string `json:"weaknesses"`
	Recommendations      []string `json:"recommendations"`
}

// ContentService analyzes pasted content without touching storage.
type ContentService struct {
	pipeline
}

func NewContentService(fetcher fetch.PageFetcher, o oracle.Oracle, log *logger.Logger) *ContentService {
	return &ContentService{pipeline: pipeline{fetcher: fetcher, oracle: o, logger: log}}
}

// Analyze scores a block of content. Content shorter than MinContentLength
// characters is rejected before any oracle call.
func (s *ContentService) Analyze(ctx context.Context, content string) (*ContentAnalysis, error) {
	content = strings.TrimSpace(content)
	if utf8.RuneCountInString(content) < MinContentLength {
		return nil, errors.BadRequest(fmt.Sprintf("content must be at least %d characters", MinContentLength))
	}

	raw, err := s.complete(ctx, "content", oracle.Request{
		System:      contentSystem,
		Prompt:      fmt.Sprintf(contentPromptTemplate, fetch.Truncate(content, budgetAudit)),
		MaxTokens:   900,
		Temperature: tempContent,
	})
	if err != nil {
		return nil, errors.OracleError(err)
	}

	var out ContentAnalysis
	s.decode("content", raw, &out, func() {
		out = fallbackContentAnalysis()
	})

	out.Score = clampScore(out.Score)
	out.AIOptimizationScore = clampScore(out.AIOptimizationScore)
	out.SemanticClarityScore = clampScore(out.SemanticClarityScore)
	out.EntityCoverageScore = clampScore(out.EntityCoverageScore)
	out.ReadabilityScore = clampScore(out.ReadabilityScore)
	out.WordCount = len(strings.Fields(content))
	return &out, nil
}

func fallbackContentAnalysis() ContentAnalysis {
	return ContentAnalysis{
		Score:                score(60, 85),
		AIOptimizationScore:  score(55, 85),
		SemanticClarityScore: score(60, 90),
		EntityCoverageScore:  score(45, 80),
		ReadabilityScore:     score(60, 90),
		AnalysisSummary:      "The content is generally readable and covers its topic, but could state key facts more directly so AI assistants can quote them.",
		Strengths:            []string{"Clear topic focus", "Reasonable paragraph structure"},
		Weaknesses:           []string{"Few directly quotable statements", "Limited use of named entities"},
		Recommendations: []string{
			"Open with a one-sentence answer to the main question the content addresses",
			"Name specific products, places and people instead of generic references",
			"Break long sections into question-styled subheadings",
		},
	}
}
