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

// MinTopicLength is the shortest topic the prompt generator accepts.
const MinTopicLength = 10

const promptsSystem = "You are a search intent expert. You generate the questions and phrases real people use when asking AI assistants and voice assistants about a topic. Respond with JSON only, no prose."

const promptsTemplate = `Generate search prompt suggestions for content about the following topic.

Topic or content:
"""
%s
"""

Respond with exactly this JSON shape, 3-5 entries per list:
{
  "voice_search": ["<string>", ...],
  "faq_questions": ["<string>", ...],
  "headlines": ["<string>", ...],
  "featured_snippets": ["<string>", ...],
  "long_tail": ["<string>", ...],
  "comparisons": ["<string>", ...],
  "how_to": ["<string>", ...],
  "analysis_summary": "<one sentence>"
}`

// PromptSuggestions groups generated prompts by search style.
type PromptSuggestions struct {
	VoiceSearch      []string `json:"voice_search"`
	FAQQuestions     []string `json:"faq_questions"`
	Headlines        []string `json:"headlines"`
	FeaturedSnippets []string `json:"featured_snippets"`
	LongTail         []string `json:"long_tail"`
	Comparisons      []string `json:"comparisons"`
	HowTo            []string `json:"how_to"`
}

func (p PromptSuggestions) count() int {
	return len(p.VoiceSearch) + len(p.FAQQuestions) + len(p.Headlines) +
		len(p.FeaturedSnippets) + len(p.LongTail) + len(p.Comparisons) + len(p.HowTo)
}

// PromptResult is one prompt-generation response.
type PromptResult struct {
	Suggestions      PromptSuggestions `json:"suggestions"`
	AnalysisSummary  string            `json:"analysis_summary"`
	TotalSuggestions int               `json:"total_suggestions"`
}

// PromptService generates search prompt suggestions. Results are returned
// inline and not persisted.
type PromptService struct {
	pipeline
}

func NewPromptService(fetcher fetch.PageFetcher, o oracle.Oracle, log *logger.Logger) *PromptService {
	return &PromptService{pipeline: pipeline{fetcher: fetcher, oracle: o, logger: log}}
}

// Generate produces prompt suggestions for a topic. Topics shorter than
// MinTopicLength characters are rejected before any oracle call.
func (s *PromptService) Generate(ctx context.Context, topic string) (*PromptResult, error) {
	topic = strings.TrimSpace(topic)
	if utf8.RuneCountInString(topic) < MinTopicLength {
		return nil, errors.BadRequest(fmt.Sprintf("topic must be at least %d characters", MinTopicLength))
	}

	raw, err := s.complete(ctx, "prompts", oracle.Request{
		System:      promptsSystem,
		Prompt:      fmt.Sprintf(promptsTemplate, fetch.Truncate(topic, budgetCitations)),
		MaxTokens:   1200,
		Temperature: tempContent,
	})
	if err != nil {
		return nil, errors.OracleError(err)
	}

	var decoded struct {
		PromptSuggestions
		AnalysisSummary string `json:"analysis_summary"`
	}
	s.decode("prompts", raw, &decoded, func() {
		decoded.PromptSuggestions = fallbackPromptSuggestions(topic)
		decoded.AnalysisSummary = "Suggestions generated from the topic phrasing."
	})

	return &PromptResult{
		Suggestions:      decoded.PromptSuggestions,
		AnalysisSummary:  decoded.AnalysisSummary,
		TotalSuggestions: decoded.PromptSuggestions.count(),
	}, nil
}

func fallbackPromptSuggestions(topic string) PromptSuggestions {
	t := fetch.Truncate(topic, 60)
	return PromptSuggestions{
		VoiceSearch: []string{
			fmt.Sprintf("Hey, what should I know about %s?", t),
			fmt.Sprintf("Where can I find %s near me?", t),
			fmt.Sprintf("Is %s worth it?", t),
		},
		FAQQuestions: []string{
			fmt.Sprintf("What is %s?", t),
			fmt.Sprintf("How does %s work?", t),
			fmt.Sprintf("How much does %s cost?", t),
		},
		Headlines: []string{
			fmt.Sprintf("The Complete Guide to %s", t),
			fmt.Sprintf("%s Explained in Plain Language", t),
			fmt.Sprintf("5 Things to Know Before Choosing %s", t),
		},
		FeaturedSnippets: []string{
			fmt.Sprintf("%s is best understood as", t),
			fmt.Sprintf("The main benefits of %s are", t),
		},
		LongTail: []string{
			fmt.Sprintf("best %s for small businesses", t),
			fmt.Sprintf("%s pricing and plans compared", t),
			fmt.Sprintf("how to get started with %s today", t),
		},
		Comparisons: []string{
			fmt.Sprintf("%s vs alternatives", t),
			fmt.Sprintf("%s compared to doing it yourself", t),
		},
		HowTo: []string{
			fmt.Sprintf("How to evaluate %s", t),
			fmt.Sprintf("How to set up %s step by step", t),
		},
	}
}
