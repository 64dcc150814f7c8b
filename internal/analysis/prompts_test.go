package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	apperrors "github.com/seogenix/backend/internal/pkg/errors"
	"github.com/seogenix/backend/internal/testutil"
)

const validPromptsResponse = `{
	"voice_search": ["what is acme crm", "is acme crm worth it"],
	"faq_questions": ["How does Acme CRM work?"],
	"headlines": ["The Complete Guide to Acme CRM"],
	"featured_snippets": ["Acme CRM is best understood as"],
	"long_tail": ["best crm for small plumbing businesses"],
	"comparisons": ["acme crm vs spreadsheets"],
	"how_to": ["How to migrate to Acme CRM"],
	"analysis_summary": "Buyers research this topic with comparison and pricing questions."
}`

func newPromptService(o *testutil.MockOracle) *PromptService {
	return NewPromptService(&testutil.StubFetcher{}, o, testLogger())
}

func TestPromptGenerateRejectsShortTopic(t *testing.T) {
	o := &testutil.MockOracle{Responses: []string{validPromptsResponse}}
	svc := newPromptService(o)

	short := strings.Repeat("a", MinTopicLength-1)
	_, err := svc.Generate(context.Background(), short)
	if err == nil {
		t.Fatal("Generate() error = nil for under-length topic")
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrCodeBadRequest {
		t.Errorf("error = %v, want code %s", err, apperrors.ErrCodeBadRequest)
	}
	if o.Calls() != 0 {
		t.Errorf("oracle calls = %d, want 0", o.Calls())
	}
}

func TestPromptGenerateCountsRunesNotBytes(t *testing.T) {
	o := &testutil.MockOracle{Responses: []string{validPromptsResponse}}
	svc := newPromptService(o)

	// Nine runes, eighteen bytes.
	topic := strings.Repeat("ü", MinTopicLength-1)
	if _, err := svc.Generate(context.Background(), topic); err == nil {
		t.Error("Generate() accepted a topic under the character minimum")
	}
	if o.Calls() != 0 {
		t.Errorf("oracle calls = %d, want 0", o.Calls())
	}
}

func TestPromptGenerateNestsSuggestions(t *testing.T) {
	o := &testutil.MockOracle{Responses: []string{validPromptsResponse}}
	svc := newPromptService(o)

	result, err := svc.Generate(context.Background(), "customer relationship software for plumbers")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if o.Calls() != 1 {
		t.Errorf("oracle calls = %d, want 1", o.Calls())
	}

	if len(result.Suggestions.VoiceSearch) != 2 {
		t.Errorf("voice_search = %v, want 2 entries", result.Suggestions.VoiceSearch)
	}
	if result.TotalSuggestions != 8 {
		t.Errorf("TotalSuggestions = %d, want 8", result.TotalSuggestions)
	}
	if result.AnalysisSummary == "" {
		t.Error("AnalysisSummary is empty")
	}
}

func TestPromptGenerateFallsBackOnProse(t *testing.T) {
	o := &testutil.MockOracle{Responses: []string{"Here are some ideas for your topic."}}
	svc := newPromptService(o)

	result, err := svc.Generate(context.Background(), "customer relationship software")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if result.Suggestions.count() == 0 {
		t.Error("fallback produced no suggestions")
	}
	if result.TotalSuggestions != result.Suggestions.count() {
		t.Errorf("TotalSuggestions = %d, want %d", result.TotalSuggestions, result.Suggestions.count())
	}
	if result.AnalysisSummary == "" {
		t.Error("fallback AnalysisSummary is empty")
	}
}
