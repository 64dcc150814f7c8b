package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	apperrors "github.com/seogenix/backend/internal/pkg/errors"
	"github.com/seogenix/backend/internal/testutil"
)

const validContentResponse = `{"score": 78, "ai_optimization_score": 70, "semantic_clarity_score": 82, "entity_coverage_score": 65, "readability_score": 88, "analysis_summary": "Solid.", "strengths": ["clear"], "weaknesses": ["thin"], "recommendations": ["add entities"]}`

func TestContentAnalyzeRejectsShortContent(t *testing.T) {
	o := &testutil.MockOracle{Responses: []string{validContentResponse}}
	svc := NewContentService(&testutil.StubFetcher{}, o, testLogger())

	short := strings.Repeat("a", MinContentLength-1)
	_, err := svc.Analyze(context.Background(), short)
	if err == nil {
		t.Fatal("Analyze() error = nil, want rejection for short content")
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrCodeBadRequest {
		t.Errorf("error = %v, want code %s", err, apperrors.ErrCodeBadRequest)
	}
	if o.Calls() != 0 {
		t.Errorf("oracle calls = %d, want 0 for rejected content", o.Calls())
	}
}

func TestContentAnalyzeAcceptsMinimumLength(t *testing.T) {
	o := &testutil.MockOracle{Responses: []string{validContentResponse}}
	svc := NewContentService(&testutil.StubFetcher{}, o, testLogger())

	exact := strings.Repeat("b", MinContentLength)
	out, err := svc.Analyze(context.Background(), exact)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if out.Score != 78 {
		t.Errorf("Score = %d, want 78", out.Score)
	}
	if o.Calls() != 1 {
		t.Errorf("oracle calls = %d, want 1", o.Calls())
	}
}

func TestContentAnalyzeMinimumIsCharactersNotBytes(t *testing.T) {
	o := &testutil.MockOracle{Responses: []string{validContentResponse}}
	svc := NewContentService(&testutil.StubFetcher{}, o, testLogger())

	// 49 runes but 98 bytes.
	short := strings.Repeat("ö", MinContentLength-1)
	if _, err := svc.Analyze(context.Background(), short); err == nil {
		t.Error("Analyze() accepted multibyte content under the character minimum")
	}
	if o.Calls() != 0 {
		t.Errorf("oracle calls = %d, want 0", o.Calls())
	}

	exact := strings.Repeat("ö", MinContentLength)
	if _, err := svc.Analyze(context.Background(), exact); err != nil {
		t.Errorf("Analyze() error = %v for content at the character minimum", err)
	}
}

func TestContentAnalyzeCountsWordsLocally(t *testing.T) {
	o := &testutil.MockOracle{Responses: []string{validContentResponse}}
	svc := NewContentService(&testutil.StubFetcher{}, o, testLogger())

	content := strings.TrimSpace(strings.Repeat("quotable fact here ", 20))
	out, err := svc.Analyze(context.Background(), content)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if out.WordCount != 60 {
		t.Errorf("WordCount = %d, want 60", out.WordCount)
	}
}

func TestContentAnalyzeFallsBackOnBadJSON(t *testing.T) {
	o := &testutil.MockOracle{Responses: []string{"Sorry, here are my thoughts instead..."}}
	svc := NewContentService(&testutil.StubFetcher{}, o, testLogger())

	out, err := svc.Analyze(context.Background(), strings.Repeat("c", 200))
	if err != nil {
		t.Fatalf("Analyze() error = %v, want synthesized analysis", err)
	}
	if out.Score < 0 || out.Score > 100 {
		t.Errorf("fallback Score = %d, want within [0, 100]", out.Score)
	}
	if out.AnalysisSummary == "" {
		t.Error("fallback AnalysisSummary is empty")
	}
	if len(out.Recommendations) == 0 {
		t.Error("fallback Recommendations is empty")
	}
}
