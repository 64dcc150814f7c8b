package analysis

import (
	"context"
	"errors"
	"testing"

	apperrors "github.com/seogenix/backend/internal/pkg/errors"
	"github.com/seogenix/backend/internal/pkg/logger"
	"github.com/seogenix/backend/internal/testutil"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "json"})
}

func TestAuditRunParsesOracleScores(t *testing.T) {
	o := &testutil.MockOracle{Responses: []string{
		`{"ai_visibility_score": 72, "schema_score": 61, "semantic_score": 80, "citation_score": 45, "technical_seo_score": 66}`,
	}}
	audits := testutil.NewMockAuditRepository()
	svc := NewAuditService(&testutil.StubFetcher{Content: "<p>hello</p>"}, o, audits, testLogger())

	a, err := svc.Run(context.Background(), 1, "site-1", "https://example.com")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if a.AIVisibilityScore != 72 || a.SchemaScore != 61 || a.TechnicalSEOScore != 66 {
		t.Errorf("scores = %d/%d/%d, want 72/61/66", a.AIVisibilityScore, a.SchemaScore, a.TechnicalSEOScore)
	}
	if a.Overall() != 65 {
		t.Errorf("Overall() = %d, want 65", a.Overall())
	}
	if len(audits.Audits) != 1 {
		t.Errorf("stored audits = %d, want 1", len(audits.Audits))
	}
}

func TestAuditRunSurvivesFetchFailure(t *testing.T) {
	o := &testutil.MockOracle{Responses: []string{
		`{"ai_visibility_score": 50, "schema_score": 50, "semantic_score": 50, "citation_score": 50, "technical_seo_score": 50}`,
	}}
	fetcher := &testutil.StubFetcher{Err: errors.New("connection refused")}
	svc := NewAuditService(fetcher, o, testutil.NewMockAuditRepository(), testLogger())

	a, err := svc.Run(context.Background(), 1, "site-1", "https://unreachable.example")
	if err != nil {
		t.Fatalf("Run() error = %v, want audit without page content", err)
	}
	if a.Overall() != 50 {
		t.Errorf("Overall() = %d, want 50", a.Overall())
	}
	if o.Calls() != 1 {
		t.Errorf("oracle calls = %d, want 1", o.Calls())
	}
}

func TestAuditRunFallsBackOnUnparseableOutput(t *testing.T) {
	o := &testutil.MockOracle{Responses: []string{"I cannot produce JSON today."}}
	svc := NewAuditService(&testutil.StubFetcher{}, o, testutil.NewMockAuditRepository(), testLogger())

	a, err := svc.Run(context.Background(), 1, "site-1", "https://example.com")
	if err != nil {
		t.Fatalf("Run() error = %v, want synthesized scores", err)
	}
	for name, s := range map[string]int{
		"ai_visibility": a.AIVisibilityScore,
		"schema":        a.SchemaScore,
		"semantic":      a.SemanticScore,
		"citation":      a.CitationScore,
		"technical_seo": a.TechnicalSEOScore,
	} {
		if s < 0 || s > 100 {
			t.Errorf("fallback %s score = %d, want within [0, 100]", name, s)
		}
	}
}

func TestAuditRunFailsWhenOracleFails(t *testing.T) {
	o := &testutil.MockOracle{Err: errors.New("upstream timeout")}
	svc := NewAuditService(&testutil.StubFetcher{}, o, testutil.NewMockAuditRepository(), testLogger())

	_, err := svc.Run(context.Background(), 1, "site-1", "https://example.com")
	if err == nil {
		t.Fatal("Run() error = nil, want oracle error")
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrCodeOracle {
		t.Errorf("error = %v, want code %s", err, apperrors.ErrCodeOracle)
	}
}

func TestRunCompetitorReportsMethod(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		fetchErr   error
		response   string
		wantMethod string
	}{
		{
			name:       "with page content",
			content:    "<h1>Competitor</h1>",
			response:   `{"ai_visibility_score": 60, "schema_score": 60, "semantic_score": 60, "citation_score": 60, "technical_seo_score": 60}`,
			wantMethod: "ai_with_content",
		},
		{
			name:       "url only after fetch failure",
			fetchErr:   errors.New("dns failure"),
			response:   `{"ai_visibility_score": 60, "schema_score": 60, "semantic_score": 60, "citation_score": 60, "technical_seo_score": 60}`,
			wantMethod: "ai_url_only",
		},
		{
			name:       "fallback on unparseable output",
			content:    "<h1>Competitor</h1>",
			response:   "not json",
			wantMethod: "fallback",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &testutil.MockOracle{Responses: []string{tt.response}}
			fetcher := &testutil.StubFetcher{Content: tt.content, Err: tt.fetchErr}
			svc := NewAuditService(fetcher, o, testutil.NewMockAuditRepository(), testLogger())

			_, method, _, err := svc.RunCompetitor(context.Background(), 1, "comp-1", "https://rival.example")
			if err != nil {
				t.Fatalf("RunCompetitor() error = %v", err)
			}
			if method != tt.wantMethod {
				t.Errorf("method = %q, want %q", method, tt.wantMethod)
			}
		})
	}
}
