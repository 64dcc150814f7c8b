package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/seogenix/backend/internal/analysis"
	"github.com/seogenix/backend/internal/api/middleware"
	"github.com/seogenix/backend/internal/domain/plan"
	"github.com/seogenix/backend/internal/domain/site"
	"github.com/seogenix/backend/internal/domain/usage"
	"github.com/seogenix/backend/internal/domain/user"
	"github.com/seogenix/backend/internal/pkg/validator"
	"github.com/seogenix/backend/internal/services"
	"github.com/seogenix/backend/internal/testutil"
)

type auditFixture struct {
	handler *AuditHandler
	oracle  *testutil.MockOracle
	usages  *testutil.MockUsageRepository
	sites   *testutil.MockSiteRepository
	audits  *testutil.MockAuditRepository
}

func newAuditFixture(t *testing.T, tier plan.Tier) *auditFixture {
	t.Helper()

	log := testLogger()
	users := testutil.NewMockUserRepository()
	if err := users.Create(context.Background(), &user.User{Email: "a@example.com", Tier: tier}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	sites := testutil.NewMockSiteRepository()
	audits := testutil.NewMockAuditRepository()
	usages := testutil.NewMockUsageRepository()

	o := &testutil.MockOracle{Responses: []string{
		`{"ai_visibility_score": 70, "schema_score": 60, "semantic_score": 75, "citation_score": 50, "technical_seo_score": 65}`,
	}}
	auditSvc := analysis.NewAuditService(&testutil.StubFetcher{Content: "<h1>Site</h1>"}, o, audits, log)
	usageSvc := services.NewUsageService(usages, users, testutil.TestCatalog(t), log)
	siteSvc := services.NewSiteService(sites, log)

	return &auditFixture{
		handler: NewAuditHandler(auditSvc, audits, siteSvc, usageSvc, users, log, validator.New()),
		oracle:  o,
		usages:  usages,
		sites:   sites,
		audits:  audits,
	}
}

func runAuditRequest(siteID string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/audits/run", strings.NewReader(`{"site_id": "`+siteID+`"}`))
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, int64(1))
	return req.WithContext(ctx)
}

func TestRunAuditHappyPath(t *testing.T) {
	f := newAuditFixture(t, plan.TierPro)
	_ = f.sites.Create(context.Background(), &site.Site{ID: "site-1", UserID: 1, URL: "https://example.com"})

	rec := httptest.NewRecorder()
	f.handler.Run(rec, runAuditRequest("site-1"))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp struct {
		OverallScore int `json:"overall_score"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response body does not parse: %v", err)
	}
	if resp.OverallScore != 64 {
		t.Errorf("overall_score = %d, want 64", resp.OverallScore)
	}
	if len(f.audits.Audits) != 1 {
		t.Errorf("stored audits = %d, want 1", len(f.audits.Audits))
	}
	if f.usages.Records[1].AuditsThisMonth != 1 {
		t.Errorf("AuditsThisMonth = %d, want 1", f.usages.Records[1].AuditsThisMonth)
	}
}

func TestRunAuditDeniedWhenQuotaExhausted(t *testing.T) {
	f := newAuditFixture(t, plan.TierFree) // one audit per month
	_ = f.sites.Create(context.Background(), &site.Site{ID: "site-1", UserID: 1, URL: "https://example.com"})

	now := time.Now().UTC()
	f.usages.Records[1] = &usage.Usage{
		UserID:          1,
		AuditsThisMonth: 1,
		PeriodStart:     time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC),
	}

	rec := httptest.NewRecorder()
	f.handler.Run(rec, runAuditRequest("site-1"))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusForbidden, rec.Body.String())
	}
	if f.oracle.Calls() != 0 {
		t.Errorf("oracle calls = %d, want 0 when quota exhausted", f.oracle.Calls())
	}
	if len(f.audits.Audits) != 0 {
		t.Errorf("stored audits = %d, want 0", len(f.audits.Audits))
	}
}

func TestRunAuditUnknownSite(t *testing.T) {
	f := newAuditFixture(t, plan.TierPro)

	rec := httptest.NewRecorder()
	f.handler.Run(rec, runAuditRequest("missing"))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if f.oracle.Calls() != 0 {
		t.Errorf("oracle calls = %d, want 0 for unknown site", f.oracle.Calls())
	}
}
