package worker

import (
	"context"
	"testing"
	"time"

	"github.com/seogenix/backend/internal/analysis"
	"github.com/seogenix/backend/internal/domain/audit"
	"github.com/seogenix/backend/internal/domain/plan"
	"github.com/seogenix/backend/internal/domain/site"
	"github.com/seogenix/backend/internal/domain/user"
	"github.com/seogenix/backend/internal/pkg/logger"
	"github.com/seogenix/backend/internal/services"
	"github.com/seogenix/backend/internal/testutil"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "json"})
}

func TestCadenceInterval(t *testing.T) {
	tests := []struct {
		freq plan.AuditFrequency
		want time.Duration
	}{
		{plan.AuditDaily, 24 * time.Hour},
		{plan.AuditWeekly, 7 * 24 * time.Hour},
		{plan.AuditMonthly, 30 * 24 * time.Hour},
		{plan.AuditFrequency("bogus"), 30 * 24 * time.Hour},
	}
	for _, tt := range tests {
		if got := cadenceInterval(tt.freq); got != tt.want {
			t.Errorf("cadenceInterval(%q) = %v, want %v", tt.freq, got, tt.want)
		}
	}
}

type schedulerFixture struct {
	scheduler *Scheduler
	oracle    *testutil.MockOracle
	sites     *testutil.MockSiteRepository
	audits    *testutil.MockAuditRepository
	usages    *testutil.MockUsageRepository
	users     *testutil.MockUserRepository
}

func newSchedulerFixture(t *testing.T, tier plan.Tier) *schedulerFixture {
	t.Helper()

	log := testLogger()
	users := testutil.NewMockUserRepository()
	if err := users.Create(context.Background(), &user.User{Email: "s@example.com", Tier: tier}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	sites := testutil.NewMockSiteRepository()
	audits := testutil.NewMockAuditRepository()
	usages := testutil.NewMockUsageRepository()

	o := &testutil.MockOracle{Responses: []string{
		`{"ai_visibility_score": 70, "schema_score": 60, "semantic_score": 75, "citation_score": 50, "technical_seo_score": 65}`,
	}}
	auditSvc := analysis.NewAuditService(&testutil.StubFetcher{Content: "page"}, o, audits, log)
	usageSvc := services.NewUsageService(usages, users, testutil.TestCatalog(t), log)

	return &schedulerFixture{
		scheduler: NewScheduler(sites, users, auditSvc, audits, usageSvc, log),
		oracle:    o,
		sites:     sites,
		audits:    audits,
		usages:    usages,
		users:     users,
	}
}

func TestAuditIfDueRunsForSiteWithoutHistory(t *testing.T) {
	f := newSchedulerFixture(t, plan.TierPro)
	st := &site.Site{ID: "site-1", UserID: 1, URL: "https://example.com"}
	_ = f.sites.Create(context.Background(), st)

	if !f.scheduler.auditIfDue(context.Background(), st) {
		t.Fatal("auditIfDue() = false for site with no audit history")
	}
	if len(f.audits.Audits) != 1 {
		t.Errorf("stored audits = %d, want 1", len(f.audits.Audits))
	}
	if f.usages.Records[1].AuditsThisMonth != 1 {
		t.Errorf("AuditsThisMonth = %d, want 1", f.usages.Records[1].AuditsThisMonth)
	}
}

func TestAuditIfDueSkipsFreshAudit(t *testing.T) {
	f := newSchedulerFixture(t, plan.TierPro) // daily cadence
	st := &site.Site{ID: "site-1", UserID: 1, URL: "https://example.com"}
	_ = f.sites.Create(context.Background(), st)

	_ = f.audits.Create(context.Background(), &audit.Audit{
		SiteID: "site-1", UserID: 1,
		CreatedAt: time.Now().UTC().Add(-2 * time.Hour),
	})

	if f.scheduler.auditIfDue(context.Background(), st) {
		t.Error("auditIfDue() = true for audit fresher than the cadence")
	}
	if f.oracle.Calls() != 0 {
		t.Errorf("oracle calls = %d, want 0", f.oracle.Calls())
	}
}

func TestAuditIfDueRunsWhenStale(t *testing.T) {
	f := newSchedulerFixture(t, plan.TierPro)
	st := &site.Site{ID: "site-1", UserID: 1, URL: "https://example.com"}
	_ = f.sites.Create(context.Background(), st)

	_ = f.audits.Create(context.Background(), &audit.Audit{
		SiteID: "site-1", UserID: 1,
		CreatedAt: time.Now().UTC().Add(-48 * time.Hour),
	})

	if !f.scheduler.auditIfDue(context.Background(), st) {
		t.Error("auditIfDue() = false for stale audit")
	}
}

func TestAuditIfDueRespectsMonthlyQuota(t *testing.T) {
	f := newSchedulerFixture(t, plan.TierFree) // one audit per month, monthly cadence
	st := &site.Site{ID: "site-1", UserID: 1, URL: "https://example.com"}
	_ = f.sites.Create(context.Background(), st)

	// Quota already consumed this period; the only audit on record is old
	// enough that cadence alone would re-run it.
	_ = f.audits.Create(context.Background(), &audit.Audit{
		SiteID: "site-1", UserID: 1,
		CreatedAt: time.Now().UTC().Add(-45 * 24 * time.Hour),
	})
	rec, _ := f.usages.Get(context.Background(), 1)
	rec.AuditsThisMonth = 1

	if f.scheduler.auditIfDue(context.Background(), st) {
		t.Error("auditIfDue() = true with exhausted quota")
	}
	if f.oracle.Calls() != 0 {
		t.Errorf("oracle calls = %d, want 0", f.oracle.Calls())
	}
}

func TestAuditIfDueSkipsMissingOwner(t *testing.T) {
	f := newSchedulerFixture(t, plan.TierPro)
	orphan := &site.Site{ID: "site-x", UserID: 42, URL: "https://orphan.example"}

	if f.scheduler.auditIfDue(context.Background(), orphan) {
		t.Error("auditIfDue() = true for site with missing owner")
	}
}
