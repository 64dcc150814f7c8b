package services

import (
	"context"
	"testing"
	"time"

	"github.com/seogenix/backend/internal/domain/usage"
	"github.com/seogenix/backend/internal/pkg/logger"
	"github.com/seogenix/backend/internal/testutil"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "json"})
}

func newUsageService(t *testing.T, usages usage.Repository) *UsageService {
	t.Helper()
	return NewUsageService(usages, testutil.NewMockUserRepository(), testutil.TestCatalog(t), testLogger())
}

func TestUsageGetCreatesCurrentPeriodRecord(t *testing.T) {
	usages := testutil.NewMockUsageRepository()
	svc := newUsageService(t, usages)
	svc.now = func() time.Time { return time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC) }
	usages.Now = svc.now

	u, err := svc.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	want := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if !u.PeriodStart.Equal(want) {
		t.Errorf("PeriodStart = %v, want %v", u.PeriodStart, want)
	}
	if u.AuditsThisMonth != 0 {
		t.Errorf("AuditsThisMonth = %d, want 0", u.AuditsThisMonth)
	}
}

func TestUsageGetRollsOverAcrossMonthBoundary(t *testing.T) {
	usages := testutil.NewMockUsageRepository()
	svc := newUsageService(t, usages)

	lastAudit := time.Date(2026, 2, 27, 18, 0, 0, 0, time.UTC)
	usages.Records[1] = &usage.Usage{
		UserID:             1,
		AuditsThisMonth:    3,
		ContentGenerations: 7,
		CitationsUsed:      4,
		LastAuditAt:        lastAudit,
		PeriodStart:        time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}

	svc.now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 1, 0, time.UTC) }

	u, err := svc.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if u.AuditsThisMonth != 0 || u.ContentGenerations != 0 || u.CitationsUsed != 0 {
		t.Errorf("counters after rollover = %d/%d/%d, want all zero",
			u.AuditsThisMonth, u.ContentGenerations, u.CitationsUsed)
	}
	if !u.PeriodStart.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("PeriodStart = %v, want March 1", u.PeriodStart)
	}
	if !u.LastAuditAt.Equal(lastAudit) {
		t.Errorf("LastAuditAt = %v, want preserved %v", u.LastAuditAt, lastAudit)
	}

	// The rewrite must be persisted, not just returned.
	stored := usages.Records[1]
	if stored.AuditsThisMonth != 0 || !stored.PeriodStart.Equal(u.PeriodStart) {
		t.Errorf("stored record not rolled over: %+v", stored)
	}
}

func TestUsageGetKeepsCurrentPeriodUntouched(t *testing.T) {
	usages := testutil.NewMockUsageRepository()
	svc := newUsageService(t, usages)

	usages.Records[1] = &usage.Usage{
		UserID:          1,
		AuditsThisMonth: 2,
		PeriodStart:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	svc.now = func() time.Time { return time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC) }

	u, err := svc.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if u.AuditsThisMonth != 2 {
		t.Errorf("AuditsThisMonth = %d, want 2 within same month", u.AuditsThisMonth)
	}
}

func TestRecordAuditStampsLastAuditTime(t *testing.T) {
	usages := testutil.NewMockUsageRepository()
	svc := newUsageService(t, usages)

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	usages.Now = svc.now

	if err := svc.RecordAudit(context.Background(), 1); err != nil {
		t.Fatalf("RecordAudit() error = %v", err)
	}

	u := usages.Records[1]
	if u.AuditsThisMonth != 1 {
		t.Errorf("AuditsThisMonth = %d, want 1", u.AuditsThisMonth)
	}
	if !u.LastAuditAt.Equal(now) {
		t.Errorf("LastAuditAt = %v, want %v", u.LastAuditAt, now)
	}
}

func TestRecordIncrementsNamedCounter(t *testing.T) {
	usages := testutil.NewMockUsageRepository()
	svc := newUsageService(t, usages)

	ctx := context.Background()
	if err := svc.Record(ctx, 1, usage.CounterContentGenerations); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if err := svc.Record(ctx, 1, usage.CounterContentGenerations); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if err := svc.Record(ctx, 1, usage.CounterCitations); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	u := usages.Records[1]
	if u.ContentGenerations != 2 {
		t.Errorf("ContentGenerations = %d, want 2", u.ContentGenerations)
	}
	if u.CitationsUsed != 1 {
		t.Errorf("CitationsUsed = %d, want 1", u.CitationsUsed)
	}
}
