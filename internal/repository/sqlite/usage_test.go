package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/seogenix/backend/internal/domain/usage"
	apperrors "github.com/seogenix/backend/internal/pkg/errors"
	"github.com/seogenix/backend/internal/testutil"
)

func TestUsageGetCreatesZeroedRecord(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUsageRepository(db)
	ctx := context.Background()

	u := seedUser(t, db, "usage@example.com")

	rec, err := repo.Get(ctx, u.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if rec.AuditsThisMonth != 0 || rec.CitationsUsed != 0 {
		t.Errorf("new record counters = %+v, want zeroes", rec)
	}
	if rec.PeriodStart.Day() != 1 {
		t.Errorf("PeriodStart = %v, want first of month", rec.PeriodStart)
	}

	// Second read returns the persisted row.
	again, err := repo.Get(ctx, u.ID)
	if err != nil {
		t.Fatalf("second Get() error = %v", err)
	}
	if !again.PeriodStart.Equal(rec.PeriodStart) {
		t.Errorf("PeriodStart changed between reads: %v vs %v", again.PeriodStart, rec.PeriodStart)
	}
}

func TestUsageIncrementCounters(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUsageRepository(db)
	ctx := context.Background()

	u := seedUser(t, db, "counters@example.com")
	if _, err := repo.Get(ctx, u.ID); err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := repo.Increment(ctx, u.ID, usage.CounterContentGenerations); err != nil {
			t.Fatalf("Increment() error = %v", err)
		}
	}
	if err := repo.Increment(ctx, u.ID, usage.CounterAudits); err != nil {
		t.Fatalf("Increment() error = %v", err)
	}

	rec, err := repo.Get(ctx, u.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if rec.ContentGenerations != 3 {
		t.Errorf("ContentGenerations = %d, want 3", rec.ContentGenerations)
	}
	if rec.AuditsThisMonth != 1 {
		t.Errorf("AuditsThisMonth = %d, want 1", rec.AuditsThisMonth)
	}
}

func TestUsageIncrementWithoutRecord(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUsageRepository(db)
	ctx := context.Background()

	u := seedUser(t, db, "norecord@example.com")

	err := repo.Increment(ctx, u.ID, usage.CounterCitations)
	if !apperrors.IsNotFound(err) {
		t.Errorf("Increment() without record error = %v, want not found", err)
	}
}

func TestUsageSaveRoundTripsTimes(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUsageRepository(db)
	ctx := context.Background()

	u := seedUser(t, db, "times@example.com")

	lastAudit := time.Date(2026, 3, 5, 14, 30, 0, 0, time.UTC)
	period := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	rec := &usage.Usage{
		UserID:          u.ID,
		AuditsThisMonth: 2,
		LastAuditAt:     lastAudit,
		PeriodStart:     period,
		UpdatedAt:       time.Now().UTC(),
	}
	if err := repo.Save(ctx, rec); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := repo.Get(ctx, u.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !got.LastAuditAt.Equal(lastAudit) {
		t.Errorf("LastAuditAt = %v, want %v", got.LastAuditAt, lastAudit)
	}
	if !got.PeriodStart.Equal(period) {
		t.Errorf("PeriodStart = %v, want %v", got.PeriodStart, period)
	}
}
