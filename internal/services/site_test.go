package services

import (
	"context"
	"errors"
	"testing"

	"github.com/seogenix/backend/internal/domain/plan"
	"github.com/seogenix/backend/internal/domain/usage"
	"github.com/seogenix/backend/internal/entitlement"
	apperrors "github.com/seogenix/backend/internal/pkg/errors"
	"github.com/seogenix/backend/internal/testutil"
)

func engineFor(t *testing.T, tier plan.Tier) entitlement.Engine {
	t.Helper()
	return entitlement.New(testutil.TestCatalog(t).Get(tier), usage.Usage{})
}

func TestSiteCreateNormalizesURL(t *testing.T) {
	svc := NewSiteService(testutil.NewMockSiteRepository(), testLogger())
	eng := engineFor(t, plan.TierAgency)

	st, err := svc.Create(context.Background(), 1, eng, "  https://example.com/  ", "Example")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if st.URL != "https://example.com" {
		t.Errorf("URL = %q, want trimmed https://example.com", st.URL)
	}
	if st.ID == "" {
		t.Error("ID not assigned")
	}
}

func TestSiteCreateRejectsInvalidURL(t *testing.T) {
	svc := NewSiteService(testutil.NewMockSiteRepository(), testLogger())
	eng := engineFor(t, plan.TierAgency)

	tests := []string{"", "example.com", "ftp://example.com", "https://"}
	for _, raw := range tests {
		if _, err := svc.Create(context.Background(), 1, eng, raw, ""); err == nil {
			t.Errorf("Create(%q) error = nil, want bad request", raw)
		}
	}
}

func TestSiteCreateEnforcesPlanLimit(t *testing.T) {
	repo := testutil.NewMockSiteRepository()
	svc := NewSiteService(repo, testLogger())
	eng := engineFor(t, plan.TierFree) // one site allowed

	ctx := context.Background()
	if _, err := svc.Create(ctx, 1, eng, "https://first.example", ""); err != nil {
		t.Fatalf("first Create() error = %v", err)
	}

	_, err := svc.Create(ctx, 1, eng, "https://second.example", "")
	if err == nil {
		t.Fatal("second Create() error = nil, want quota exceeded")
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrCodeQuotaExceeded {
		t.Errorf("error = %v, want code %s", err, apperrors.ErrCodeQuotaExceeded)
	}
}

func TestAddCompetitorEnforcesPlanLimit(t *testing.T) {
	repo := testutil.NewMockSiteRepository()
	svc := NewSiteService(repo, testLogger())

	ctx := context.Background()
	st, err := svc.Create(ctx, 1, engineFor(t, plan.TierCore), "https://mine.example", "")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Core allows two competitors per site.
	core := engineFor(t, plan.TierCore)
	for i, u := range []string{"https://rival-a.example", "https://rival-b.example"} {
		if _, err := svc.AddCompetitor(ctx, 1, core, st.ID, u, ""); err != nil {
			t.Fatalf("AddCompetitor() #%d error = %v", i+1, err)
		}
	}

	_, err = svc.AddCompetitor(ctx, 1, core, st.ID, "https://rival-c.example", "")
	if err == nil {
		t.Fatal("third AddCompetitor() error = nil, want quota exceeded")
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrCodeQuotaExceeded {
		t.Errorf("error = %v, want code %s", err, apperrors.ErrCodeQuotaExceeded)
	}
}

func TestAddCompetitorRequiresOwnedSite(t *testing.T) {
	svc := NewSiteService(testutil.NewMockSiteRepository(), testLogger())

	_, err := svc.AddCompetitor(context.Background(), 1, engineFor(t, plan.TierPro), "missing", "https://rival.example", "")
	if err == nil {
		t.Fatal("AddCompetitor() error = nil for unknown site")
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrCodeNotFound {
		t.Errorf("error = %v, want code %s", err, apperrors.ErrCodeNotFound)
	}
}
