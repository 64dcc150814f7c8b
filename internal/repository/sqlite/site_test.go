package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/seogenix/backend/internal/domain/audit"
	"github.com/seogenix/backend/internal/domain/site"
	apperrors "github.com/seogenix/backend/internal/pkg/errors"
	"github.com/seogenix/backend/internal/testutil"
)

func TestSiteCRUDScopedToOwner(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSiteRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner@example.com")
	other := seedUser(t, db, "other@example.com")

	st := &site.Site{ID: "site-1", UserID: owner.ID, URL: "https://example.com", Name: "Example", CreatedAt: time.Now()}
	if err := repo.Create(ctx, st); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := repo.GetByID(ctx, owner.ID, "site-1"); err != nil {
		t.Errorf("GetByID() as owner error = %v", err)
	}
	if _, err := repo.GetByID(ctx, other.ID, "site-1"); !apperrors.IsNotFound(err) {
		t.Errorf("GetByID() as other account error = %v, want not found", err)
	}

	n, err := repo.Count(ctx, owner.ID)
	if err != nil || n != 1 {
		t.Errorf("Count() = %d, %v, want 1", n, err)
	}

	if err := repo.Delete(ctx, other.ID, "site-1"); !apperrors.IsNotFound(err) {
		t.Errorf("Delete() as other account error = %v, want not found", err)
	}
	if err := repo.Delete(ctx, owner.ID, "site-1"); err != nil {
		t.Errorf("Delete() as owner error = %v", err)
	}
}

func TestSiteDeleteCascadesToAudits(t *testing.T) {
	db := testutil.NewTestDB(t)
	sites := NewSiteRepository(db)
	audits := NewAuditRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "cascade@example.com")

	st := &site.Site{ID: "site-1", UserID: owner.ID, URL: "https://example.com", CreatedAt: time.Now()}
	if err := sites.Create(ctx, st); err != nil {
		t.Fatalf("Create site: %v", err)
	}
	a := &audit.Audit{
		SiteID: "site-1", UserID: owner.ID,
		AIVisibilityScore: 70, SchemaScore: 60, SemanticScore: 75,
		CitationScore: 50, TechnicalSEOScore: 65,
		CreatedAt: time.Now(),
	}
	if err := audits.Create(ctx, a); err != nil {
		t.Fatalf("Create audit: %v", err)
	}

	if err := sites.Delete(ctx, owner.ID, "site-1"); err != nil {
		t.Fatalf("Delete site: %v", err)
	}

	if _, err := audits.Latest(ctx, owner.ID, "site-1"); !apperrors.IsNotFound(err) {
		t.Errorf("Latest() after site delete error = %v, want not found", err)
	}
}

func TestCompetitorLifecycle(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSiteRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "comp@example.com")
	st := &site.Site{ID: "site-1", UserID: owner.ID, URL: "https://mine.example", CreatedAt: time.Now()}
	if err := repo.Create(ctx, st); err != nil {
		t.Fatalf("Create site: %v", err)
	}

	c := &site.Competitor{ID: "comp-1", SiteID: "site-1", UserID: owner.ID, URL: "https://rival.example", CreatedAt: time.Now()}
	if err := repo.CreateCompetitor(ctx, c); err != nil {
		t.Fatalf("CreateCompetitor() error = %v", err)
	}

	list, err := repo.ListCompetitors(ctx, owner.ID, "site-1")
	if err != nil || len(list) != 1 {
		t.Fatalf("ListCompetitors() = %d, %v, want 1", len(list), err)
	}
	n, err := repo.CountCompetitors(ctx, owner.ID, "site-1")
	if err != nil || n != 1 {
		t.Errorf("CountCompetitors() = %d, %v, want 1", n, err)
	}

	if err := repo.DeleteCompetitor(ctx, owner.ID, "comp-1"); err != nil {
		t.Errorf("DeleteCompetitor() error = %v", err)
	}
	if _, err := repo.GetCompetitor(ctx, owner.ID, "comp-1"); !apperrors.IsNotFound(err) {
		t.Errorf("GetCompetitor() after delete error = %v, want not found", err)
	}
}
