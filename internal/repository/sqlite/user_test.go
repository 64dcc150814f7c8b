package sqlite

import (
	"context"
	"database/sql"
	"testing"

	"github.com/seogenix/backend/internal/domain/plan"
	"github.com/seogenix/backend/internal/domain/user"
	apperrors "github.com/seogenix/backend/internal/pkg/errors"
	"github.com/seogenix/backend/internal/testutil"
)

func seedUser(t *testing.T, db *sql.DB, email string) *user.User {
	t.Helper()
	repo := NewUserRepository(db)
	u := &user.User{
		Email:        email,
		PasswordHash: "x",
		Tier:         plan.TierFree,
	}
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("Create user: %v", err)
	}
	return u
}

func TestUserCreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := seedUser(t, db, "a@example.com")
	if u.ID == 0 {
		t.Fatal("Create did not assign an ID")
	}

	byID, err := repo.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if byID.Email != "a@example.com" || byID.Tier != plan.TierFree {
		t.Errorf("GetByID() = %+v", byID)
	}

	byEmail, err := repo.GetByEmail(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if byEmail.ID != u.ID {
		t.Errorf("GetByEmail().ID = %d, want %d", byEmail.ID, u.ID)
	}

	if _, err := repo.GetByEmail(ctx, "missing@example.com"); !apperrors.IsNotFound(err) {
		t.Errorf("GetByEmail(missing) error = %v, want not found", err)
	}
}

func TestUserUpdateTier(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := seedUser(t, db, "b@example.com")
	if err := repo.UpdateTier(ctx, u.ID, string(plan.TierPro)); err != nil {
		t.Fatalf("UpdateTier() error = %v", err)
	}

	got, err := repo.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Tier != plan.TierPro {
		t.Errorf("Tier = %q, want %q", got.Tier, plan.TierPro)
	}

	if err := repo.UpdateTier(ctx, 9999, string(plan.TierPro)); !apperrors.IsNotFound(err) {
		t.Errorf("UpdateTier(unknown) error = %v, want not found", err)
	}
}

func TestPreferencesDefaultThenRoundTrip(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := seedUser(t, db, "c@example.com")

	// Never saved: defaults, not an error.
	p, err := repo.GetPreferences(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetPreferences() error = %v", err)
	}
	if len(p.DismissedHints) != 0 || p.WeeklyDigest {
		t.Errorf("default preferences = %+v", p)
	}

	p.DismissedHints = []string{"onboarding_tour", "schema_intro"}
	p.WeeklyDigest = true
	if err := repo.SavePreferences(ctx, p); err != nil {
		t.Fatalf("SavePreferences() error = %v", err)
	}

	got, err := repo.GetPreferences(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetPreferences() after save error = %v", err)
	}
	if len(got.DismissedHints) != 2 || got.DismissedHints[0] != "onboarding_tour" {
		t.Errorf("DismissedHints = %v", got.DismissedHints)
	}
	if !got.WeeklyDigest {
		t.Error("WeeklyDigest not persisted")
	}

	// Saving again overwrites rather than duplicating.
	got.DismissedHints = []string{"schema_intro"}
	got.WeeklyDigest = false
	if err := repo.SavePreferences(ctx, got); err != nil {
		t.Fatalf("second SavePreferences() error = %v", err)
	}
	final, _ := repo.GetPreferences(ctx, u.ID)
	if len(final.DismissedHints) != 1 || final.WeeklyDigest {
		t.Errorf("preferences after overwrite = %+v", final)
	}
}
