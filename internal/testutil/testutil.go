package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/seogenix/backend/internal/domain/plan"
	"github.com/seogenix/backend/migrations"
)

// NewTestDB opens an in-memory SQLite database with the full schema applied.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	if err := applyMigrations(db); err != nil {
		t.Fatalf("Failed to apply migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

func applyMigrations(db *sql.DB) error {
	files, err := migrations.Files.ReadDir(".")
	if err != nil {
		return err
	}
	for _, f := range files {
		data, err := migrations.Files.ReadFile(f.Name())
		if err != nil {
			return err
		}
		if _, err := db.Exec(string(data)); err != nil {
			return err
		}
	}
	return nil
}

// TestCatalog returns the compiled-in plan table, failing the test when it
// does not validate.
func TestCatalog(t *testing.T) plan.Catalog {
	t.Helper()

	catalog, err := plan.DefaultCatalog()
	if err != nil {
		t.Fatalf("Failed to build plan catalog: %v", err)
	}
	return catalog
}
