package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/seogenix/backend/internal/domain/site"
	"github.com/seogenix/backend/internal/pkg/errors"
)

// SiteRepository implements site.Repository.
type SiteRepository struct {
	db *sql.DB
}

func NewSiteRepository(db *sql.DB) site.Repository {
	return &SiteRepository{db: db}
}

func (r *SiteRepository) Create(ctx context.Context, s *site.Site) error {
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now

	query := `
		INSERT INTO sites (id, user_id, url, name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	if _, err := r.db.ExecContext(ctx, query, s.ID, s.UserID, s.URL, s.Name, now.Unix(), now.Unix()); err != nil {
		return errors.DatabaseError("Failed to create site", err)
	}
	return nil
}

func (r *SiteRepository) GetByID(ctx context.Context, userID int64, id string) (*site.Site, error) {
	query := `
		SELECT id, user_id, url, name, created_at, updated_at
		FROM sites WHERE id = ? AND user_id = ?
	`
	s, err := scanSite(r.db.QueryRowContext(ctx, query, id, userID))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Site")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get site", err)
	}
	return s, nil
}

func (r *SiteRepository) List(ctx context.Context, userID int64) ([]*site.Site, error) {
	query := `
		SELECT id, user_id, url, name, created_at, updated_at
		FROM sites WHERE user_id = ? ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list sites", err)
	}
	defer rows.Close()

	var sites []*site.Site
	for rows.Next() {
		s, err := scanSite(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan site", err)
		}
		sites = append(sites, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to read sites", err)
	}
	return sites, nil
}

func (r *SiteRepository) Count(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sites WHERE user_id = ?", userID).Scan(&count)
	if err != nil {
		return 0, errors.DatabaseError("Failed to count sites", err)
	}
	return count, nil
}

func (r *SiteRepository) Delete(ctx context.Context, userID int64, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM sites WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return errors.DatabaseError("Failed to delete site", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return errors.NotFound("Site")
	}
	return nil
}

func (r *SiteRepository) CreateCompetitor(ctx context.Context, c *site.Competitor) error {
	now := time.Now()
	c.CreatedAt = now

	query := `
		INSERT INTO competitors (id, site_id, user_id, url, name, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	if _, err := r.db.ExecContext(ctx, query, c.ID, c.SiteID, c.UserID, c.URL, c.Name, now.Unix()); err != nil {
		return errors.DatabaseError("Failed to create competitor", err)
	}
	return nil
}

func (r *SiteRepository) GetCompetitor(ctx context.Context, userID int64, id string) (*site.Competitor, error) {
	query := `
		SELECT id, site_id, user_id, url, name, created_at
		FROM competitors WHERE id = ? AND user_id = ?
	`
	c, err := scanCompetitor(r.db.QueryRowContext(ctx, query, id, userID))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Competitor")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get competitor", err)
	}
	return c, nil
}

func (r *SiteRepository) ListCompetitors(ctx context.Context, userID int64, siteID string) ([]*site.Competitor, error) {
	query := `
		SELECT id, site_id, user_id, url, name, created_at
		FROM competitors WHERE user_id = ? AND site_id = ? ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID, siteID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list competitors", err)
	}
	defer rows.Close()

	var competitors []*site.Competitor
	for rows.Next() {
		c, err := scanCompetitor(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan competitor", err)
		}
		competitors = append(competitors, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to read competitors", err)
	}
	return competitors, nil
}

func (r *SiteRepository) CountCompetitors(ctx context.Context, userID int64, siteID string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM competitors WHERE user_id = ? AND site_id = ?", userID, siteID,
	).Scan(&count)
	if err != nil {
		return 0, errors.DatabaseError("Failed to count competitors", err)
	}
	return count, nil
}

func (r *SiteRepository) DeleteCompetitor(ctx context.Context, userID int64, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM competitors WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return errors.DatabaseError("Failed to delete competitor", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return errors.NotFound("Competitor")
	}
	return nil
}

func (r *SiteRepository) ListAll(ctx context.Context) ([]*site.Site, error) {
	query := `
		SELECT id, user_id, url, name, created_at, updated_at
		FROM sites ORDER BY user_id, created_at
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list all sites", err)
	}
	defer rows.Close()

	var sites []*site.Site
	for rows.Next() {
		s, err := scanSite(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan site", err)
		}
		sites = append(sites, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to read sites", err)
	}
	return sites, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSite(row rowScanner) (*site.Site, error) {
	var s site.Site
	var name sql.NullString
	var createdAt, updatedAt int64
	if err := row.Scan(&s.ID, &s.UserID, &s.URL, &name, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if name.Valid {
		s.Name = name.String
	}
	s.CreatedAt = time.Unix(createdAt, 0)
	s.UpdatedAt = time.Unix(updatedAt, 0)
	return &s, nil
}

func scanCompetitor(row rowScanner) (*site.Competitor, error) {
	var c site.Competitor
	var name sql.NullString
	var createdAt int64
	if err := row.Scan(&c.ID, &c.SiteID, &c.UserID, &c.URL, &name, &createdAt); err != nil {
		return nil, err
	}
	if name.Valid {
		c.Name = name.String
	}
	c.CreatedAt = time.Unix(createdAt, 0)
	return &c, nil
}
