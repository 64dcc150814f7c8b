package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/seogenix/backend/internal/domain/summary"
	"github.com/seogenix/backend/internal/pkg/errors"
)

// SummaryRepository implements summary.Repository.
type SummaryRepository struct {
	db *sql.DB
}

func NewSummaryRepository(db *sql.DB) summary.Repository {
	return &SummaryRepository{db: db}
}

func (r *SummaryRepository) Create(ctx context.Context, s *summary.Summary) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO summaries (site_id, user_id, summary_type, content, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		s.SiteID, s.UserID, s.SummaryType, s.Content, s.CreatedAt.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create summary", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return errors.DatabaseError("Failed to get summary ID", err)
	}
	s.ID = id
	return nil
}

func (r *SummaryRepository) ListBySite(ctx context.Context, userID int64, siteID string, limit int) ([]*summary.Summary, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT id, site_id, user_id, summary_type, content, created_at
		FROM summaries WHERE user_id = ? AND site_id = ?
		ORDER BY created_at DESC, id DESC LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, userID, siteID, limit)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list summaries", err)
	}
	defer rows.Close()

	var summaries []*summary.Summary
	for rows.Next() {
		var s summary.Summary
		var createdAt int64
		if err := rows.Scan(&s.ID, &s.SiteID, &s.UserID, &s.SummaryType, &s.Content, &createdAt); err != nil {
			return nil, errors.DatabaseError("Failed to scan summary", err)
		}
		s.CreatedAt = time.Unix(createdAt, 0)
		summaries = append(summaries, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to read summaries", err)
	}
	return summaries, nil
}
