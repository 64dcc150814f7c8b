package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/seogenix/backend/internal/domain/citation"
	"github.com/seogenix/backend/internal/pkg/errors"
)

// CitationRepository implements citation.Repository.
type CitationRepository struct {
	db *sql.DB
}

func NewCitationRepository(db *sql.DB) citation.Repository {
	return &CitationRepository{db: db}
}

func (r *CitationRepository) CreateBatch(ctx context.Context, citations []*citation.Citation) error {
	if len(citations) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.DatabaseError("Failed to begin transaction", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO citations (id, site_id, user_id, source_type, snippet, source_url, detected_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	for _, c := range citations {
		if c.DetectedAt.IsZero() {
			c.DetectedAt = time.Now()
		}
		if _, err := tx.ExecContext(ctx, query,
			c.ID, c.SiteID, c.UserID, c.SourceType, c.Snippet, c.SourceURL, c.DetectedAt.Unix(),
		); err != nil {
			return errors.DatabaseError("Failed to create citation", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.DatabaseError("Failed to commit citations", err)
	}
	return nil
}

func (r *CitationRepository) ListBySite(ctx context.Context, userID int64, siteID string, limit int) ([]*citation.Citation, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, site_id, user_id, source_type, snippet, source_url, detected_at
		FROM citations WHERE user_id = ? AND site_id = ?
		ORDER BY detected_at DESC LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, userID, siteID, limit)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list citations", err)
	}
	defer rows.Close()

	var citations []*citation.Citation
	for rows.Next() {
		var c citation.Citation
		var snippet, sourceURL sql.NullString
		var detectedAt int64
		if err := rows.Scan(&c.ID, &c.SiteID, &c.UserID, &c.SourceType, &snippet, &sourceURL, &detectedAt); err != nil {
			return nil, errors.DatabaseError("Failed to scan citation", err)
		}
		c.Snippet = snippet.String
		c.SourceURL = sourceURL.String
		c.DetectedAt = time.Unix(detectedAt, 0)
		citations = append(citations, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to read citations", err)
	}
	return citations, nil
}
