package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/seogenix/backend/internal/domain/audit"
	"github.com/seogenix/backend/internal/pkg/errors"
)

// AuditRepository implements audit.Repository.
type AuditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) audit.Repository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Create(ctx context.Context, a *audit.Audit) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO audits (site_id, user_id, ai_visibility_score, schema_score,
			semantic_score, citation_score, technical_seo_score, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		a.SiteID, a.UserID, a.AIVisibilityScore, a.SchemaScore,
		a.SemanticScore, a.CitationScore, a.TechnicalSEOScore, a.CreatedAt.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create audit", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return errors.DatabaseError("Failed to get audit ID", err)
	}
	a.ID = id
	return nil
}

func (r *AuditRepository) ListBySite(ctx context.Context, userID int64, siteID string, limit int) ([]*audit.Audit, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT id, site_id, user_id, ai_visibility_score, schema_score,
			semantic_score, citation_score, technical_seo_score, created_at
		FROM audits WHERE user_id = ? AND site_id = ?
		ORDER BY created_at DESC, id DESC LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, userID, siteID, limit)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list audits", err)
	}
	defer rows.Close()

	var audits []*audit.Audit
	for rows.Next() {
		var a audit.Audit
		var createdAt int64
		if err := rows.Scan(&a.ID, &a.SiteID, &a.UserID, &a.AIVisibilityScore, &a.SchemaScore,
			&a.SemanticScore, &a.CitationScore, &a.TechnicalSEOScore, &createdAt); err != nil {
			return nil, errors.DatabaseError("Failed to scan audit", err)
		}
		a.CreatedAt = time.Unix(createdAt, 0)
		audits = append(audits, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to read audits", err)
	}
	return audits, nil
}

func (r *AuditRepository) Latest(ctx context.Context, userID int64, siteID string) (*audit.Audit, error) {
	query := `
		SELECT id, site_id, user_id, ai_visibility_score, schema_score,
			semantic_score, citation_score, technical_seo_score, created_at
		FROM audits WHERE user_id = ? AND site_id = ?
		ORDER BY created_at DESC, id DESC LIMIT 1
	`
	var a audit.Audit
	var createdAt int64
	err := r.db.QueryRowContext(ctx, query, userID, siteID).Scan(
		&a.ID, &a.SiteID, &a.UserID, &a.AIVisibilityScore, &a.SchemaScore,
		&a.SemanticScore, &a.CitationScore, &a.TechnicalSEOScore, &createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Audit")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get latest audit", err)
	}
	a.CreatedAt = time.Unix(createdAt, 0)
	return &a, nil
}

func (r *AuditRepository) CreateCompetitorAudit(ctx context.Context, a *audit.CompetitorAudit) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO competitor_audits (competitor_id, user_id, ai_visibility_score,
			schema_score, semantic_score, citation_score, technical_seo_score, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		a.CompetitorID, a.UserID, a.AIVisibilityScore, a.SchemaScore,
		a.SemanticScore, a.CitationScore, a.TechnicalSEOScore, a.CreatedAt.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create competitor audit", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return errors.DatabaseError("Failed to get competitor audit ID", err)
	}
	a.ID = id
	return nil
}

func (r *AuditRepository) ListByCompetitor(ctx context.Context, userID int64, competitorID string, limit int) ([]*audit.CompetitorAudit, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT id, competitor_id, user_id, ai_visibility_score, schema_score,
			semantic_score, citation_score, technical_seo_score, created_at
		FROM competitor_audits WHERE user_id = ? AND competitor_id = ?
		ORDER BY created_at DESC, id DESC LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, userID, competitorID, limit)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list competitor audits", err)
	}
	defer rows.Close()

	var audits []*audit.CompetitorAudit
	for rows.Next() {
		var a audit.CompetitorAudit
		var createdAt int64
		if err := rows.Scan(&a.ID, &a.CompetitorID, &a.UserID, &a.AIVisibilityScore, &a.SchemaScore,
			&a.SemanticScore, &a.CitationScore, &a.TechnicalSEOScore, &createdAt); err != nil {
			return nil, errors.DatabaseError("Failed to scan competitor audit", err)
		}
		a.CreatedAt = time.Unix(createdAt, 0)
		audits = append(audits, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to read competitor audits", err)
	}
	return audits, nil
}
