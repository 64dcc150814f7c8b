package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/seogenix/backend/internal/domain/markup"
	"github.com/seogenix/backend/internal/pkg/errors"
)

// MarkupRepository implements markup.Repository.
type MarkupRepository struct {
	db *sql.DB
}

func NewMarkupRepository(db *sql.DB) markup.Repository {
	return &MarkupRepository{db: db}
}

func (r *MarkupRepository) Create(ctx context.Context, s *markup.Schema) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}

	var siteID interface{}
	if s.SiteID != "" {
		siteID = s.SiteID
	}

	query := `
		INSERT INTO schemas (site_id, user_id, url, schema_type, jsonld, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		siteID, s.UserID, s.URL, s.SchemaType, s.JSONLD, s.CreatedAt.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create schema", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return errors.DatabaseError("Failed to get schema ID", err)
	}
	s.ID = id
	return nil
}

func (r *MarkupRepository) ListBySite(ctx context.Context, userID int64, siteID string, limit int) ([]*markup.Schema, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT id, site_id, user_id, url, schema_type, jsonld, created_at
		FROM schemas WHERE user_id = ? AND site_id = ?
		ORDER BY created_at DESC, id DESC LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, userID, siteID, limit)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list schemas", err)
	}
	defer rows.Close()

	var schemas []*markup.Schema
	for rows.Next() {
		var s markup.Schema
		var sid sql.NullString
		var createdAt int64
		if err := rows.Scan(&s.ID, &sid, &s.UserID, &s.URL, &s.SchemaType, &s.JSONLD, &createdAt); err != nil {
			return nil, errors.DatabaseError("Failed to scan schema", err)
		}
		s.SiteID = sid.String
		s.CreatedAt = time.Unix(createdAt, 0)
		schemas = append(schemas, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to read schemas", err)
	}
	return schemas, nil
}
