package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/seogenix/backend/internal/domain/entity"
	"github.com/seogenix/backend/internal/pkg/errors"
)

// EntityRepository implements entity.Repository.
type EntityRepository struct {
	db *sql.DB
}

func NewEntityRepository(db *sql.DB) entity.Repository {
	return &EntityRepository{db: db}
}

func (r *EntityRepository) Replace(ctx context.Context, userID int64, siteID string, entities []*entity.Entity) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.DatabaseError("Failed to begin transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM entities WHERE user_id = ? AND site_id = ?", userID, siteID,
	); err != nil {
		return errors.DatabaseError("Failed to clear entities", err)
	}

	query := `
		INSERT INTO entities (site_id, user_id, name, entity_type, mention_count, gap, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	for _, e := range entities {
		if e.CreatedAt.IsZero() {
			e.CreatedAt = time.Now()
		}
		gap := 0
		if e.Gap {
			gap = 1
		}
		result, err := tx.ExecContext(ctx, query,
			siteID, userID, e.Name, e.Type, e.Mentions, gap, e.CreatedAt.Unix(),
		)
		if err != nil {
			return errors.DatabaseError("Failed to create entity", err)
		}
		if id, err := result.LastInsertId(); err == nil {
			e.ID = id
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.DatabaseError("Failed to commit entities", err)
	}
	return nil
}

func (r *EntityRepository) ListBySite(ctx context.Context, userID int64, siteID string) ([]*entity.Entity, error) {
	query := `
		SELECT id, site_id, user_id, name, entity_type, mention_count, gap, created_at
		FROM entities WHERE user_id = ? AND site_id = ?
		ORDER BY mention_count DESC, name
	`
	rows, err := r.db.QueryContext(ctx, query, userID, siteID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list entities", err)
	}
	defer rows.Close()

	var entities []*entity.Entity
	for rows.Next() {
		var e entity.Entity
		var entityType sql.NullString
		var gap int
		var createdAt int64
		if err := rows.Scan(&e.ID, &e.SiteID, &e.UserID, &e.Name, &entityType, &e.Mentions, &gap, &createdAt); err != nil {
			return nil, errors.DatabaseError("Failed to scan entity", err)
		}
		e.Type = entityType.String
		e.Gap = gap != 0
		e.CreatedAt = time.Unix(createdAt, 0)
		entities = append(entities, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to read entities", err)
	}
	return entities, nil
}
