package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/seogenix/backend/internal/domain/usage"
	"github.com/seogenix/backend/internal/pkg/errors"
)

// UsageRepository implements usage.Repository.
type UsageRepository struct {
	db *sql.DB
}

func NewUsageRepository(db *sql.DB) usage.Repository {
	return &UsageRepository{db: db}
}

// counterColumns maps counters to their columns. Increment builds SQL from
// this map only, never from caller input.
var counterColumns = map[usage.Counter]string{
	usage.CounterCitations:            "citations_used",
	usage.CounterContentGenerations:   "content_generations",
	usage.CounterContentOptimizations: "content_optimizations",
	usage.CounterPromptSuggestions:    "prompt_suggestions",
	usage.CounterAudits:               "audits_this_month",
}

func (r *UsageRepository) Get(ctx context.Context, userID int64) (*usage.Usage, error) {
	query := `
		SELECT citations_used, content_generations, content_optimizations,
		       prompt_suggestions, audits_this_month, last_audit_at, period_start, updated_at
		FROM usage_records WHERE user_id = ?
	`

	u := &usage.Usage{UserID: userID}
	var lastAuditAt, periodStart, updatedAt int64

	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&u.CitationsUsed, &u.ContentGenerations, &u.ContentOptimizations,
		&u.PromptSuggestions, &u.AuditsThisMonth, &lastAuditAt, &periodStart, &updatedAt,
	)
	if err == sql.ErrNoRows {
		now := time.Now().UTC()
		u.PeriodStart = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		u.UpdatedAt = now
		if err := r.Save(ctx, u); err != nil {
			return nil, err
		}
		return u, nil
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get usage", err)
	}

	if lastAuditAt > 0 {
		u.LastAuditAt = time.Unix(lastAuditAt, 0).UTC()
	}
	u.PeriodStart = time.Unix(periodStart, 0).UTC()
	u.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return u, nil
}

func (r *UsageRepository) Save(ctx context.Context, u *usage.Usage) error {
	var lastAuditAt int64
	if !u.LastAuditAt.IsZero() {
		lastAuditAt = u.LastAuditAt.Unix()
	}

	query := `
		INSERT INTO usage_records (user_id, citations_used, content_generations,
			content_optimizations, prompt_suggestions, audits_this_month,
			last_audit_at, period_start, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			citations_used = excluded.citations_used,
			content_generations = excluded.content_generations,
			content_optimizations = excluded.content_optimizations,
			prompt_suggestions = excluded.prompt_suggestions,
			audits_this_month = excluded.audits_this_month,
			last_audit_at = excluded.last_audit_at,
			period_start = excluded.period_start,
			updated_at = excluded.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		u.UserID, u.CitationsUsed, u.ContentGenerations, u.ContentOptimizations,
		u.PromptSuggestions, u.AuditsThisMonth, lastAuditAt, u.PeriodStart.Unix(), u.UpdatedAt.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to save usage", err)
	}
	return nil
}

func (r *UsageRepository) Increment(ctx context.Context, userID int64, counter usage.Counter) error {
	column, ok := counterColumns[counter]
	if !ok {
		return errors.Internal("unknown usage counter", fmt.Errorf("counter %q", counter))
	}

	query := fmt.Sprintf(
		"UPDATE usage_records SET %s = %s + 1, updated_at = ? WHERE user_id = ?",
		column, column,
	)
	result, err := r.db.ExecContext(ctx, query, time.Now().Unix(), userID)
	if err != nil {
		return errors.DatabaseError("Failed to increment usage", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return errors.NotFound("Usage record")
	}
	return nil
}
