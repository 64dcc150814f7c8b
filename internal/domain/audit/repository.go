package audit

import "context"

// Repository defines the interface for audit data access. Audits are append
// only; the canonical read order is most-recent-first.
type Repository interface {
	Create(ctx context.Context, a *Audit) error
	ListBySite(ctx context.Context, userID int64, siteID string, limit int) ([]*Audit, error)
	Latest(ctx context.Context, userID int64, siteID string) (*Audit, error)

	CreateCompetitorAudit(ctx context.Context, a *CompetitorAudit) error
	ListByCompetitor(ctx context.Context, userID int64, competitorID string, limit int) ([]*CompetitorAudit, error)
}
