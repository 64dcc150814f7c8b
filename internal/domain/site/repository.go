package site

import "context"

// Repository defines the interface for site and competitor data access.
// Deleting a site cascades to its audits, citations, entities, summaries and
// schemas at the storage layer.
type Repository interface {
	Create(ctx context.Context, s *Site) error
	GetByID(ctx context.Context, userID int64, id string) (*Site, error)
	List(ctx context.Context, userID int64) ([]*Site, error)
	Count(ctx context.Context, userID int64) (int64, error)
	Delete(ctx context.Context, userID int64, id string) error

	CreateCompetitor(ctx context.Context, c *Competitor) error
	GetCompetitor(ctx context.Context, userID int64, id string) (*Competitor, error)
	ListCompetitors(ctx context.Context, userID int64, siteID string) ([]*Competitor, error)
	CountCompetitors(ctx context.Context, userID int64, siteID string) (int64, error)
	DeleteCompetitor(ctx context.Context, userID int64, id string) error

	ListAll(ctx context.Context) ([]*Site, error)
}
