package citation

import "context"

// Repository defines the interface for citation data access.
type Repository interface {
	CreateBatch(ctx context.Context, citations []*Citation) error
	ListBySite(ctx context.Context, userID int64, siteID string, limit int) ([]*Citation, error)
}
