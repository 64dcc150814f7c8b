package summary

import "context"

// Repository defines the interface for summary data access.
type Repository interface {
	Create(ctx context.Context, s *Summary) error
	ListBySite(ctx context.Context, userID int64, siteID string, limit int) ([]*Summary, error)
}
