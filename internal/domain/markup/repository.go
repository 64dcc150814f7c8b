package markup

import "context"

// Repository defines the interface for schema markup data access.
type Repository interface {
	Create(ctx context.Context, s *Schema) error
	ListBySite(ctx context.Context, userID int64, siteID string, limit int) ([]*Schema, error)
}
