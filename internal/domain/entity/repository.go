package entity

import "context"

// Repository defines the interface for entity data access.
type Repository interface {
	// Replace deletes the site's existing entities and stores the new set in
	// one transaction.
	Replace(ctx context.Context, userID int64, siteID string, entities []*Entity) error
	ListBySite(ctx context.Context, userID int64, siteID string) ([]*Entity, error)
}
