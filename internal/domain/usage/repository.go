package usage

import "context"

// Repository defines the interface for usage data access.
type Repository interface {
	// Get retrieves the usage record for a user, creating a zeroed record
	// anchored at the current period when none exists.
	Get(ctx context.Context, userID int64) (*Usage, error)

	// Save persists a usage record.
	Save(ctx context.Context, u *Usage) error

	// Increment atomically adds one to the named counter.
	Increment(ctx context.Context, userID int64, counter Counter) error
}
