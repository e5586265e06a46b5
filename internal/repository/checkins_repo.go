package repository

import (
	"context"

	"carecircle/internal/domain"
)

// CheckInsRepository accesses the checkins table. Check-ins are append-only.
type CheckInsRepository interface {
	CreateCheckIn(ctx context.Context, c *domain.CheckIn) (int64, error)
	// ListCheckInsForUser returns a user's check-ins, newest first.
	ListCheckInsForUser(ctx context.Context, userID int64, limit int) ([]*domain.CheckIn, error)
	// ListCheckInsForClients returns all check-ins of the given clients, for
	// feed aggregation.
	ListCheckInsForClients(ctx context.Context, clientIDs []int64) ([]*domain.CheckIn, error)
}
