package repository

import (
	"context"

	"carecircle/internal/domain"
)

// CircleRepository accesses the circle_links table.
type CircleRepository interface {
	// LinksByMember returns the links where the person is the member side,
	// restricted to the given link roles.
	LinksByMember(ctx context.Context, memberID int64, roles []string) ([]*domain.CircleLink, error)

	// LinksByClient returns the links of a client restricted to the given
	// roles, excluding excludeMemberID (0 excludes nobody).
	LinksByClient(ctx context.Context, clientID int64, roles []string, excludeMemberID int64) ([]*domain.CircleLink, error)

	// GetLink returns the single link for the (client, member) pair.
	GetLink(ctx context.Context, clientID, memberID int64) (*domain.CircleLink, error)

	// UpsertLink inserts or overwrites the link for (link.ClientID,
	// link.MemberID) and fills in ID/CreatedAt. Last write wins.
	UpsertLink(ctx context.Context, link *domain.CircleLink) error
}
