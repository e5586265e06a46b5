package repository

import (
	"context"

	"carecircle/internal/domain"
)

// MemoriesRepository accesses the memories table.
type MemoriesRepository interface {
	CreateMemory(ctx context.Context, m *domain.Memory) (int64, error)
	GetMemory(ctx context.Context, id int64) (*domain.Memory, error)
	// UpdateMemory overwrites the mutable columns of an existing memory.
	UpdateMemory(ctx context.Context, m *domain.Memory) error
	DeleteMemory(ctx context.Context, id int64) error
	// ListMemories returns memories ordered by occurred_at, newest first.
	ListMemories(ctx context.Context, limit, offset int) ([]*domain.Memory, error)
	// ListMemoriesForClients returns memories owned by the given clients
	// plus unowned (user_id IS NULL) rows, for feed aggregation. The
	// unowned rows predate client scoping; including them is a
	// compatibility shim, not an authorization rule.
	ListMemoriesForClients(ctx context.Context, clientIDs []int64) ([]*domain.Memory, error)
}
