package repository

import (
	"context"

	"carecircle/internal/domain"
)

// TasksRepository accesses the tasks table.
type TasksRepository interface {
	CreateTask(ctx context.Context, t *domain.Task) (int64, error)
	GetTask(ctx context.Context, id int64) (*domain.Task, error)
	// UpdateTask overwrites the mutable columns of an existing task.
	UpdateTask(ctx context.Context, t *domain.Task) error
	// ListTasksForUser returns a user's tasks, newest first. status filters
	// when non-empty.
	ListTasksForUser(ctx context.Context, userID int64, status string, limit int) ([]*domain.Task, error)
	// ListActionableTasks returns open and missed tasks for the given
	// clients, for feed aggregation.
	ListActionableTasks(ctx context.Context, clientIDs []int64) ([]*domain.Task, error)
}
