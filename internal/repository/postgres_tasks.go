package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"carecircle/internal/domain"
)

// PostgresTasksRepository implements TasksRepository.
type PostgresTasksRepository struct {
	db *sql.DB
}

func NewPostgresTasksRepository(db *sql.DB) *PostgresTasksRepository {
	return &PostgresTasksRepository{db: db}
}

var _ TasksRepository = (*PostgresTasksRepository)(nil)

const taskColumns = `
	id,
	user_id,
	assigned_by,
	title,
	COALESCE(description, '') AS description,
	due_at,
	COALESCE(repeat, '') AS repeat,
	status,
	created_at
`

func scanTask(row interface{ Scan(...any) error }) (*domain.Task, error) {
	var t domain.Task
	var dueAt sql.NullTime
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.AssignedBy,
		&t.Title,
		&t.Description,
		&dueAt,
		&t.Repeat,
		&t.Status,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if dueAt.Valid {
		t.DueAt = &dueAt.Time
	}
	return &t, nil
}

func (r *PostgresTasksRepository) CreateTask(ctx context.Context, t *domain.Task) (int64, error) {
	query := `
		INSERT INTO tasks (user_id, assigned_by, title, description, due_at, repeat, status)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, NULLIF($6, ''), $7)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		t.UserID, t.AssignedBy, t.Title, t.Description, t.DueAt, t.Repeat, t.Status,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to create task: %w", err)
	}
	return t.ID, nil
}

func (r *PostgresTasksRepository) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	t, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return t, nil
}

func (r *PostgresTasksRepository) UpdateTask(ctx context.Context, t *domain.Task) error {
	query := `
		UPDATE tasks
		SET title = $2,
		    description = NULLIF($3, ''),
		    due_at = $4,
		    repeat = NULLIF($5, ''),
		    status = $6
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query,
		t.ID, t.Title, t.Description, t.DueAt, t.Repeat, t.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresTasksRepository) ListTasksForUser(ctx context.Context, userID int64, status string, limit int) ([]*domain.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE user_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3
	`

	rows, err := r.db.QueryContext(ctx, query, userID, status, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	return collectTasks(rows)
}

func (r *PostgresTasksRepository) ListActionableTasks(ctx context.Context, clientIDs []int64) ([]*domain.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE user_id = ANY($1) AND status IN ('open', 'missed')
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(clientIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to list actionable tasks: %w", err)
	}
	defer rows.Close()

	return collectTasks(rows)
}

func collectTasks(rows *sql.Rows) ([]*domain.Task, error) {
	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}
