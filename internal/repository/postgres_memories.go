package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"carecircle/internal/domain"
)

// PostgresMemoriesRepository implements MemoriesRepository.
type PostgresMemoriesRepository struct {
	db *sql.DB
}

func NewPostgresMemoriesRepository(db *sql.DB) *PostgresMemoriesRepository {
	return &PostgresMemoriesRepository{db: db}
}

var _ MemoriesRepository = (*PostgresMemoriesRepository)(nil)

const memoryColumns = `
	id,
	user_id,
	title,
	COALESCE(note, '') AS note,
	COALESCE(image_url, '') AS image_url,
	occurred_at,
	created_at
`

func scanMemory(row interface{ Scan(...any) error }) (*domain.Memory, error) {
	var m domain.Memory
	var userID sql.NullInt64
	err := row.Scan(
		&m.ID,
		&userID,
		&m.Title,
		&m.Note,
		&m.ImageURL,
		&m.OccurredAt,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if userID.Valid {
		m.UserID = &userID.Int64
	}
	return &m, nil
}

func (r *PostgresMemoriesRepository) CreateMemory(ctx context.Context, m *domain.Memory) (int64, error) {
	query := `
		INSERT INTO memories (user_id, title, note, image_url, occurred_at)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		m.UserID, m.Title, m.Note, m.ImageURL, m.OccurredAt,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to create memory: %w", err)
	}
	return m.ID, nil
}

func (r *PostgresMemoriesRepository) GetMemory(ctx context.Context, id int64) (*domain.Memory, error) {
	query := `SELECT ` + memoryColumns + ` FROM memories WHERE id = $1`

	m, err := scanMemory(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get memory: %w", err)
	}
	return m, nil
}

func (r *PostgresMemoriesRepository) UpdateMemory(ctx context.Context, m *domain.Memory) error {
	query := `
		UPDATE memories
		SET user_id = $2,
		    title = $3,
		    note = NULLIF($4, ''),
		    image_url = NULLIF($5, ''),
		    occurred_at = $6
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query,
		m.ID, m.UserID, m.Title, m.Note, m.ImageURL, m.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update memory: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresMemoriesRepository) DeleteMemory(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM memories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete memory: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresMemoriesRepository) ListMemories(ctx context.Context, limit, offset int) ([]*domain.Memory, error) {
	query := `
		SELECT ` + memoryColumns + `
		FROM memories
		ORDER BY occurred_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list memories: %w", err)
	}
	defer rows.Close()

	return collectMemories(rows)
}

func (r *PostgresMemoriesRepository) ListMemoriesForClients(ctx context.Context, clientIDs []int64) ([]*domain.Memory, error) {
	query := `
		SELECT ` + memoryColumns + `
		FROM memories
		WHERE user_id IS NULL OR user_id = ANY($1)
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(clientIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to list memories for clients: %w", err)
	}
	defer rows.Close()

	return collectMemories(rows)
}

func collectMemories(rows *sql.Rows) ([]*domain.Memory, error) {
	memories := make([]*domain.Memory, 0)
	for rows.Next() {
		m, err := scanMemory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan memory: %w", err)
		}
		memories = append(memories, m)
	}
	return memories, rows.Err()
}
