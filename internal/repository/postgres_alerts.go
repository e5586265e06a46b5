package repository

import (
	"context"
	"database/sql"
	"fmt"

	"carecircle/internal/domain"
)

// PostgresAlertsRepository implements AlertsRepository.
type PostgresAlertsRepository struct {
	db *sql.DB
}

func NewPostgresAlertsRepository(db *sql.DB) *PostgresAlertsRepository {
	return &PostgresAlertsRepository{db: db}
}

var _ AlertsRepository = (*PostgresAlertsRepository)(nil)

const alertColumns = `
	id,
	user_id,
	caregiver_id,
	kind,
	message,
	is_read,
	created_at
`

func scanAlert(row interface{ Scan(...any) error }) (*domain.Alert, error) {
	var a domain.Alert
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.CaregiverID,
		&a.Kind,
		&a.Message,
		&a.IsRead,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *PostgresAlertsRepository) CreateAlert(ctx context.Context, a *domain.Alert) (int64, error) {
	query := `
		INSERT INTO alerts (user_id, caregiver_id, kind, message, is_read)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		a.UserID, a.CaregiverID, a.Kind, a.Message, a.IsRead,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to create alert: %w", err)
	}
	return a.ID, nil
}

func (r *PostgresAlertsRepository) GetAlert(ctx context.Context, id int64) (*domain.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE id = $1`

	a, err := scanAlert(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get alert: %w", err)
	}
	return a, nil
}

func (r *PostgresAlertsRepository) UpdateAlert(ctx context.Context, a *domain.Alert) error {
	query := `UPDATE alerts SET is_read = $2 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, a.ID, a.IsRead)
	if err != nil {
		return fmt.Errorf("failed to update alert: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresAlertsRepository) ListAlertsForCaregiver(ctx context.Context, caregiverID int64, onlyUnread bool, limit int) ([]*domain.Alert, error) {
	query := `
		SELECT ` + alertColumns + `
		FROM alerts
		WHERE caregiver_id = $1 AND ($2 = FALSE OR is_read = FALSE)
		ORDER BY created_at DESC
	`
	args := []any{caregiverID, onlyUnread}
	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer rows.Close()

	alerts := make([]*domain.Alert, 0)
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}
