package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"carecircle/internal/domain"
)

// PostgresCheckInsRepository implements CheckInsRepository.
type PostgresCheckInsRepository struct {
	db *sql.DB
}

func NewPostgresCheckInsRepository(db *sql.DB) *PostgresCheckInsRepository {
	return &PostgresCheckInsRepository{db: db}
}

var _ CheckInsRepository = (*PostgresCheckInsRepository)(nil)

const checkinColumns = `
	id,
	user_id,
	recorded_by,
	COALESCE(mood, '') AS mood,
	sleep_hours,
	COALESCE(hydration, '') AS hydration,
	COALESCE(notes, '') AS notes,
	created_at
`

func scanCheckIn(row interface{ Scan(...any) error }) (*domain.CheckIn, error) {
	var c domain.CheckIn
	var sleepHours sql.NullFloat64
	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.By,
		&c.Mood,
		&sleepHours,
		&c.Hydration,
		&c.Notes,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if sleepHours.Valid {
		c.SleepHours = &sleepHours.Float64
	}
	return &c, nil
}

func (r *PostgresCheckInsRepository) CreateCheckIn(ctx context.Context, c *domain.CheckIn) (int64, error) {
	query := `
		INSERT INTO checkins (user_id, recorded_by, mood, sleep_hours, hydration, notes)
		VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''), NULLIF($6, ''))
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		c.UserID, c.By, c.Mood, c.SleepHours, c.Hydration, c.Notes,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to create checkin: %w", err)
	}
	return c.ID, nil
}

func (r *PostgresCheckInsRepository) ListCheckInsForUser(ctx context.Context, userID int64, limit int) ([]*domain.CheckIn, error) {
	query := `
		SELECT ` + checkinColumns + `
		FROM checkins
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list checkins: %w", err)
	}
	defer rows.Close()

	return collectCheckIns(rows)
}

func (r *PostgresCheckInsRepository) ListCheckInsForClients(ctx context.Context, clientIDs []int64) ([]*domain.CheckIn, error) {
	query := `
		SELECT ` + checkinColumns + `
		FROM checkins
		WHERE user_id = ANY($1)
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(clientIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to list checkins for clients: %w", err)
	}
	defer rows.Close()

	return collectCheckIns(rows)
}

func collectCheckIns(rows *sql.Rows) ([]*domain.CheckIn, error) {
	checkins := make([]*domain.CheckIn, 0)
	for rows.Next() {
		c, err := scanCheckIn(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan checkin: %w", err)
		}
		checkins = append(checkins, c)
	}
	return checkins, rows.Err()
}
