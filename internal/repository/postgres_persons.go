package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"carecircle/internal/domain"
)

// PostgresPersonsRepository implements PersonsRepository.
type PostgresPersonsRepository struct {
	db *sql.DB
}

func NewPostgresPersonsRepository(db *sql.DB) *PostgresPersonsRepository {
	return &PostgresPersonsRepository{db: db}
}

var _ PersonsRepository = (*PostgresPersonsRepository)(nil)

const personColumns = `
	id,
	role,
	name,
	COALESCE(email, '') AS email,
	COALESCE(phone, '') AS phone,
	COALESCE(avatar_url, '') AS avatar_url,
	COALESCE(location, '') AS location,
	created_at
`

func scanPerson(row interface{ Scan(...any) error }) (*domain.Person, error) {
	var p domain.Person
	err := row.Scan(
		&p.ID,
		&p.Role,
		&p.Name,
		&p.Email,
		&p.Phone,
		&p.AvatarURL,
		&p.Location,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostgresPersonsRepository) GetPerson(ctx context.Context, id int64) (*domain.Person, error) {
	query := `SELECT ` + personColumns + ` FROM people WHERE id = $1`

	p, err := scanPerson(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get person: %w", err)
	}
	return p, nil
}

func (r *PostgresPersonsRepository) GetPersons(ctx context.Context, ids []int64) (map[int64]*domain.Person, error) {
	result := make(map[int64]*domain.Person, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query := `SELECT ` + personColumns + ` FROM people WHERE id = ANY($1)`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to list persons: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		result[p.ID] = p
	}
	return result, rows.Err()
}

func (r *PostgresPersonsRepository) GetPersonByEmail(ctx context.Context, email string) (*domain.Person, error) {
	query := `SELECT ` + personColumns + ` FROM people WHERE email = $1`

	p, err := scanPerson(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get person by email: %w", err)
	}
	return p, nil
}

func (r *PostgresPersonsRepository) CreatePerson(ctx context.Context, p *domain.Person) (int64, error) {
	query := `
		INSERT INTO people (role, name, email, phone, avatar_url, location)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''))
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		p.Role, p.Name, p.Email, p.Phone, p.AvatarURL, p.Location,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to create person: %w", err)
	}
	return p.ID, nil
}
