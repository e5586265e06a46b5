package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"carecircle/internal/domain"
)

// PostgresCircleRepository implements CircleRepository.
type PostgresCircleRepository struct {
	db *sql.DB
}

func NewPostgresCircleRepository(db *sql.DB) *PostgresCircleRepository {
	return &PostgresCircleRepository{db: db}
}

var _ CircleRepository = (*PostgresCircleRepository)(nil)

const circleLinkColumns = `
	id,
	client_id,
	member_id,
	role,
	COALESCE(relationship, '') AS relationship,
	can_edit,
	notify,
	created_at
`

func scanCircleLink(row interface{ Scan(...any) error }) (*domain.CircleLink, error) {
	var l domain.CircleLink
	err := row.Scan(
		&l.ID,
		&l.ClientID,
		&l.MemberID,
		&l.Role,
		&l.Relationship,
		&l.CanEdit,
		&l.Notify,
		&l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *PostgresCircleRepository) LinksByMember(ctx context.Context, memberID int64, roles []string) ([]*domain.CircleLink, error) {
	query := `
		SELECT ` + circleLinkColumns + `
		FROM circle_links
		WHERE member_id = $1 AND role = ANY($2)
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, memberID, pq.Array(roles))
	if err != nil {
		return nil, fmt.Errorf("failed to list links by member: %w", err)
	}
	defer rows.Close()

	return collectLinks(rows)
}

func (r *PostgresCircleRepository) LinksByClient(ctx context.Context, clientID int64, roles []string, excludeMemberID int64) ([]*domain.CircleLink, error) {
	query := `
		SELECT ` + circleLinkColumns + `
		FROM circle_links
		WHERE client_id = $1 AND role = ANY($2) AND member_id <> $3
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, clientID, pq.Array(roles), excludeMemberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list links by client: %w", err)
	}
	defer rows.Close()

	return collectLinks(rows)
}

func (r *PostgresCircleRepository) GetLink(ctx context.Context, clientID, memberID int64) (*domain.CircleLink, error) {
	query := `
		SELECT ` + circleLinkColumns + `
		FROM circle_links
		WHERE client_id = $1 AND member_id = $2
	`

	link, err := scanCircleLink(r.db.QueryRowContext(ctx, query, clientID, memberID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get link: %w", err)
	}
	return link, nil
}

func (r *PostgresCircleRepository) UpsertLink(ctx context.Context, link *domain.CircleLink) error {
	query := `
		INSERT INTO circle_links (client_id, member_id, role, relationship, can_edit, notify)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)
		ON CONFLICT (client_id, member_id)
		DO UPDATE SET role = EXCLUDED.role,
		              relationship = EXCLUDED.relationship,
		              can_edit = EXCLUDED.can_edit,
		              notify = EXCLUDED.notify
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		link.ClientID, link.MemberID, link.Role, link.Relationship, link.CanEdit, link.Notify,
	).Scan(&link.ID, &link.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert link: %w", err)
	}
	return nil
}

func collectLinks(rows *sql.Rows) ([]*domain.CircleLink, error) {
	links := make([]*domain.CircleLink, 0)
	for rows.Next() {
		l, err := scanCircleLink(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan link: %w", err)
		}
		links = append(links, l)
	}
	return links, rows.Err()
}
