package repository

import (
	"context"

	"carecircle/internal/domain"
)

// PersonsRepository accesses the people table.
type PersonsRepository interface {
	GetPerson(ctx context.Context, id int64) (*domain.Person, error)
	// GetPersons returns the found subset keyed by id; missing ids are
	// silently absent.
	GetPersons(ctx context.Context, ids []int64) (map[int64]*domain.Person, error)
	GetPersonByEmail(ctx context.Context, email string) (*domain.Person, error)
	CreatePerson(ctx context.Context, p *domain.Person) (int64, error)
}
