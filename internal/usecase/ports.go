package usecase

import (
	"context"

	"github.com/totegamma/filmapi/internal/domain"
)

// Transactor runs fn inside one store transaction. Store calls made with the ctx
// handed to fn join that transaction, and so do nested RunInTransaction calls.
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ExistenceChecker answers row existence questions. Absence is reported as false,
// the error return is reserved for store faults.
type ExistenceChecker interface {
	Exists(ctx context.Context, kind domain.Kind, id int64) (bool, error)
	// LockForUpdate behaves like Exists but also takes a write lock on the row
	// for the rest of the surrounding transaction.
	LockForUpdate(ctx context.Context, kind domain.Kind, id int64) (bool, error)
}

// EntityRepository defines scalar persistence for one entity kind.
type EntityRepository[T any] interface {
	FindAll(ctx context.Context) ([]T, error)
	FindByID(ctx context.Context, id int64) (T, error)
	Insert(ctx context.Context, entity T) (T, error)
	UpdateScalars(ctx context.Context, id int64, entity T) error
	Delete(ctx context.Context, id int64) error
}

// CharacterRepository defines persistence/lookup for characters.
type CharacterRepository interface {
	EntityRepository[domain.Character]
	FindByMovie(ctx context.Context, movieID int64) ([]domain.Character, error)
	FindByFranchise(ctx context.Context, franchiseID int64) ([]domain.Character, error)
}

// MovieRepository defines persistence/lookup for movies.
type MovieRepository interface {
	EntityRepository[domain.Movie]
	FindByFranchise(ctx context.Context, franchiseID int64) ([]domain.Movie, error)
}

// FranchiseRepository defines persistence/lookup for franchises.
type FranchiseRepository interface {
	EntityRepository[domain.Franchise]
}

// AssociationRepository replaces an owner's full related set. The adapter picks
// the backing storage (join table or foreign key) from the relationship.
type AssociationRepository interface {
	Replace(ctx context.Context, rel domain.Relationship, ownerID int64, targetIDs []int64) error
}

// EventPublisher announces committed changes.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, domain.Event) error { return nil }
